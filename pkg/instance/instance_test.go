package instance

import "testing"

func TestIDPrefersDyno(t *testing.T) {
	t.Setenv("DYNO", "web.1")
	if got := ID(); got != "web.1" {
		t.Fatalf("expected web.1 got %q", got)
	}
}

func TestIDFallsBack(t *testing.T) {
	t.Setenv("DYNO", "")
	if got := ID(); got == "" {
		t.Fatalf("expected a non-empty id")
	}
}

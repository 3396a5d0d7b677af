package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "Invalid coupon code")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "Invalid coupon code" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "load cart")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("Please enter a subject", "subject")
	details, ok := err.Details().(map[string]any)
	if !ok || details["field"] != "subject" {
		t.Fatalf("expected field detail, got %#v", err.Details())
	}
	if Validation("bad", "").Details() != nil {
		t.Fatalf("empty field should not produce details")
	}
}

func TestIsMatchesWrappedChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeRateLimit, "slow down"))
	if !Is(err, CodeRateLimit) {
		t.Fatalf("expected rate limit code in chain")
	}
	if Is(err, CodeValidation) {
		t.Fatalf("unexpected validation match")
	}
	if Is(nil, CodeInternal) {
		t.Fatalf("nil error should not match")
	}
}

func TestDumpCapturesPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_local_storage_entries", TableName: "local_storage_entries", Message: "duplicate key"}
	err := Wrap(CodeDependency, fmt.Errorf("save entry: %w", pgErr), "storage write failed")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGTable != "local_storage_entries" {
		t.Fatalf("postgres details missing: %+v", dump)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected three links in chain, got %d", len(dump.Chain))
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil dump should be empty")
	}
}

package instance

import (
	"os"

	"github.com/angelmondragon/localarthub-backend/pkg/env"
)

// ID names the running process in logs: the platform dyno when set, then the
// host name.
func ID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}

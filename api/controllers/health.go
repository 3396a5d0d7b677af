package controllers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

const (
	envHeader    = "X-LocalArtHub-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is any backend the readiness check can reach.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured backend concurrently. Nil entries are
// backends the current storage driver does not use.
func HealthReady(cfg *config.Config, logg *logger.Logger, backends map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		for name, backend := range backends {
			if backend == nil {
				continue
			}
			name, backend := name, backend
			g.Go(func() error {
				if err := backend.Ping(gctx); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable")
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/angelmondragon/localarthub-backend/pkg/config"
	"github.com/angelmondragon/localarthub-backend/pkg/db"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/migrate"
	"github.com/angelmondragon/localarthub-backend/pkg/redis"
)

// openStorage builds the backend standing in for the browser's local storage.
// The db client is returned so main can close it and ping it for readiness.
func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client) (localstore.Store, *db.Client, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		if redisClient == nil {
			return nil, nil, fmt.Errorf("redis storage selected without a redis connection")
		}
		store, err := localstore.NewRedisStore(redisClient, cfg.Storage.TTL)
		return store, nil, err

	case config.StorageDriverSQL:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			return nil, dbClient, fmt.Errorf("run migrations: %w", err)
		}
		store, err := localstore.NewGormStore(dbClient.DB())
		return store, dbClient, err

	default:
		logg.Warn(ctx, "using in-memory storage; carts are lost on restart")
		return localstore.NewMemoryStore(), nil, nil
	}
}

func newSessionStore(cfg config.SessionConfig) sessions.Store {
	store := sessions.NewCookieStore([]byte(cfg.Key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// keeps the securecookie expiry in step with the cookie's own
	store.MaxAge(store.Options.MaxAge)
	return store
}

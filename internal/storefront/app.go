// Package storefront assembles the cart, form and catalog services that back
// the storefront pages.
package storefront

import (
	"fmt"
	"time"

	"github.com/angelmondragon/localarthub-backend/internal/cart"
	"github.com/angelmondragon/localarthub-backend/internal/catalog"
	"github.com/angelmondragon/localarthub-backend/internal/forms"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
)

// App is built once at startup and handed to the router.
type App struct {
	Cart  cart.Service
	Forms forms.Service
	// Catalog is nil when the catalog page has no product listing section.
	Catalog *catalog.Filter
	Cards   catalog.Lookup
	Store   localstore.Store
}

type Params struct {
	Store   localstore.Store
	Page    *catalog.Page
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics

	ClampDetailQuantity bool
	HomeURL             string
	RedirectDelay       time.Duration
	Now                 func() time.Time
}

// New wires the storefront services onto one storage backend.
func New(p Params) (*App, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("local store required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Page == nil {
		return nil, fmt.Errorf("catalog page required")
	}

	repo, err := cart.NewRepository(p.Store, p.Logger, p.Metrics)
	if err != nil {
		return nil, err
	}
	cartSvc, err := cart.NewService(cart.ServiceParams{
		Repo:                repo,
		Logger:              p.Logger,
		Metrics:             p.Metrics,
		ClampDetailQuantity: p.ClampDetailQuantity,
		HomeURL:             p.HomeURL,
		RedirectDelay:       p.RedirectDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("cart service: %w", err)
	}
	formSvc, err := forms.NewService(forms.ServiceParams{
		Store:   p.Store,
		Logger:  p.Logger,
		Metrics: p.Metrics,
		Now:     p.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("form service: %w", err)
	}

	return &App{
		Cart:    cartSvc,
		Forms:   formSvc,
		Catalog: catalog.NewFilter(p.Page).WithMetrics(p.Metrics),
		Cards:   p.Page,
		Store:   p.Store,
	}, nil
}

package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
	"github.com/google/uuid"
)

// Repository reads and writes a visitor's cart through the shared storage keys.
type Repository struct {
	store   localstore.Store
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	newID   func() string
}

// NewRepository wires the cart keys onto a storage backend. logg and m may be nil.
func NewRepository(store localstore.Store, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("local store required")
	}
	return &Repository{
		store:   store,
		logg:    logg,
		metrics: m,
		newID:   func() string { return uuid.NewString() },
	}, nil
}

// Load returns the visitor's cart. Unreadable items fail open to an empty cart
// with Status set to LoadStatusCorrupt. Lines without a line id get one
// derived from their position and content; it is only persisted by the next
// write, so reads never touch storage.
func (r *Repository) Load(ctx context.Context, visitorID string) (*Cart, error) {
	var items []Item
	status, err := localstore.LoadJSON(ctx, r.store, visitorID, localstore.KeyCart, &items)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if status == localstore.LoadStatusCorrupt {
		r.metrics.IncFallback(localstore.KeyCart)
		if r.logg != nil {
			r.logg.Warn(ctx, "stored cart unreadable; treating as empty")
		}
	}
	if items == nil {
		items = []Item{}
	}

	for i := range items {
		if items[i].LineID == "" {
			items[i].LineID = derivedLineID(i, items[i])
		}
	}

	coupon, err := r.loadCoupon(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return &Cart{Items: items, Coupon: coupon, Status: status}, nil
}

var lineIDNamespace = uuid.MustParse("3f0c2a7e-5b1d-4f7a-9c1e-6d2b8a4e0f13")

func derivedLineID(index int, item Item) string {
	size := "-"
	if item.Size != nil {
		size = "=" + *item.Size
	}
	seed := fmt.Sprintf("%d|%s|%s|%d", index, item.Name, size, item.Price)
	return uuid.NewSHA1(lineIDNamespace, []byte(seed)).String()
}

func (r *Repository) loadCoupon(ctx context.Context, visitorID string) (*Coupon, error) {
	code, found, err := r.store.Get(ctx, visitorID, localstore.KeyAppliedCoupon)
	if err != nil {
		return nil, fmt.Errorf("load coupon: %w", err)
	}
	if !found {
		return nil, nil
	}
	raw, _, err := r.store.Get(ctx, visitorID, localstore.KeyDiscountPercent)
	if err != nil {
		return nil, fmt.Errorf("load discount percent: %w", err)
	}
	percent, ok := leadingInt(raw)
	if !ok {
		percent = 0
	}
	return &Coupon{Code: code, Percent: percent}, nil
}

// SaveItems persists the item list; an empty cart is stored as "[]".
func (r *Repository) SaveItems(ctx context.Context, visitorID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	if err := localstore.SaveJSON(ctx, r.store, visitorID, localstore.KeyCart, items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// SaveCoupon stores the code and its percent under their separate keys.
func (r *Repository) SaveCoupon(ctx context.Context, visitorID string, coupon Coupon) error {
	if err := r.store.Set(ctx, visitorID, localstore.KeyAppliedCoupon, coupon.Code); err != nil {
		return fmt.Errorf("save coupon: %w", err)
	}
	if err := r.store.Set(ctx, visitorID, localstore.KeyDiscountPercent, strconv.Itoa(coupon.Percent)); err != nil {
		return fmt.Errorf("save discount percent: %w", err)
	}
	return nil
}

// ClearCoupon removes both coupon keys.
func (r *Repository) ClearCoupon(ctx context.Context, visitorID string) error {
	if err := r.store.Remove(ctx, visitorID, localstore.KeyAppliedCoupon, localstore.KeyDiscountPercent); err != nil {
		return fmt.Errorf("clear coupon: %w", err)
	}
	return nil
}

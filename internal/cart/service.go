package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
	"github.com/angelmondragon/localarthub-backend/pkg/types"
)

const (
	defaultHomeURL       = "index.html"
	defaultRedirectDelay = 2 * time.Second
)

// Service exposes the cart operations of the storefront pages.
type Service interface {
	Display(ctx context.Context, visitorID string) (*Result, error)
	Badge(ctx context.Context, visitorID string) (Badge, error)
	AddToCart(ctx context.Context, visitorID string, ref ProductRef) (*Result, error)
	AddSingleProduct(ctx context.Context, visitorID string, input DetailInput) (*Result, error)
	RemoveFromCart(ctx context.Context, visitorID, name string) (*Result, error)
	RemoveLine(ctx context.Context, visitorID, lineID string) (*Result, error)
	UpdateQuantity(ctx context.Context, visitorID, name string, quantity int) (*Result, error)
	UpdateLineQuantity(ctx context.Context, visitorID, lineID string, quantity int) (*Result, error)
	ApplyCoupon(ctx context.Context, visitorID, code string) (*Result, error)
	RemoveCoupon(ctx context.Context, visitorID string) (*Result, error)
	Checkout(ctx context.Context, visitorID string, confirmed bool) (*CheckoutResult, error)
}

// ProductRef is a product card from the listing pages.
type ProductRef struct {
	Name      string
	PriceText string
	Image     string
	Category  string
}

// DetailInput is the single product form. Quantity is the raw input text.
type DetailInput struct {
	Name      string
	PriceText string
	Image     string
	Quantity  string
	Size      *string
}

// Result is the cart state after an operation plus the notification to show.
// Notification is nil for silent operations.
type Result struct {
	Display      Display             `json:"cart"`
	Badge        Badge               `json:"badge"`
	Notification *types.Notification `json:"notification,omitempty"`
}

type CheckoutStatus string

const (
	CheckoutStatusPrompt CheckoutStatus = "confirmation_required"
	CheckoutStatusPlaced CheckoutStatus = "placed"
)

type Redirect struct {
	Location string `json:"location"`
	DelayMS  int64  `json:"delay_ms"`
}

// CheckoutResult answers both checkout steps. An unconfirmed checkout only
// carries the prompt; a placed one carries the redirect.
type CheckoutResult struct {
	Status       CheckoutStatus      `json:"status"`
	Prompt       string              `json:"prompt,omitempty"`
	Total        int                 `json:"total"`
	Redirect     *Redirect           `json:"redirect,omitempty"`
	Notification *types.Notification `json:"notification,omitempty"`
	Badge        Badge               `json:"badge"`
}

// ServiceParams wires the cart service.
type ServiceParams struct {
	Repo    *Repository
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
	// ClampDetailQuantity raises detail page quantities below 1 to 1.
	ClampDetailQuantity bool
	HomeURL             string
	RedirectDelay       time.Duration
}

type service struct {
	repo          *Repository
	logg          *logger.Logger
	metrics       *metrics.StorefrontMetrics
	clampDetail   bool
	homeURL       string
	redirectDelay time.Duration
}

// NewService builds the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	homeURL := params.HomeURL
	if homeURL == "" {
		homeURL = defaultHomeURL
	}
	delay := params.RedirectDelay
	if delay <= 0 {
		delay = defaultRedirectDelay
	}
	return &service{
		repo:          params.Repo,
		logg:          params.Logger,
		metrics:       params.Metrics,
		clampDetail:   params.ClampDetailQuantity,
		homeURL:       homeURL,
		redirectDelay: delay,
	}, nil
}

func (s *service) Display(ctx context.Context, visitorID string) (*Result, error) {
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return result(c, nil), nil
}

func (s *service) Badge(ctx context.Context, visitorID string) (Badge, error) {
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return Badge{}, err
	}
	return c.Badge(), nil
}

// AddToCart adds one unit of a listing card. An existing line with the same
// name is bumped, whatever its size.
func (s *service) AddToCart(ctx context.Context, visitorID string, ref ProductRef) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.add")
	s.checkName(ctx, ref.Name)
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	if idx := c.IndexByName(ref.Name); idx >= 0 {
		c.Items[idx].Quantity++
	} else {
		category := ref.Category
		c.Items = append(c.Items, Item{
			Name:     ref.Name,
			Price:    s.price(ctx, ref.PriceText),
			Image:    ref.Image,
			Category: &category,
			Quantity: 1,
			LineID:   s.repo.newID(),
		})
	}

	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("add")
	s.logg.Info(ctx, "item added to cart")
	return result(c, types.CartNotice(enums.NotificationTypeSuccess, ref.Name+" added to cart!")), nil
}

// AddSingleProduct adds the detail page selection. Lines are matched on name
// and size.
func (s *service) AddSingleProduct(ctx context.Context, visitorID string, input DetailInput) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.add_detail")
	s.checkName(ctx, input.Name)
	quantity := ParseQuantity(input.Quantity)
	if s.clampDetail && quantity < 1 {
		quantity = 1
	}

	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	if idx := c.IndexByNameAndSize(input.Name, input.Size); idx >= 0 {
		c.Items[idx].Quantity += quantity
	} else {
		c.Items = append(c.Items, Item{
			Name:     input.Name,
			Price:    s.price(ctx, input.PriceText),
			Image:    input.Image,
			Size:     input.Size,
			Quantity: quantity,
			LineID:   s.repo.newID(),
		})
	}

	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("add_detail")
	s.logg.Info(ctx, "detail item added to cart")
	msg := fmt.Sprintf("%d x %s added to cart!", quantity, input.Name)
	return result(c, types.CartNotice(enums.NotificationTypeSuccess, msg)), nil
}

// RemoveFromCart drops every line carrying the name. It reports success even
// when nothing matched.
func (s *service) RemoveFromCart(ctx context.Context, visitorID, name string) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.remove")
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	c.RemoveByName(name)
	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("remove")
	s.logg.Info(ctx, "item removed from cart")
	return result(c, types.CartNotice(enums.NotificationTypeSuccess, "Item removed from cart")), nil
}

// RemoveLine drops exactly one line.
func (s *service) RemoveLine(ctx context.Context, visitorID, lineID string) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.remove_line")
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	idx := c.IndexByLineID(lineID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	c.RemoveAt(idx)
	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("remove_line")
	s.logg.Info(ctx, "cart line removed")
	return result(c, types.CartNotice(enums.NotificationTypeSuccess, "Item removed from cart")), nil
}

// UpdateQuantity sets max(1, quantity) on the first line with the name.
// Unknown names leave the cart untouched.
func (s *service) UpdateQuantity(ctx context.Context, visitorID, name string, quantity int) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.update_quantity")
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	idx := c.IndexByName(name)
	if idx < 0 {
		return result(c, nil), nil
	}
	c.SetQuantityAt(idx, quantity)
	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("update_quantity")
	s.logg.Info(ctx, "cart quantity updated")
	return result(c, nil), nil
}

func (s *service) UpdateLineQuantity(ctx context.Context, visitorID, lineID string, quantity int) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.update_line_quantity")
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	idx := c.IndexByLineID(lineID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	c.SetQuantityAt(idx, quantity)
	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("update_line_quantity")
	s.logg.Info(ctx, "cart line quantity updated")
	return result(c, nil), nil
}

func (s *service) ApplyCoupon(ctx context.Context, visitorID, code string) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.apply_coupon")
	coupon, ok := LookupCoupon(code)
	if !ok {
		s.logg.Info(ctx, "coupon rejected")
		return nil, pkgerrors.Validation("Invalid coupon code", "coupon")
	}
	if err := s.repo.SaveCoupon(ctx, visitorID, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save coupon")
	}
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("apply_coupon")
	s.logg.Info(ctx, "coupon applied")
	msg := fmt.Sprintf("Coupon applied! %d%% discount", coupon.Percent)
	return result(c, types.CartNotice(enums.NotificationTypeSuccess, msg)), nil
}

func (s *service) RemoveCoupon(ctx context.Context, visitorID string) (*Result, error) {
	ctx = s.logg.WithOperation(ctx, "cart.remove_coupon")
	if err := s.repo.ClearCoupon(ctx, visitorID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear coupon")
	}
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	s.metrics.IncCartOp("remove_coupon")
	s.logg.Info(ctx, "coupon removed")
	return result(c, types.CartNotice(enums.NotificationTypeSuccess, "Coupon removed")), nil
}

// Checkout runs in two steps. Without confirmation it returns the prompt and
// changes nothing; once confirmed it empties the cart and clears the coupon.
func (s *service) Checkout(ctx context.Context, visitorID string, confirmed bool) (*CheckoutResult, error) {
	ctx = s.logg.WithOperation(ctx, "cart.checkout")
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		s.metrics.IncCheckout("empty")
		return nil, pkgerrors.Validation("Your cart is empty!", "")
	}

	total := c.GrandTotal()
	if !confirmed {
		s.metrics.IncCheckout("prompted")
		return &CheckoutResult{
			Status: CheckoutStatusPrompt,
			Prompt: checkoutPrompt(total),
			Total:  total,
			Badge:  c.Badge(),
		}, nil
	}

	c.Items = []Item{}
	c.Coupon = nil
	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, err
	}
	if err := s.repo.ClearCoupon(ctx, visitorID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear coupon")
	}

	s.metrics.IncCheckout("placed")
	s.logg.Info(ctx, "demo order placed")
	return &CheckoutResult{
		Status: CheckoutStatusPlaced,
		Total:  total,
		Redirect: &Redirect{
			Location: s.homeURL,
			DelayMS:  s.redirectDelay.Milliseconds(),
		},
		Notification: types.CartNotice(enums.NotificationTypeSuccess, "Order placed successfully! (Demo)"),
		Badge:        c.Badge(),
	}, nil
}

func (s *service) load(ctx context.Context, visitorID string) (*Cart, error) {
	if visitorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	c, err := s.repo.Load(ctx, visitorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return c, nil
}

func (s *service) save(ctx context.Context, visitorID string, c *Cart) error {
	if err := s.repo.SaveItems(ctx, visitorID, c.Items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) price(ctx context.Context, text string) int {
	price, ok := ParsePrice(text)
	if !ok {
		s.logg.Warn(ctx, "price text has no digits; using 0")
	}
	return price
}

// checkName only reports a blank name; the line is still stored under "".
func (s *service) checkName(ctx context.Context, name string) {
	if name == "" {
		s.logg.Warn(ctx, "product name is empty; storing the line unnamed")
	}
}

func result(c *Cart, notice *types.Notification) *Result {
	return &Result{
		Display:      c.Display(),
		Badge:        c.Badge(),
		Notification: notice,
	}
}

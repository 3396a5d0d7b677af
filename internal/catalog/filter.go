package catalog

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
)

const (
	searchPlaceholder  = "Search products..."
	noResultsText      = "No products found. Try adjusting your filters."
	resultsContainer   = ".pro-container"
	displayVisible     = "block"
	displayHidden      = "none"
	priceRangeSplitter = "-"
)

// Option is one entry of a filter dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options describes the search and filter controls for the listing page.
type Options struct {
	Installed         bool     `json:"installed"`
	SearchPlaceholder string   `json:"search_placeholder"`
	Categories        []Option `json:"categories"`
	Prices            []Option `json:"prices"`
}

var priceOptions = []Option{
	{Value: "", Label: "All Prices"},
	{Value: "0-1500", Label: "Under Rs. 1500"},
	{Value: "1500-3000", Label: "Rs. 1500 - 3000"},
	{Value: "3000-5000", Label: "Rs. 3000 - 5000"},
	{Value: "5000+", Label: "Above Rs. 5000"},
}

// Criteria are the current values of the search box and the two dropdowns.
type Criteria struct {
	Search   string
	Category string
	Price    string
}

// PriceRange is an inclusive bound on card prices. Without an upper bound only
// Min applies.
type PriceRange struct {
	Min    int
	Max    int
	HasMax bool
}

func (r PriceRange) contains(price int) bool {
	if price < r.Min {
		return false
	}
	return !r.HasMax || price <= r.Max
}

// ParsePriceRange reads a price dropdown value such as "1500-3000" or "5000+".
// An upper bound of 0 or "+" means unbounded.
func ParsePriceRange(value string) (PriceRange, error) {
	parts := strings.Split(value, priceRangeSplitter)
	if len(parts) > 2 {
		return PriceRange{}, invalidPrice(value)
	}
	min, ok := boundValue(parts[0])
	if !ok {
		return PriceRange{}, invalidPrice(value)
	}
	rng := PriceRange{Min: min}
	if len(parts) == 2 && parts[1] != "+" {
		max, ok := boundValue(parts[1])
		if !ok {
			return PriceRange{}, invalidPrice(value)
		}
		if max != 0 {
			rng.Max, rng.HasMax = max, true
		}
	}
	return rng, nil
}

// boundValue parses the leading digits of a bound after dropping any '+'.
func boundValue(part string) (int, bool) {
	part = strings.ReplaceAll(part, "+", "")
	end := 0
	for end < len(part) && part[end] >= '0' && part[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(part[:end])
	return n, err == nil
}

func invalidPrice(value string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid price range").
		WithDetails(map[string]any{"field": "price", "value": value})
}

// CardVisibility is the display state of one card after filtering.
type CardVisibility struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Display string `json:"display"`
}

// ResultsMessage is the empty-result note shown inside the product container.
type ResultsMessage struct {
	Text      string `json:"text"`
	Visible   bool   `json:"visible"`
	Container string `json:"container"`
}

type Outcome struct {
	Cards        []CardVisibility `json:"cards"`
	VisibleCount int              `json:"visible_count"`
	Message      ResultsMessage   `json:"message"`
}

type indexedCard struct {
	card     Card
	name     string
	category string
}

// Filter narrows the cards of a listing page. Its snapshot of the cards is
// taken once and never changes.
type Filter struct {
	installed bool
	products  []indexedCard
	metrics   *metrics.StorefrontMetrics
}

// NewFilter returns nil for pages without the product listing section.
func NewFilter(page *Page) *Filter {
	if page == nil || !page.HasMarker {
		return nil
	}
	products := make([]indexedCard, 0, len(page.Cards))
	for _, card := range page.Cards {
		products = append(products, indexedCard{
			card:     card,
			name:     strings.ToLower(card.Name),
			category: strings.ToLower(card.Category),
		})
	}
	return &Filter{installed: page.HasPageHeader, products: products}
}

// WithMetrics records visible counts on m.
func (f *Filter) WithMetrics(m *metrics.StorefrontMetrics) *Filter {
	if f != nil {
		f.metrics = m
	}
	return f
}

// Options lists the controls the listing page renders. Installed is false when
// the page has no header to host them.
func (f *Filter) Options() Options {
	categories := []Option{{Value: "", Label: enums.ProductCategory("").Label()}}
	for _, c := range enums.ProductCategories() {
		categories = append(categories, Option{Value: string(c), Label: c.Label()})
	}
	prices := make([]Option, len(priceOptions))
	copy(prices, priceOptions)
	return Options{
		Installed:         f != nil && f.installed,
		SearchPlaceholder: searchPlaceholder,
		Categories:        categories,
		Prices:            prices,
	}
}

// Cards returns the snapshot in page order.
func (f *Filter) Cards() []Card {
	if f == nil {
		return nil
	}
	cards := make([]Card, 0, len(f.products))
	for _, p := range f.products {
		cards = append(cards, p.card)
	}
	return cards
}

// Apply computes which cards stay visible. Search is a case-insensitive
// substring of the name, category an exact case-insensitive match, and cards
// without a readable price pass any price range.
func (f *Filter) Apply(criteria Criteria) (*Outcome, error) {
	search := strings.ToLower(criteria.Search)
	category := strings.ToLower(criteria.Category)

	var rng *PriceRange
	if criteria.Price != "" {
		parsed, err := ParsePriceRange(criteria.Price)
		if err != nil {
			return nil, err
		}
		rng = &parsed
	}

	outcome := &Outcome{Cards: []CardVisibility{}}
	if f != nil {
		outcome.Cards = make([]CardVisibility, 0, len(f.products))
		for _, p := range f.products {
			visible := true
			if search != "" && !strings.Contains(p.name, search) {
				visible = false
			}
			if category != "" && p.category != category {
				visible = false
			}
			if rng != nil && p.card.HasPrice && !rng.contains(p.card.Price) {
				visible = false
			}

			display := displayHidden
			if visible {
				display = displayVisible
				outcome.VisibleCount++
			}
			outcome.Cards = append(outcome.Cards, CardVisibility{
				ID:      p.card.ID,
				Name:    p.card.Name,
				Visible: visible,
				Display: display,
			})
		}
		f.metrics.ObserveVisible(outcome.VisibleCount)
	}

	outcome.Message = ResultsMessage{
		Text:      noResultsText,
		Visible:   outcome.VisibleCount == 0,
		Container: resultsContainer,
	}
	return outcome, nil
}

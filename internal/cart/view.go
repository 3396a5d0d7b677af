package cart

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
)

const (
	emptyCartMessage  = "Your cart is empty."
	emptyCartLinkText = "Continue shopping"
	emptyCartLinkHref = "shop.html"
)

// Display is what the cart page renders: either rows or the empty state, and
// always the totals table.
type Display struct {
	Rows       []Row       `json:"rows"`
	EmptyState *EmptyState `json:"empty_state,omitempty"`
	Totals     Totals      `json:"totals"`
	Recovered  bool        `json:"recovered,omitempty"`
}

// Row is one line of the cart table.
type Row struct {
	LineID      string  `json:"line_id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	ImageAlt    string  `json:"image_alt"`
	Size        *string `json:"size,omitempty"`
	Price       string  `json:"price"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Subtotal    string  `json:"subtotal"`
}

type EmptyState struct {
	Message  string `json:"message"`
	LinkText string `json:"link_text"`
	LinkHref string `json:"link_href"`
}

// Totals is the summary panel next to the cart table.
type Totals struct {
	Subtotal int         `json:"subtotal"`
	Discount int         `json:"discount"`
	Total    int         `json:"total"`
	Lines    []TotalLine `json:"lines"`
}

type TotalLine struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Strong bool   `json:"strong,omitempty"`
}

// Badge is the item counter on the navigation cart icon.
type Badge struct {
	Count   int  `json:"count"`
	Visible bool `json:"visible"`
}

// FormatRupees renders an amount the way the storefront prints prices.
func FormatRupees(amount int) string {
	return "Rs. " + strconv.Itoa(amount)
}

func (c *Cart) Badge() Badge {
	count := c.Count()
	return Badge{Count: count, Visible: count > 0}
}

func (c *Cart) Display() Display {
	display := Display{
		Rows:      make([]Row, 0, len(c.Items)),
		Totals:    c.Totals(),
		Recovered: c.Status == localstore.LoadStatusCorrupt,
	}
	if c.IsEmpty() {
		display.EmptyState = &EmptyState{
			Message:  emptyCartMessage,
			LinkText: emptyCartLinkText,
			LinkHref: emptyCartLinkHref,
		}
		return display
	}
	for _, item := range c.Items {
		display.Rows = append(display.Rows, Row{
			LineID:      item.LineID,
			Name:        item.Name,
			Image:       item.Image,
			ImageAlt:    item.Name,
			Size:        item.Size,
			Price:       FormatRupees(item.Price),
			Quantity:    item.Quantity,
			MinQuantity: 1,
			Subtotal:    FormatRupees(item.Subtotal()),
		})
	}
	return display
}

// Totals builds the summary rows. The discount row only appears while a
// discount is in effect.
func (c *Cart) Totals() Totals {
	subtotal := c.Total()
	discount := c.Discount()
	total := subtotal - discount

	lines := []TotalLine{{Label: "Cart Subtotal", Value: FormatRupees(subtotal)}}
	if discount > 0 {
		lines = append(lines, TotalLine{Label: "Discount", Value: "- " + FormatRupees(discount)})
	}
	lines = append(lines,
		TotalLine{Label: "Shipping", Value: "Free"},
		TotalLine{Label: "Total", Value: FormatRupees(total), Strong: true},
	)
	return Totals{Subtotal: subtotal, Discount: discount, Total: total, Lines: lines}
}

func checkoutPrompt(total int) string {
	var b strings.Builder
	b.WriteString("Proceed to checkout?\n\n")
	b.WriteString("Total: " + FormatRupees(total))
	b.WriteString("\n\nNote: This is a demo. Payment integration coming soon.")
	return b.String()
}

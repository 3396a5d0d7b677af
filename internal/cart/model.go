package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
)

// Item is one cart line as persisted under the cart storage key. LineID is
// additive; lines written by older pages get one on first load.
type Item struct {
	Name     string  `json:"name"`
	Price    int     `json:"price"`
	Image    string  `json:"image"`
	Category *string `json:"category,omitempty"`
	Size     *string `json:"size,omitempty"`
	Quantity int     `json:"quantity"`
	LineID   string  `json:"lineId,omitempty"`
}

// Subtotal is price times quantity.
func (i Item) Subtotal() int {
	return i.Price * i.Quantity
}

// Cart is a visitor's items plus the coupon stored next to them.
type Cart struct {
	Items  []Item
	Coupon *Coupon
	// Status records how the stored items were read; LoadStatusCorrupt means
	// the cart was unreadable and is being treated as empty.
	Status localstore.LoadStatus
}

// Total is the sum of price*quantity over all lines.
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Discount is floor(total * percent / 100) while a coupon with a non-zero
// percent is applied, else 0. It follows the live total.
func (c *Cart) Discount() int {
	if c.Coupon == nil || c.Coupon.Code == "" || c.Coupon.Percent == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(c.Total())).
		Mul(decimal.NewFromInt(int64(c.Coupon.Percent))).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart())
}

// GrandTotal is Total minus Discount; shipping is always free.
func (c *Cart) GrandTotal() int {
	return c.Total() - c.Discount()
}

// Count is the number shown on the cart badge.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether there are no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IndexByName returns the first line with the given name, or -1.
func (c *Cart) IndexByName(name string) int {
	for i, item := range c.Items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// IndexByNameAndSize matches detail-page lines. A nil size only matches lines
// without a size, and an empty size only matches an empty size.
func (c *Cart) IndexByNameAndSize(name string, size *string) int {
	for i, item := range c.Items {
		if item.Name == name && sameSize(item.Size, size) {
			return i
		}
	}
	return -1
}

// IndexByLineID returns the line with the given identifier, or -1.
func (c *Cart) IndexByLineID(lineID string) int {
	if lineID == "" {
		return -1
	}
	for i, item := range c.Items {
		if item.LineID == lineID {
			return i
		}
	}
	return -1
}

// RemoveByName drops every line with the given name, sized variants included.
// It returns how many lines were dropped.
func (c *Cart) RemoveByName(name string) int {
	kept := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Name != name {
			kept = append(kept, item)
		}
	}
	removed := len(c.Items) - len(kept)
	c.Items = kept
	return removed
}

// RemoveAt drops the line at index i.
func (c *Cart) RemoveAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// SetQuantityAt stores max(1, qty) on the line at index i.
func (c *Cart) SetQuantityAt(i, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.Items[i].Quantity = qty
}

func sameSize(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

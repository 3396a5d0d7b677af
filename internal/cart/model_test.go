package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCartTotals(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{
		{Name: "Blue Vase", Price: 1999, Quantity: 2},
		{Name: "Rug", Price: 333, Quantity: 1},
	}}
	assert.Equal(t, 4331, c.Total())
	assert.Equal(t, 0, c.Discount())
	assert.Equal(t, 3, c.Count())

	c.Coupon = &Coupon{Code: "SAVE10", Percent: 10}
	assert.Equal(t, 433, c.Discount())
	assert.Equal(t, 3898, c.GrandTotal())

	c.Items = c.Items[:1]
	assert.Equal(t, 399, c.Discount(), "discount follows the live total")
}

func TestCartDiscountRequiresCodeAndPercent(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{{Name: "A", Price: 1000, Quantity: 1}}}
	c.Coupon = &Coupon{Code: "", Percent: 20}
	assert.Equal(t, 0, c.Discount())
	c.Coupon = &Coupon{Code: "SAVE10", Percent: 0}
	assert.Equal(t, 0, c.Discount())
}

func TestIndexByNameAndSize(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{
		{Name: "Shawl", Quantity: 1},
		{Name: "Shawl", Size: strPtr(""), Quantity: 1},
		{Name: "Shawl", Size: strPtr("L"), Quantity: 1},
	}}
	assert.Equal(t, 0, c.IndexByNameAndSize("Shawl", nil))
	assert.Equal(t, 1, c.IndexByNameAndSize("Shawl", strPtr("")))
	assert.Equal(t, 2, c.IndexByNameAndSize("Shawl", strPtr("L")))
	assert.Equal(t, -1, c.IndexByNameAndSize("Shawl", strPtr("XL")))
	assert.Equal(t, 0, c.IndexByName("Shawl"))
}

func TestRemoveByNameDropsEverySize(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{
		{Name: "Shawl", Size: strPtr("M"), Quantity: 1},
		{Name: "Vase", Quantity: 1},
		{Name: "Shawl", Size: strPtr("L"), Quantity: 1},
	}}
	require.Equal(t, 2, c.RemoveByName("Shawl"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Vase", c.Items[0].Name)
	assert.Equal(t, 0, c.RemoveByName("missing"))
}

func TestSetQuantityAtClamps(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{{Name: "A", Quantity: 4}}}
	c.SetQuantityAt(0, -3)
	assert.Equal(t, 1, c.Items[0].Quantity)
	c.SetQuantityAt(0, 6)
	assert.Equal(t, 6, c.Items[0].Quantity)
}

func TestDisplayEmptyAndRows(t *testing.T) {
	t.Parallel()

	empty := (&Cart{}).Display()
	require.NotNil(t, empty.EmptyState)
	assert.Equal(t, "Your cart is empty.", empty.EmptyState.Message)
	assert.Equal(t, "shop.html", empty.EmptyState.LinkHref)
	assert.Empty(t, empty.Rows)
	assert.Equal(t, 0, empty.Totals.Subtotal)

	c := &Cart{
		Items:  []Item{{Name: "Lamp", Price: 1200, Image: "img/lamp.jpg", Quantity: 2, LineID: "l1"}},
		Coupon: &Coupon{Code: "WELCOME20", Percent: 20},
	}
	d := c.Display()
	require.Nil(t, d.EmptyState)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, Row{
		LineID: "l1", Name: "Lamp", Image: "img/lamp.jpg", ImageAlt: "Lamp",
		Price: "Rs. 1200", Quantity: 2, MinQuantity: 1, Subtotal: "Rs. 2400",
	}, d.Rows[0])

	want := []TotalLine{
		{Label: "Cart Subtotal", Value: "Rs. 2400"},
		{Label: "Discount", Value: "- Rs. 480"},
		{Label: "Shipping", Value: "Free"},
		{Label: "Total", Value: "Rs. 1920", Strong: true},
	}
	assert.Equal(t, want, d.Totals.Lines)
}

func TestTotalsOmitDiscountRowWithoutCoupon(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{{Name: "Lamp", Price: 100, Quantity: 1}}}
	for _, line := range c.Totals().Lines {
		if line.Label == "Discount" {
			t.Fatalf("unexpected discount row %+v", line)
		}
	}
}

func TestBadge(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Badge{Count: 0, Visible: false}, (&Cart{}).Badge())
	c := &Cart{Items: []Item{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, Badge{Count: 5, Visible: true}, c.Badge())
}

func TestCheckoutPrompt(t *testing.T) {
	t.Parallel()

	want := "Proceed to checkout?\n\nTotal: Rs. 900\n\nNote: This is a demo. Payment integration coming soon."
	assert.Equal(t, want, checkoutPrompt(900))
}

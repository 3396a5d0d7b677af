package cart

import "strings"

var couponPercents = map[string]int{
	"SAVE10":    10,
	"WELCOME20": 20,
	"ART50":     50,
}

// Coupon is an applied discount code.
type Coupon struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

// NormalizeCouponCode trims and upper-cases a typed code.
func NormalizeCouponCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// LookupCoupon resolves a typed code against the coupon table.
func LookupCoupon(raw string) (Coupon, bool) {
	code := NormalizeCouponCode(raw)
	pct, ok := couponPercents[code]
	if !ok {
		return Coupon{}, false
	}
	return Coupon{Code: code, Percent: pct}, true
}

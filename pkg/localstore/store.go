// Package localstore keeps the string-keyed values a storefront page would
// otherwise hold in the browser's local storage, partitioned per visitor.
package localstore

import "context"

// Keys shared with the storefront script; values must stay byte compatible.
const (
	KeyCart                  = "localArtHubCart"
	KeyAppliedCoupon         = "appliedCoupon"
	KeyDiscountPercent       = "discountPercent"
	KeyNewsletterSubscribers = "newsletter_subscribers"
	KeyContactMessages       = "contact_messages"
)

// Store is last-write-wins storage; a missing key is reported through found,
// never as an error.
type Store interface {
	Get(ctx context.Context, visitorID, key string) (value string, found bool, err error)
	Set(ctx context.Context, visitorID, key, value string) error
	Remove(ctx context.Context, visitorID string, keys ...string) error
}

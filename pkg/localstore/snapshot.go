package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
)

// jsonKeys hold JSON arrays; the coupon keys hold plain strings.
var jsonKeys = map[string]bool{
	KeyCart:                  true,
	KeyAppliedCoupon:         false,
	KeyDiscountPercent:       false,
	KeyNewsletterSubscribers: true,
	KeyContactMessages:       true,
}

// Keys lists every storefront key in a stable order.
func Keys() []string {
	keys := make([]string, 0, len(jsonKeys))
	for k := range jsonKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Export returns the visitor's stored storefront values keyed like the
// browser's local storage. Keys that were never written are omitted.
func Export(ctx context.Context, store Store, visitorID string) (map[string]string, error) {
	out := make(map[string]string)
	for _, key := range Keys() {
		value, found, err := store.Get(ctx, visitorID, key)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if found {
			out[key] = value
		}
	}
	return out, nil
}

// Import writes a local storage snapshot taken from a browser. Every key must
// be a storefront key and the list keys must hold JSON arrays; nothing is
// written unless the whole snapshot is valid.
func Import(ctx context.Context, store Store, visitorID string, entries map[string]string) error {
	for key, value := range entries {
		isJSON, known := jsonKeys[key]
		if !known {
			return pkgerrors.Validation("unknown storage key", key)
		}
		if isJSON {
			var list []json.RawMessage
			if err := json.Unmarshal([]byte(value), &list); err != nil {
				return pkgerrors.Validation("value must be a JSON array", key)
			}
		}
	}
	for _, key := range Keys() {
		value, ok := entries[key]
		if !ok {
			continue
		}
		if err := store.Set(ctx, visitorID, key, value); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}

package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
)

// LoadStatus says how a stored JSON value was read.
type LoadStatus int

const (
	// LoadStatusMissing means the key was never written.
	LoadStatusMissing LoadStatus = iota
	LoadStatusOK
	// LoadStatusCorrupt means the value did not decode and dest was reset to
	// its zero value, so the caller proceeds as if nothing was stored.
	LoadStatusCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadStatusMissing:
		return "missing"
	case LoadStatusOK:
		return "ok"
	case LoadStatusCorrupt:
		return "corrupt"
	}
	return fmt.Sprintf("LoadStatus(%d)", int(s))
}

// LoadJSON decodes key into dest, which must be a non-nil pointer. Decode
// failures are reported through the status, not the error; the error is only
// set when the store itself fails.
func LoadJSON(ctx context.Context, store Store, visitorID, key string, dest any) (LoadStatus, error) {
	raw, found, err := store.Get(ctx, visitorID, key)
	if err != nil {
		return LoadStatusMissing, err
	}
	if !found {
		return LoadStatusMissing, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		resetValue(dest)
		return LoadStatusCorrupt, nil
	}
	return LoadStatusOK, nil
}

// SaveJSON encodes value and writes it under key.
func SaveJSON(ctx context.Context, store Store, visitorID, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, visitorID, key, string(payload))
}

func resetValue(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	elem := v.Elem()
	elem.Set(reflect.Zero(elem.Type()))
}

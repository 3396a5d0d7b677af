package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many entries one page can return.
	MaxLimit = 100

	cursorPrefix = "offset:"
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor pointing at offset.
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// ParseCursor decodes a cursor back into its offset. An empty cursor is the
// first page.
func ParseCursor(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor format")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset %q", raw)
	}
	return offset, nil
}

// Window returns one page of items and the cursor of the following page,
// which is empty on the last page.
func Window[T any](items []T, params Params) ([]T, string, error) {
	offset, err := ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if offset >= len(items) {
		return []T{}, "", nil
	}
	end := offset + NormalizeLimit(params.Limit)
	if end >= len(items) {
		return items[offset:], "", nil
	}
	return items[offset:end], EncodeCursor(end), nil
}

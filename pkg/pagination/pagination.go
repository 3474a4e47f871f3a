// Package pagination implements keyset paging for the dealer order history.
// Pages walk the (created_at, id) sort strictly backwards from the position
// named by an opaque cursor, so new orders arriving mid-scroll never shift
// rows between pages.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the order-history page size when none is requested.
	DefaultLimit = 20
	// MaxLimit caps a single history page.
	MaxLimit = 100
)

// Params holds the paging inputs accepted by the order listing.
type Params struct {
	Limit  int
	Cursor string
}

// Key pins a page boundary to one order row.
type Key struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// ClampLimit coerces a requested page size into [1, MaxLimit], substituting
// DefaultLimit for absent or nonsense values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// FetchSize is the clamped limit plus one look-ahead row. The extra row tells
// the repository whether another page exists without a second count query.
func FetchSize(limit int) int {
	return ClampLimit(limit) + 1
}

// EncodeKey serializes a page boundary into the opaque cursor handed to
// dealers.
func EncodeKey(key Key) string {
	raw := key.CreatedAt.UTC().Format(time.RFC3339Nano) + "," + key.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeKey reverses EncodeKey. A blank cursor means "first page" and decodes
// to nil without error.
func DecodeKey(value string) (*Key, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode history cursor: %w", err)
	}
	createdAt, id, ok := strings.Cut(string(raw), ",")
	if !ok {
		return nil, fmt.Errorf("malformed history cursor")
	}

	at, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("history cursor timestamp: %w", err)
	}
	rowID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("history cursor id: %w", err)
	}
	return &Key{CreatedAt: at, ID: rowID}, nil
}

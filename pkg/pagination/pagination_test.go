package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestClampLimit(t *testing.T) {
	if got := ClampLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := ClampLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := ClampLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := ClampLimit(10); got != 10 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestFetchSizeAddsLookAheadRow(t *testing.T) {
	if got := FetchSize(10); got != 11 {
		t.Fatalf("expected look-ahead row on top of limit, got %d", got)
	}
	if got := FetchSize(0); got != DefaultLimit+1 {
		t.Fatalf("expected look-ahead row on top of default, got %d", got)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key := Key{
		CreatedAt: time.Date(2025, 8, 12, 9, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	parsed, err := DecodeKey(EncodeKey(key))
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected decoded key")
	}
	if !parsed.CreatedAt.Equal(key.CreatedAt) {
		t.Fatalf("timestamp mismatch: %v != %v", parsed.CreatedAt, key.CreatedAt)
	}
	if parsed.ID != key.ID {
		t.Fatalf("id mismatch: %s != %s", parsed.ID, key.ID)
	}
}

func TestDecodeKeyRejectsGarbage(t *testing.T) {
	if _, err := DecodeKey("not-base64!"); err == nil {
		t.Fatal("expected decode error")
	}
	if key, err := DecodeKey("  "); err != nil || key != nil {
		t.Fatalf("blank cursor should be nil, got %v/%v", key, err)
	}
}

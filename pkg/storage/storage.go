// Package storage defines the key-value seam the storefront stores persist
// through. Values are opaque bytes; the JSON helpers cover the common case.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Persisted record keys.
const (
	KeyCurrentUser = "paoquentinho_user"
	KeyUsers       = "paoquentinho_users"
	KeyCart        = "paoquentinho_cart"
	KeyOrders      = "paoquentinho_orders"
)

// CorruptSuffix is appended to a key when unreadable data is set aside.
const CorruptSuffix = ".corrupt"

var ErrNotFound = errors.New("storage: key not found")

// Store is implemented by every backend (memory, redis, sql).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Mover is implemented by backends that can relocate a record atomically.
type Mover interface {
	Move(ctx context.Context, from, to string) error
}

// CorruptError reports a stored value that could not be decoded.
type CorruptError struct {
	Key string
	Raw []byte
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("storage: corrupt value under %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// LoadJSON decodes the value under key into dst. It returns (false, nil)
// when the key is absent and a *CorruptError when the value does not decode.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, &CorruptError{Key: key, Raw: raw, Err: err}
	}
	return true, nil
}

func SaveJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Quarantine copies the raw bytes of a corrupt record to key+CorruptSuffix
// and removes the original so the next load starts clean.
func Quarantine(ctx context.Context, s Store, ce *CorruptError) error {
	if ce == nil {
		return nil
	}
	if m, ok := s.(Mover); ok {
		if err := m.Move(ctx, ce.Key, ce.Key+CorruptSuffix); err != nil {
			return fmt.Errorf("quarantine %s: %w", ce.Key, err)
		}
		return nil
	}
	if err := s.Set(ctx, ce.Key+CorruptSuffix, ce.Raw); err != nil {
		return fmt.Errorf("quarantine %s: %w", ce.Key, err)
	}
	if err := s.Delete(ctx, ce.Key); err != nil {
		return fmt.Errorf("quarantine %s: %w", ce.Key, err)
	}
	return nil
}

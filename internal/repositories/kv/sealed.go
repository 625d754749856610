package kv

import (
	"context"
	"fmt"

	"careportal/internal/cryptox"
)

// Sealed wraps a Repository and encrypts values with AES-GCM so bearer
// credentials are never plaintext on disk. Keys stay in the clear. The AES
// key is derived from a per-device secret (see clientdb.DeviceKey).
type Sealed struct {
	inner Repository
	key   []byte
}

func NewSealed(inner Repository, key []byte) *Sealed {
	return &Sealed{inner: inner, key: key}
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	value, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("unseal %s: %w", key, err)
	}
	return value, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, s.key)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Sealed) List(ctx context.Context) (map[string][]byte, error) {
	sealed, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte, len(sealed))
	for k, v := range sealed {
		value, err := cryptox.Open(v, s.key)
		if err != nil {
			return nil, fmt.Errorf("unseal %s: %w", k, err)
		}
		result[k] = value
	}
	return result, nil
}

func (s *Sealed) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

// Update delegates transactionality to the inner store; fn sees a sealed
// view of the transactional repository.
func (s *Sealed) Update(ctx context.Context, fn func(Repository) error) error {
	return s.inner.Update(ctx, func(r Repository) error {
		return fn(NewSealed(r, s.key))
	})
}

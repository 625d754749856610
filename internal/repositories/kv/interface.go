// Package kv implements the durable key-value store backing the session
// layer. The interface is deliberately small so the backing store (sqlite
// here, an in-memory fake in tests) stays swappable.
package kv

import "context"

// Repository is a durable key-value store. Get returns (nil, nil) for a key
// that was never set; callers must not treat absence as an error.
//
// Update runs fn against a transactional view of the store: every write fn
// performs is committed together, or none are when fn returns an error.
// Multi-key mutations (the session layer's login and switch) go through it
// so a mid-sequence failure cannot leave the store half-written.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Update(ctx context.Context, fn func(Repository) error) error
}

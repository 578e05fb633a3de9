// Package storage is the key/value capability the scholar core persists through.
// It stands in for the browser's local storage: whole values are read and
// written at once, with no partial updates and no locking.
package storage

import (
	"context"
)

type Storage interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type prefixed struct {
	inner  Storage
	prefix string
}

// WithPrefix scopes every key under prefix, e.g. one namespace per browser client.
func WithPrefix(inner Storage, prefix string) Storage {
	return &prefixed{inner: inner, prefix: prefix + ":"}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

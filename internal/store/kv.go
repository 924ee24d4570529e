// Package store persists the two application collections (users and
// inventory) in a key-value backing store. Each collection lives under one
// namespaced key and is rewritten whole on every mutation.
package store

import (
	"context"
	"errors"
)

// Namespaced keys of the persisted collections.
const (
	UsersKey     = "costopro:users"
	InventoryKey = "costopro:inventory"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// KV is a durable string-keyed blob store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

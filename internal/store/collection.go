package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diewo77/costopro/internal/models"
)

// UserRepository loads and saves the whole identity collection.
type UserRepository interface {
	Load(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, users []models.User) error
}

// CatalogRepository loads and saves the whole inventory, most recent first.
type CatalogRepository interface {
	Load(ctx context.Context) ([]models.InventoryRecord, error)
	Save(ctx context.Context, records []models.InventoryRecord) error
}

// Collection is a JSON array persisted under a single key.
type Collection[T any] struct {
	kv   KV
	key  string
	seed func() []T
}

// NewCollection creates a collection. seed provides the contents returned
// while the key is absent; a nil seed means an empty collection.
func NewCollection[T any](kv KV, key string, seed func() []T) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, seed: seed}
}

// NewUserRepository returns the users collection, seeded with seed while
// nothing has been saved yet.
func NewUserRepository(kv KV, seed []models.User) *Collection[models.User] {
	return NewCollection(kv, UsersKey, func() []models.User {
		return append([]models.User(nil), seed...)
	})
}

// NewCatalogRepository returns the inventory collection, empty by default.
func NewCatalogRepository(kv KV) *Collection[models.InventoryRecord] {
	return NewCollection[models.InventoryRecord](kv, InventoryKey, nil)
}

// Key returns the backing key.
func (c *Collection[T]) Key() string { return c.key }

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		if c.seed == nil {
			return []T{}, nil
		}
		return c.seed(), nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.kv.Put(ctx, c.key, raw)
}

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/diewo77/costopro/internal/models"
	"github.com/diewo77/costopro/internal/pricing"
	"github.com/diewo77/costopro/internal/store"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteKV(t *testing.T) store.KV {
	t.Helper()
	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := d.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := d.AutoMigrate(&models.KVEntry{}); err != nil {
		t.Fatal(err)
	}
	return store.NewGormKV(d)
}

func newRedisKV(t *testing.T) store.KV {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return store.NewRedisKV(rdb)
}

func backends(t *testing.T) map[string]store.KV {
	return map[string]store.KV{
		"memory": store.NewMemoryKV(),
		"sqlite": newSQLiteKV(t),
		"redis":  newRedisKV(t),
	}
}

func TestKV_GetMissing(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(context.Background(), "nope")
			if !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestKV_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Put(ctx, "k", []byte("one")); err != nil {
				t.Fatal(err)
			}
			if err := kv.Put(ctx, "k", []byte("two")); err != nil {
				t.Fatal(err)
			}
			got, err := kv.Get(ctx, "k")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "two" {
				t.Fatalf("got %q want %q", got, "two")
			}
		})
	}
}

func TestUserRepository_SeedsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	seed := []models.User{{ID: 1, Email: "admin@costopro.com", Role: models.RoleAdmin}}
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := store.NewUserRepository(kv, seed)
			users, err := repo.Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(users) != 1 || users[0].Email != "admin@costopro.com" {
				t.Fatalf("expected seed, got %+v", users)
			}
			// mutating the loaded slice must not leak into the seed
			users[0].Email = "changed"
			again, _ := repo.Load(ctx)
			if again[0].Email != "admin@costopro.com" {
				t.Fatal("seed was mutated")
			}
		})
	}
}

func TestUserRepository_SavedEmptyListIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	repo := store.NewUserRepository(store.NewMemoryKV(), []models.User{{ID: 1}})
	if err := repo.Save(ctx, nil); err != nil {
		t.Fatal(err)
	}
	users, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %d users", len(users))
	}
}

func TestCatalogRepository_RoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := store.NewCatalogRepository(kv)
			empty, err := repo.Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(empty) != 0 {
				t.Fatalf("inventory should start empty, got %d", len(empty))
			}
			records := []models.InventoryRecord{
				{ID: 2, CreatedAt: created, AuthorName: "B", Input: pricing.Input{ProductName: "Arroz"}},
				{ID: 1, CreatedAt: created, AuthorName: "A", Input: pricing.Input{ProductName: "Azucar"}},
			}
			if err := repo.Save(ctx, records); err != nil {
				t.Fatal(err)
			}
			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
				t.Fatalf("order not preserved: %+v", got)
			}
			if got[0].Input.ProductName != "Arroz" || !got[0].CreatedAt.Equal(created) {
				t.Fatalf("record not preserved: %+v", got[0])
			}
		})
	}
}

func TestCollection_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	_ = kv.Put(ctx, store.InventoryKey, []byte("{not json"))
	if _, err := store.NewCatalogRepository(kv).Load(ctx); err == nil {
		t.Fatal("expected decode error")
	}
}

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/costopro/internal/models"
	"github.com/diewo77/costopro/internal/store"
)

// SeedCredential is the shared credential of the bootstrap accounts.
const SeedCredential = "123"

// SeedUsers returns the three bootstrap accounts with their credential
// transformed by hash (identity for plaintext storage).
func SeedUsers(hash func(string) (string, error)) ([]models.User, error) {
	users := []models.User{
		{ID: models.BootstrapAdminID, Name: "Administrador", Email: "admin@costopro.com", Role: models.RoleAdmin},
		{ID: 2, Name: "Usuario Operativo", Email: "user@costopro.com", Role: models.RoleUser},
		{ID: 3, Name: "Visor", Email: "visor@costopro.com", Role: models.RoleViewer},
	}
	for i := range users {
		c, err := hash(SeedCredential)
		if err != nil {
			return nil, fmt.Errorf("hash seed credential: %w", err)
		}
		users[i].Credential = c
	}
	return users, nil
}

// EnsureSeeded persists the users collection if it was never written.
// Running it twice leaves the store unchanged.
func EnsureSeeded(ctx context.Context, kv store.KV, users []models.User) (bool, error) {
	if _, err := kv.Get(ctx, store.UsersKey); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	if err := store.NewUserRepository(kv, users).Save(ctx, users); err != nil {
		return false, err
	}
	return true, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/diewo77/costopro/auth"
	"github.com/diewo77/costopro/internal/config"
	"github.com/diewo77/costopro/internal/db"
	"github.com/diewo77/costopro/internal/policy"
	"github.com/diewo77/costopro/internal/services"
	"github.com/diewo77/costopro/internal/store"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Deps holds the configured services and authorization for the router.
type Deps struct {
	Identity *services.IdentityService
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Rates    *services.RateBook
	AuthGate *policy.AuthGate
	Sessions *auth.Manager
	Log      zerolog.Logger
}

// NewDeps builds every service over kv.
func NewDeps(kv store.KV, cfg *config.Config, log zerolog.Logger) (*Deps, error) {
	verifier, err := services.NewVerifier(cfg.App.CredentialScheme)
	if err != nil {
		return nil, err
	}
	seed, err := db.SeedUsers(verifier.Hash)
	if err != nil {
		return nil, err
	}

	identity := services.NewIdentityService(store.NewUserRepository(kv, seed), verifier, log)
	rates := services.NewRateBook(cfg.App.ExchangeRate)
	d := &Deps{
		Identity: identity,
		Auth:     services.NewAuthService(identity, verifier, log),
		Catalog:  services.NewCatalogService(store.NewCatalogRepository(kv), rates, log),
		Rates:    rates,
		AuthGate: policy.NewAuthGate(identity, cfg.App.ProfileCacheTTL),
		Sessions: auth.NewManager(cfg.App.SessionSecret),
		Log:      log,
	}
	identity.OnDelete(d.AuthGate.InvalidateUser)
	d.Sessions.Verify = func(ctx context.Context, uid uint) bool {
		u, err := identity.FindByID(ctx, uid)
		return err == nil && u != nil
	}
	return d, nil
}

// openKV selects the backing store. The returned closer releases connections.
func openKV(cfg *config.Config, log zerolog.Logger) (store.KV, func() error, error) {
	switch cfg.App.Backend {
	case config.BackendMemory:
		log.Warn().Msg("memory backend: data is lost on restart")
		return store.NewMemoryKV(), func() error { return nil }, nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		return store.NewRedisKV(rdb), rdb.Close, nil
	default:
		d, err := db.Open(cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(d); err != nil {
			return nil, nil, err
		}
		sqlDB, err := d.DB()
		if err != nil {
			return nil, nil, err
		}
		return store.NewGormKV(d), sqlDB.Close, nil
	}
}

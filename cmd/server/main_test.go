package main

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/diewo77/costopro/internal/config"
	"github.com/diewo77/costopro/internal/logx"
	"github.com/diewo77/costopro/internal/store"
)

func redisConfig(addr string) *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{Addr: addr},
		App: config.AppConfig{
			Backend:          config.BackendRedis,
			CredentialScheme: "plain",
			SessionSecret:    "test-secret",
		},
	}
}

func setFlag(t *testing.T, f *bool, v bool) {
	t.Helper()
	old := *f
	*f = v
	t.Cleanup(func() { *f = old })
}

func TestRunSeedOnly(t *testing.T) {
	m := miniredis.RunT(t)
	setFlag(t, seedOnlyFlag, true)

	if err := run(redisConfig(m.Addr()), logx.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !m.Exists(store.UsersKey) {
		t.Fatal("bootstrap accounts were not written")
	}
}

func TestRunReturnsStoreErrors(t *testing.T) {
	m := miniredis.RunT(t)
	addr := m.Addr()
	m.Close()
	setFlag(t, migrateOnlyFlag, true)

	if err := run(redisConfig(addr), logx.Nop()); err == nil {
		t.Fatal("expected an error for an unreachable store")
	}
}

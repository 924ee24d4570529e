package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/costopro/internal/config"
	"github.com/diewo77/costopro/internal/db"
	"github.com/diewo77/costopro/internal/logx"
	"github.com/diewo77/costopro/internal/services"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Prepare the backing store and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Write the bootstrap accounts if absent and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	log := logx.Default(cfg.App.Dev)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// run owns the backing store for its whole lifetime, so every return path
// closes it before main exits.
func run(cfg *config.Config, log zerolog.Logger) error {
	kv, closeKV, err := openKV(cfg, log)
	if err != nil {
		return fmt.Errorf("open %s backing store: %w", cfg.App.Backend, err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.Error().Err(err).Msg("closing backing store")
		}
	}()

	if *migrateOnlyFlag {
		log.Info().Msg("migrations completed successfully")
		return nil
	}

	if cfg.App.Seed || *seedOnlyFlag {
		verifier, err := services.NewVerifier(cfg.App.CredentialScheme)
		if err != nil {
			return fmt.Errorf("credential scheme: %w", err)
		}
		users, err := db.SeedUsers(verifier.Hash)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		created, err := db.EnsureSeeded(context.Background(), kv, users)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		log.Info().Bool("created", created).Msg("bootstrap accounts checked")
		if *seedOnlyFlag {
			return nil
		}
	}

	deps, err := NewDeps(kv, cfg, log)
	if err != nil {
		return fmt.Errorf("wiring: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(log, NewApp(deps)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Bool("dev", cfg.App.Dev).Str("backend", cfg.App.Backend).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		log.Info().Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}

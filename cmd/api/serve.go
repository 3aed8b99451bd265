package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sethvargo/go-envconfig"
	"github.com/urfave/cli/v2"

	"github.com/mindsai/account-api/internal/api"
	"github.com/mindsai/account-api/internal/api/metrics"
	"github.com/mindsai/account-api/internal/core/security"
	"github.com/mindsai/account-api/internal/infrastructure/config"
	"github.com/mindsai/account-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cli.Command {
	var envFile string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "Optional dotenv file loaded before reading the environment",
				Value:       ".env",
				Destination: &envFile,
			},
		},
		Action: func(c *cli.Context) error {
			// A missing file is fine; real environment variables always win.
			_ = godotenv.Load(envFile)
			return serve(c.Context)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx, envconfig.OsLookuper())
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "account-api",
	})

	users, pingers, closeStore, err := openStore(ctx, cfg, logger.For("store"))
	if err != nil {
		return err
	}
	defer closeStore()

	denylist, closeDenylist, err := openDenylist(ctx, cfg, pingers)
	if err != nil {
		return err
	}
	defer closeDenylist()

	tokens, err := security.NewTokenIssuer([]byte(cfg.JWTSecret))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	e, err := api.NewRouter(api.Deps{
		Users:         users,
		Hasher:        security.NewBcryptHasher(),
		Tokens:        tokens,
		Denylist:      denylist,
		Pingers:       pingers,
		SecureCookies: cfg.Production(),
		CORSOrigins:   cfg.CORSOrigins,
		Registry:      reg,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("revocation", cfg.Revocation).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

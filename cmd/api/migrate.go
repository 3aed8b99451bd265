package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/urfave/cli/v2"

	"github.com/mindsai/account-api/internal/infrastructure/config"
	"github.com/mindsai/account-api/internal/infrastructure/db/mongo"
	"github.com/mindsai/account-api/internal/infrastructure/db/postgres"
	"github.com/mindsai/account-api/pkg/logger"
)

func migrateCmd() *cli.Command {
	var envFile string
	return &cli.Command{
		Name:  "migrate",
		Usage: "Prepare the configured store (Postgres schema or Mongo indexes)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "Optional dotenv file loaded before reading the environment",
				Value:       ".env",
				Destination: &envFile,
			},
		},
		Action: func(c *cli.Context) error {
			_ = godotenv.Load(envFile)

			cfg, err := config.Load(c.Context, envconfig.OsLookuper())
			if err != nil {
				return err
			}
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production(), Service: "account-api"})

			switch cfg.StoreDriver {
			case config.StorePostgres:
				db, err := postgres.Open(c.Context, postgres.Config{DSN: cfg.Postgres.DSN})
				if err != nil {
					return err
				}
				defer db.Close()
				if err := postgres.Migrate(c.Context, db); err != nil {
					return err
				}
			case config.StoreMongo:
				store, err := mongo.Connect(c.Context, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
				if err != nil {
					return err
				}
				defer store.Close(context.Background())
				if err := store.Users().EnsureIndexes(c.Context); err != nil {
					return err
				}
			default:
				return fmt.Errorf("store %q has nothing to migrate", cfg.StoreDriver)
			}

			log.Info().Str("store", cfg.StoreDriver).Msg("migration complete")
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mindsai/account-api/internal/core/ports"
	"github.com/mindsai/account-api/internal/core/security"
	"github.com/mindsai/account-api/internal/infrastructure/config"
	"github.com/mindsai/account-api/internal/infrastructure/db/memory"
	"github.com/mindsai/account-api/internal/infrastructure/db/mongo"
	"github.com/mindsai/account-api/internal/infrastructure/db/postgres"
	"github.com/mindsai/account-api/internal/infrastructure/db/redis"
)

// openStore connects the configured credential store. The returned pingers
// feed the readiness probe.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.UserRepository, map[string]ports.Pinger, func(), error) {
	pingers := make(map[string]ports.Pinger)

	switch cfg.StoreDriver {
	case config.StoreMongo:
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := store.Users()
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, nil, nil, err
		}
		pingers["mongo"] = store.Pinger()
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")
		return repo, pingers, func() { _ = store.Close(context.Background()) }, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		pingers["postgres"] = postgres.NewPinger(db)
		log.Info().Msg("postgres connected")
		return postgres.NewUserRepository(db), pingers, func() { _ = db.Close() }, nil

	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return memory.NewUserRepository(), pingers, func() {}, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// openDenylist returns a nil interface when revocation is disabled.
func openDenylist(ctx context.Context, cfg *config.Config, pingers map[string]ports.Pinger) (ports.SessionDenylist, func(), error) {
	switch cfg.Revocation {
	case config.RevocationRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		pingers["redis"] = redis.NewPinger(client)
		return redis.NewDenylist(client), func() { _ = client.Close() }, nil

	case config.RevocationMemory:
		d, err := memory.NewDenylist(security.TokenTTL)
		if err != nil {
			return nil, nil, err
		}
		return d, func() { _ = d.Close() }, nil
	}

	return nil, func() {}, nil
}

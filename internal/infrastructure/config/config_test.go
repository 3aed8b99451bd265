package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.Production())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, RevocationNone, cfg.Revocation)
	assert.Equal(t, "account_api", cfg.Mongo.Database)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"PORT":               "8080",
		"CORS_ORIGIN":        "https://a.example,https://b.example",
		"STORE_DRIVER":       "postgres",
		"SESSION_REVOCATION": "redis",
		"REDIS_DB":           "2",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, RevocationRedis, cfg.Revocation)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_RequiresSecret(t *testing.T) {
	_, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	tests := map[string]map[string]string{
		"store driver": {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"revocation":   {"JWT_SECRET": "s", "SESSION_REVOCATION": "db"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DriverMongo, cfg.StoreDriver)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, 4, cfg.ActivityWorkers)
	require.Equal(t, "admin_dashboard", cfg.Mongo.Database)
	require.Empty(t, cfg.Redis.Addr)
	require.True(t, cfg.IsDevelopment())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"ENV":              "production",
		"STORE_DRIVER":     "Postgres",
		"SESSION_TTL":      "90m",
		"ACTIVITY_WORKERS": "8",
		"REDIS_ADDR":       "redis:6379",
		"REDIS_DB":         "2",
	}))
	require.NoError(t, err)

	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
	require.Equal(t, 8, cfg.ActivityWorkers)
	require.Equal(t, "redis:6379", cfg.Redis.Addr)
	require.Equal(t, 2, cfg.Redis.DB)
	require.False(t, cfg.IsDevelopment())
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoadFrom_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "sqlite",
	}))
	require.ErrorContains(t, err, "STORE_DRIVER")
}

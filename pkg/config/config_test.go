package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Report.CacheTTL())
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "USD", cfg.Report.Currency)
	assert.Equal(t, "inventory:", cfg.Redis.Prefix)
	assert.False(t, cfg.DB.ForceIPv4)
	require.NoError(t, cfg.Validate())
}

func TestFromViper_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "POSTGRES")
	v.Set("HTTP_PORT", "9090")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("REPORT_CACHE_TTL_SECONDS", 60)
	v.Set("DB_MIGRATE", false)
	v.Set("DB_FORCE_IPV4", true)
	v.Set("REDIS_PREFIX", "tienda-1:")

	cfg := config.FromViper(v)

	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Report.CacheTTL())
	assert.False(t, cfg.DB.Migrate)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "tienda-1:", cfg.Redis.Prefix)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Rechaza(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  any
		msg  string
	}{
		{"driver desconocido", "STORAGE_DRIVER", "sqlite", "STORAGE_DRIVER"},
		{"puerto cero", "HTTP_PORT", 0, "HTTP_PORT"},
		{"puerto alto", "HTTP_PORT", 70000, "HTTP_PORT"},
		{"ttl negativo", "REPORT_CACHE_TTL_SECONDS", -1, "REPORT_CACHE_TTL_SECONDS"},
		{"moneda desconocida", "REPORT_CURRENCY", "xyz", "REPORT_CURRENCY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tc.key, tc.val)
			err := config.FromViper(v).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestValidate_PrefijoRedisVacio(t *testing.T) {
	v := viper.New()
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("REDIS_PREFIX", "")

	err := config.FromViper(v).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_PREFIX")
}

func TestDSN_EscapaPassword(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "inv", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/inv?sslmode=disable", db.DSN())
	assert.Equal(t, db.DSN(), db.ConnectionString())

	db.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", db.ConnectionString())
}

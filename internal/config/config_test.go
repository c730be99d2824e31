package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "")
	t.Setenv("EMBEDDING_DIMENSION", "")
	t.Setenv("EMBEDDING_CACHE_BACKEND", "")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("PORT", "")
	t.Setenv("EMBEDDING_CACHE_FLUSH_INTERVAL", "")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.Embedding.Provider)
	assert.Equal(t, 768, cfg.Embedding.Dimension)
	assert.Equal(t, 512, cfg.Embedding.MaxTokens)
	assert.Equal(t, CacheBackendFile, cfg.Cache.Backend)
	assert.Zero(t, cfg.Cache.FlushInterval)
	assert.Equal(t, CatalogSourceBuiltin, cfg.Catalog.Source)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "OpenAI")
	t.Setenv("EMBEDDING_DIMENSION", "")
	t.Setenv("EMBEDDING_CACHE_BACKEND", "Redis")
	t.Setenv("EMBEDDING_CACHE_AUTOSAVE", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_JSON", "not-a-bool")
	t.Setenv("EMBEDDING_CACHE_FLUSH_INTERVAL", "30")

	cfg := Load()

	assert.Equal(t, ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, 1536, cfg.Embedding.Dimension, "openai default dimension")
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.True(t, cfg.Cache.AutoSave)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Cache.FlushInterval)
	assert.False(t, cfg.Server.LogJSON, "invalid bool falls back to default")
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "catalog",
	}}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=catalog sslmode=disable", cfg.GetDatabaseDSN())
}

package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type fakeCatalogRepository struct {
	rows    []models.CatalogEntry
	seedErr error
	seeds   int
}

func (r *fakeCatalogRepository) FindAll(_ context.Context) ([]models.CatalogEntry, error) {
	return r.rows, nil
}

func (r *fakeCatalogRepository) SeedIfEmpty(_ context.Context, entries []models.CatalogEntry) (bool, error) {
	if r.seedErr != nil {
		return false, r.seedErr
	}
	if len(r.rows) > 0 {
		return false, nil
	}
	r.seeds++
	r.rows = entries
	return true, nil
}

func TestCatalogSources(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills:\n  - Rust\n  - Go\n"), 0644))

	builtin, err := Catalog(ctx, &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogSourceBuiltin}}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, services.DefaultCatalog().Skills, builtin.Skills)

	fromFile, err := Catalog(ctx, &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogSourceFile, Path: path}}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "go"}, fromFile.Skills)

	_, err = Catalog(ctx, &config.Config{Catalog: config.CatalogConfig{Source: "ldap"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestCatalogFromRepositorySeedsEmptyTable(t *testing.T) {
	repo := &fakeCatalogRepository{}

	catalog, err := catalogFromRepository(context.Background(), repo, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.seeds)
	assert.Equal(t, services.DefaultCatalog().Skills, catalog.Skills)
}

func TestCatalogFromRepositoryUsesExistingRows(t *testing.T) {
	repo := &fakeCatalogRepository{rows: []models.CatalogEntry{
		{Kind: models.CatalogKindSkill, Keyword: "Elixir"},
		{Kind: models.CatalogKindSkill, Keyword: "go"},
	}}

	catalog, err := catalogFromRepository(context.Background(), repo, zap.NewNop())
	require.NoError(t, err)

	assert.Zero(t, repo.seeds)
	assert.Equal(t, []string{"elixir", "go"}, catalog.Skills)
	assert.Equal(t, services.DefaultCatalog().Surnames, catalog.Surnames)
}

func TestCatalogFromRepositorySeedError(t *testing.T) {
	repo := &fakeCatalogRepository{seedErr: errors.New("connection refused")}

	_, err := catalogFromRepository(context.Background(), repo, zap.NewNop())
	assert.EqualError(t, err, "connection refused")
}

func TestEncoderFallsBackWithoutKey(t *testing.T) {
	ctx := context.Background()

	for _, provider := range []string{config.ProviderGemini, config.ProviderOpenAI, "bert"} {
		t.Run(provider, func(t *testing.T) {
			cfg := &config.Config{Embedding: config.EmbeddingConfig{Provider: provider, Dimension: 768}}

			enc := Encoder(ctx, cfg, zap.NewNop())
			assert.Equal(t, "fallback", enc.Name())
			assert.Equal(t, 768, enc.Dimension())
		})
	}
}

func TestEncoderOpenAI(t *testing.T) {
	cfg := &config.Config{Embedding: config.EmbeddingConfig{
		Provider:     config.ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
		OpenAIModel:  "text-embedding-3-small",
		Dimension:    1536,
	}}

	enc := Encoder(context.Background(), cfg, zap.NewNop())
	assert.Equal(t, "openai:text-embedding-3-small", enc.Name())
}

func TestCacheStoreBackends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	for _, backend := range []string{config.CacheBackendFile, config.CacheBackendRedis, "memcached"} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{
				Cache: config.CacheConfig{Backend: backend, Path: path},
				Redis: config.RedisConfig{Addr: "127.0.0.1:1", CacheKey: "test"},
			}
			assert.NotNil(t, CacheStore(cfg, zap.NewNop()))
		})
	}
}

func TestFileCacheStoreFromConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Cache: config.CacheConfig{
		Backend: config.CacheBackendFile,
		Path:    filepath.Join(t.TempDir(), "cache.json"),
	}}

	store := CacheStore(cfg, zap.NewNop())
	require.NoError(t, store.Save(ctx, map[string][]float32{"go": {0.5, 0.25}}))

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, entries["go"])
}

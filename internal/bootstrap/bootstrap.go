// Package bootstrap builds the configurable pieces shared by the API server
// and the cache warm-up script.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// Catalog loads the keyword catalog from the configured source. The postgres
// source seeds an empty table with the built-in defaults.
func Catalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*services.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceBuiltin, "":
		return services.DefaultCatalog(), nil

	case config.CatalogSourceFile:
		catalog, err := services.LoadCatalogFile(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded from file", zap.String("path", cfg.Catalog.Path))
		return catalog, nil

	case config.CatalogSourcePostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return catalogFromRepository(ctx, repositories.NewCatalogRepository(db), logger)

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func catalogFromRepository(ctx context.Context, repo repositories.CatalogRepository, logger *zap.Logger) (*services.Catalog, error) {
	seeded, err := repo.SeedIfEmpty(ctx, services.DefaultCatalog().Entries())
	if err != nil {
		return nil, err
	}
	if seeded {
		logger.Info("catalog table seeded with defaults")
	}

	entries, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded from database", zap.Int("entries", len(entries)))
	return services.CatalogFromEntries(entries), nil
}

// Encoder builds the configured embedding encoder. When the encoder cannot be
// constructed the zero-vector fallback is returned and the failure is logged.
func Encoder(ctx context.Context, cfg *config.Config, logger *zap.Logger) services.Encoder {
	var (
		encoder services.Encoder
		err     error
	)

	switch cfg.Embedding.Provider {
	case config.ProviderOpenAI:
		encoder, err = services.NewOpenAIEncoder(cfg.Embedding.OpenAIAPIKey, cfg.Embedding.OpenAIModel, cfg.Embedding.Dimension)
	case config.ProviderGemini, "":
		encoder, err = services.NewGeminiEncoder(ctx, cfg.Embedding.GeminiAPIKey, cfg.Embedding.GeminiModel, cfg.Embedding.Dimension)
	default:
		err = fmt.Errorf("unknown embedding provider %q: %w", cfg.Embedding.Provider, services.ErrEncoderUnavailable)
	}

	if err != nil {
		logger.Warn("embedding encoder unavailable, all similarities will be 0", zap.Error(err))
		return services.NewFallbackEncoder(cfg.Embedding.Dimension)
	}

	logger.Info("embedding encoder ready",
		zap.String("encoder", encoder.Name()),
		zap.Int("dimension", encoder.Dimension()),
	)
	return encoder
}

// CacheStore builds the configured embedding cache backend. A backend that
// cannot be constructed falls back to the JSON file store.
func CacheStore(cfg *config.Config, logger *zap.Logger) services.CacheStore {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info("embedding cache backed by redis",
			zap.String("addr", cfg.Redis.Addr),
			zap.String("key", cfg.Redis.CacheKey),
		)
		return services.NewRedisCacheStore(client, cfg.Redis.CacheKey)

	case config.CacheBackendQdrant:
		store, err := services.NewQdrantCacheStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			cfg.Embedding.Dimension,
			logger,
		)
		if err == nil {
			logger.Info("embedding cache backed by qdrant", zap.String("collection", cfg.Qdrant.Collection))
			return store
		}
		logger.Warn("qdrant unavailable, using file cache", zap.Error(err))

	case config.CacheBackendFile, "":
	default:
		logger.Warn("unknown cache backend, using file cache", zap.String("backend", cfg.Cache.Backend))
	}

	logger.Info("embedding cache backed by file", zap.String("path", cfg.Cache.Path))
	return services.NewFileCacheStore(cfg.Cache.Path)
}

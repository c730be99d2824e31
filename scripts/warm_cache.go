package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/bootstrap"
	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/services"
)

// warm_cache embeds every skill in the configured catalog and persists the
// embedding cache, so the first screening request does not pay for it.
func main() {
	cfg := config.Load()

	zl, err := logger.New("warm-cache", cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	catalog, err := bootstrap.Catalog(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to load catalog", zap.Error(err))
	}

	encoder := bootstrap.Encoder(ctx, cfg, zl)
	if encoder.Name() == "fallback" {
		zl.Fatal("no embedding encoder configured, nothing to warm")
	}

	provider := services.NewEmbeddingProvider(
		encoder,
		services.NewEmbeddingCache(),
		bootstrap.CacheStore(cfg, zl),
		cfg.Embedding.MaxTokens,
		zl,
	)
	provider.LoadCache(ctx)

	successCount := 0
	failCount := 0
	for i, skill := range catalog.Skills {
		if _, err := provider.Embed(ctx, skill); err != nil {
			zl.Warn("failed to embed skill", zap.String("skill", skill), zap.Error(err))
			failCount++
			continue
		}
		successCount++

		if (i+1)%10 == 0 || i == len(catalog.Skills)-1 {
			zl.Info("progress", zap.Int("done", i+1), zap.Int("total", len(catalog.Skills)))
		}
	}

	if err := provider.SaveCache(ctx); err != nil {
		zl.Fatal("failed to save embedding cache", zap.Error(err))
	}

	zl.Info("warm-up summary",
		zap.Int("embedded", successCount),
		zap.Int("failed", failCount),
		zap.Int("cache_size", provider.CacheSize()),
	)

	if failCount > 0 {
		os.Exit(1)
	}
}

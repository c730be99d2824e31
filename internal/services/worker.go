package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CacheFlusher periodically persists the embedding cache while the server
// runs. Ticks where the cache has not grown are skipped.
type CacheFlusher interface {
	Start(ctx context.Context)
	Stop()
}

type cacheFlusher struct {
	embeddings EmbeddingProvider
	interval   time.Duration
	logger     *zap.Logger
	wg         sync.WaitGroup
	stopChan   chan struct{}
	stopOnce   sync.Once
}

func NewCacheFlusher(embeddings EmbeddingProvider, interval time.Duration, logger *zap.Logger) CacheFlusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cacheFlusher{
		embeddings: embeddings,
		interval:   interval,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start implements CacheFlusher.
func (f *cacheFlusher) Start(ctx context.Context) {
	if f.interval <= 0 {
		return
	}

	f.wg.Add(1)
	go f.run(ctx)

	f.logger.Info("embedding cache flusher started", zap.Duration("interval", f.interval))
}

// Stop implements CacheFlusher. It waits for an in-flight flush to finish.
func (f *cacheFlusher) Stop() {
	f.stopOnce.Do(func() { close(f.stopChan) })
	f.wg.Wait()
}

func (f *cacheFlusher) run(ctx context.Context) {
	defer f.wg.Done()
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	lastSize := f.embeddings.CacheSize()
	for {
		select {
		case <-f.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			size := f.embeddings.CacheSize()
			if size == lastSize {
				continue
			}
			if err := f.embeddings.SaveCache(ctx); err != nil {
				f.logger.Warn("embedding cache flush failed", zap.Error(err))
				continue
			}
			lastSize = size
			f.logger.Debug("embedding cache flushed", zap.Int("entries", size))
		}
	}
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EmbeddingProvider returns embeddings for skill strings and memoizes them
// under their lowercase form.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	// LoadCache merges the persisted cache into memory and returns how many
	// entries were added. Load failures leave the cache empty.
	LoadCache(ctx context.Context) int
	SaveCache(ctx context.Context) error
	CacheSize() int
}

type embeddingProvider struct {
	encoder   Encoder
	cache     *EmbeddingCache
	store     CacheStore
	maxTokens int
	group     singleflight.Group
	logger    *zap.Logger
}

// NewEmbeddingProvider wires an encoder to a cache. store may be nil, in
// which case the cache lives only in memory.
func NewEmbeddingProvider(encoder Encoder, cache *EmbeddingCache, store CacheStore, maxTokens int, logger *zap.Logger) EmbeddingProvider {
	if cache == nil {
		cache = NewEmbeddingCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &embeddingProvider{
		encoder:   encoder,
		cache:     cache,
		store:     store,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Embed implements EmbeddingProvider.
func (p *embeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	key := strings.ToLower(strings.TrimSpace(text))

	if vector, ok := p.cache.Get(key); ok {
		return vector, nil
	}

	// Zero vectors are never cached.
	if key == "" || isFallback(p.encoder) {
		return make([]float32, p.encoder.Dimension()), nil
	}

	failures := failuresFrom(ctx)
	if err := failures.get(key); err != nil {
		return nil, err
	}

	result, err, _ := p.group.Do(key, func() (interface{}, error) {
		if vector, ok := p.cache.Get(key); ok {
			return vector, nil
		}

		vector, err := p.encoder.Embed(ctx, truncateTokens(key, p.maxTokens))
		if err != nil {
			return nil, err
		}
		if len(vector) != p.encoder.Dimension() {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), p.encoder.Dimension())
		}

		return p.cache.PutIfAbsent(key, vector), nil
	})
	if err != nil {
		err = fmt.Errorf("failed to embed %q: %w", key, err)
		failures.put(key, err)
		return nil, err
	}

	return cloneVector(result.([]float32)), nil
}

type failureMemoKey struct{}

// failureMemo holds the keys whose encoder call failed during one request.
type failureMemo struct {
	mu   sync.Mutex
	errs map[string]error
}

// WithFailureMemo scopes a failure memo to ctx. Under it, a key whose
// encoder call failed returns the same error for the rest of the request
// without reaching the encoder again. An existing memo is kept.
func WithFailureMemo(ctx context.Context) context.Context {
	if failuresFrom(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, failureMemoKey{}, &failureMemo{errs: make(map[string]error)})
}

func failuresFrom(ctx context.Context) *failureMemo {
	memo, _ := ctx.Value(failureMemoKey{}).(*failureMemo)
	return memo
}

func (m *failureMemo) get(key string) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errs[key]
}

func (m *failureMemo) put(key string, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.errs[key]; !ok {
		m.errs[key] = err
	}
}

// Dimension implements EmbeddingProvider.
func (p *embeddingProvider) Dimension() int {
	return p.encoder.Dimension()
}

// CacheSize implements EmbeddingProvider.
func (p *embeddingProvider) CacheSize() int {
	return p.cache.Len()
}

// LoadCache implements EmbeddingProvider.
func (p *embeddingProvider) LoadCache(ctx context.Context) int {
	if p.store == nil {
		return 0
	}

	entries, err := p.store.Load(ctx)
	if err != nil {
		p.logger.Warn("embedding cache unavailable, starting empty", zap.Error(err))
		return 0
	}

	valid := make(map[string][]float32, len(entries))
	skipped := 0
	for key, vector := range entries {
		if len(vector) != p.encoder.Dimension() || isZeroVector(vector) {
			skipped++
			continue
		}
		valid[strings.ToLower(strings.TrimSpace(key))] = vector
	}
	if skipped > 0 {
		p.logger.Warn("skipped cached embeddings",
			zap.Int("skipped", skipped),
			zap.Int("dimension", p.encoder.Dimension()),
		)
	}

	added := p.cache.Merge(valid)
	p.logger.Info("embedding cache loaded", zap.Int("entries", added))
	return added
}

// SaveCache implements EmbeddingProvider.
func (p *embeddingProvider) SaveCache(ctx context.Context) error {
	if p.store == nil {
		return nil
	}

	if err := p.store.Save(ctx, p.cache.Snapshot()); err != nil {
		return fmt.Errorf("failed to save embedding cache: %w", err)
	}
	return nil
}

// fallbackEncoder stands in when no model can be loaded. Every text maps to
// the zero vector, so all similarities come out as 0.
type fallbackEncoder struct {
	dimension int
}

func NewFallbackEncoder(dimension int) Encoder {
	return &fallbackEncoder{dimension: dimension}
}

// Embed implements Encoder.
func (f *fallbackEncoder) Embed(_ context.Context, _ string) ([]float32, error) {
	return make([]float32, f.dimension), nil
}

// Dimension implements Encoder.
func (f *fallbackEncoder) Dimension() int {
	return f.dimension
}

// Name implements Encoder.
func (f *fallbackEncoder) Name() string {
	return "fallback"
}

func isFallback(encoder Encoder) bool {
	_, ok := encoder.(*fallbackEncoder)
	return ok
}

// truncateTokens keeps the first maxTokens whitespace-separated tokens.
func truncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	tokens := strings.Fields(text)
	if len(tokens) <= maxTokens {
		return text
	}
	return strings.Join(tokens[:maxTokens], " ")
}

func isZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

package services

import "sync"

// EmbeddingCache maps a lowercase skill string to its embedding. It is
// append-only: a key, once set, keeps its first vector for the lifetime of
// the process. Vectors are copied on the way in and out.
type EmbeddingCache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{vectors: make(map[string][]float32)}
}

func (c *EmbeddingCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.vectors[key]
	if !ok {
		return nil, false
	}
	return cloneVector(v), true
}

// PutIfAbsent stores vector under key unless the key already exists and
// returns whichever vector ends up cached.
func (c *EmbeddingCache) PutIfAbsent(key string, vector []float32) []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.vectors[key]; ok {
		return cloneVector(existing)
	}
	c.vectors[key] = cloneVector(vector)
	return cloneVector(vector)
}

// Merge inserts every absent entry and returns how many were added.
func (c *EmbeddingCache) Merge(entries map[string][]float32) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for key, vector := range entries {
		if _, ok := c.vectors[key]; ok {
			continue
		}
		c.vectors[key] = cloneVector(vector)
		added++
	}
	return added
}

func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Snapshot returns a deep copy of the cache contents.
func (c *EmbeddingCache) Snapshot() map[string][]float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]float32, len(c.vectors))
	for key, vector := range c.vectors {
		out[key] = cloneVector(vector)
	}
	return out
}

func cloneVector(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}

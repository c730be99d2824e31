package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisCacheStore struct {
	client *redis.Client
	key    string
}

// NewRedisCacheStore keeps the cache in a single hash: one field per skill,
// each value a JSON array of floats.
func NewRedisCacheStore(client *redis.Client, key string) CacheStore {
	return &redisCacheStore{client: client, key: key}
}

// Load implements CacheStore.
func (s *redisCacheStore) Load(ctx context.Context) (map[string][]float32, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache from redis: %w", err)
	}

	entries := make(map[string][]float32, len(fields))
	for skill, raw := range fields {
		var vector []float32
		if err := json.Unmarshal([]byte(raw), &vector); err != nil {
			return nil, fmt.Errorf("failed to decode cached vector for %q: %w", skill, err)
		}
		entries[skill] = vector
	}

	return entries, nil
}

// Save implements CacheStore.
func (s *redisCacheStore) Save(ctx context.Context, entries map[string][]float32) error {
	if len(entries) == 0 {
		return nil
	}

	values := make(map[string]interface{}, len(entries))
	for skill, vector := range entries {
		raw, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("failed to encode vector for %q: %w", skill, err)
		}
		values[skill] = string(raw)
	}

	if err := s.client.HSet(ctx, s.key, values).Err(); err != nil {
		return fmt.Errorf("failed to write embedding cache to redis: %w", err)
	}

	return nil
}

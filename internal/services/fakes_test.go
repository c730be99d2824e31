package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
)

type fakeEncoder struct {
	mu      sync.Mutex
	dim     int
	vectors map[string][]float32
	fail    map[string]error
	calls   map[string]int
	texts   []string
}

func newFakeEncoder(dim int, vectors map[string][]float32) *fakeEncoder {
	if vectors == nil {
		vectors = map[string][]float32{}
	}
	return &fakeEncoder{
		dim:     dim,
		vectors: vectors,
		fail:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (f *fakeEncoder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[text]++
	f.texts = append(f.texts, text)

	if err, ok := f.fail[text]; ok {
		return nil, err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return hashVector(text, f.dim), nil
}

func (f *fakeEncoder) Dimension() int { return f.dim }

func (f *fakeEncoder) Name() string { return "fake" }

func (f *fakeEncoder) callCount(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[text]
}

func (f *fakeEncoder) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

// hashVector derives a stable non-zero vector from text.
func hashVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	v := make([]float32, dim)
	for i := range v {
		v[i] = float32((seed>>(uint(i)%64))&0xff)/255 + 0.01
	}
	return v
}

type fakeStore struct {
	mu      sync.Mutex
	entries map[string][]float32
	loadErr error
	saveErr error
	saves   int
}

func (s *fakeStore) Load(_ context.Context) (map[string][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[string][]float32, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) Save(_ context.Context, entries map[string][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = entries
	return nil
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

var errEncoderDown = errors.New("encoder down")

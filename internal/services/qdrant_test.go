package services

import (
	"context"
	"testing"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointVectorPrefersDense(t *testing.T) {
	dense := &qdrant.RetrievedPoint{Vectors: &qdrant.VectorsOutput{
		VectorsOptions: &qdrant.VectorsOutput_Vector{Vector: &qdrant.VectorOutput{
			Vector: &qdrant.VectorOutput_Dense{Dense: &qdrant.DenseVector{Data: []float32{0.1, 0.2}}},
		}},
	}}
	assert.Equal(t, []float32{0.1, 0.2}, pointVector(dense))

	flat := &qdrant.RetrievedPoint{Vectors: &qdrant.VectorsOutput{
		VectorsOptions: &qdrant.VectorsOutput_Vector{Vector: &qdrant.VectorOutput{Data: []float32{0.3}}},
	}}
	assert.Equal(t, []float32{0.3}, pointVector(flat))

	assert.Empty(t, pointVector(&qdrant.RetrievedPoint{}))
}

func TestNewQdrantCacheStoreInvalidURL(t *testing.T) {
	_, err := NewQdrantCacheStore("://missing-scheme", "", "skill_embeddings", 3, nil)
	assert.Error(t, err)
}

func TestQdrantCacheStoreUnreachable(t *testing.T) {
	store, err := NewQdrantCacheStore("http://127.0.0.1:1", "", "skill_embeddings", 3, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = store.Load(ctx)
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, map[string][]float32{"python": {1, 0, 0}}))
}

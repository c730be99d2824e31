package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

const (
	qdrantSkillField = "skill"
	qdrantPageSize   = 256
)

type qdrantCacheStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

// NewQdrantCacheStore keeps one point per skill in a cosine collection. Point
// ids are derived from the skill string so repeated saves overwrite in place.
func NewQdrantCacheStore(urlStr, apiKey, collectionName string, vectorSize int, logger *zap.Logger) (CacheStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &qdrantCacheStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
		logger:         logger,
	}, nil
}

func (q *qdrantCacheStore) initCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// Load implements CacheStore.
func (q *qdrantCacheStore) Load(ctx context.Context) (map[string][]float32, error) {
	if err := q.initCollection(ctx); err != nil {
		return nil, err
	}

	entries := make(map[string][]float32)
	var offset *qdrant.PointId
	for {
		resp, err := q.client.GetPointsClient().Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: q.collectionName,
			Offset:         offset,
			Limit:          qdrant.PtrOf(uint32(qdrantPageSize)),
			WithPayload:    qdrant.NewWithPayload(true),
			WithVectors:    qdrant.NewWithVectors(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scroll points: %w", err)
		}

		for _, point := range resp.GetResult() {
			skill := point.GetPayload()[qdrantSkillField].GetStringValue()
			vector := pointVector(point)
			if skill == "" || len(vector) == 0 {
				continue
			}
			entries[skill] = vector
		}

		offset = resp.GetNextPageOffset()
		if offset == nil {
			break
		}
	}

	return entries, nil
}

// pointVector reads the dense vector of a point. Older servers only fill
// the flat data field.
func pointVector(point *qdrant.RetrievedPoint) []float32 {
	output := point.GetVectors().GetVector()
	if dense := output.GetDense().GetData(); len(dense) > 0 {
		return dense
	}
	return output.GetData()
}

// Save implements CacheStore.
func (q *qdrantCacheStore) Save(ctx context.Context, entries map[string][]float32) error {
	if err := q.initCollection(ctx); err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, 0, len(entries))
	for skill, vector := range entries {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(skillPointID(skill)),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				qdrantSkillField: skill,
			}),
		})
	}

	for start := 0; start < len(points); start += qdrantPageSize {
		end := min(start+qdrantPageSize, len(points))
		_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: q.collectionName,
			Points:         points[start:end],
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("failed to upsert points: %w", err)
		}
	}

	return nil
}

func skillPointID(skill string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(skill)).String()
}

package services

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// SkillMatcher scores how well a resume's skills cover a job's skills.
type SkillMatcher interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
	// MatchScore averages, over the job skills, the best similarity any
	// resume skill reaches, scaled to [0, 100]. Either set empty gives 0.
	MatchScore(ctx context.Context, resumeSkills, jobSkills []string) float64
}

type skillMatcher struct {
	embeddings EmbeddingProvider
	logger     *zap.Logger
}

func NewSkillMatcher(embeddings EmbeddingProvider, logger *zap.Logger) SkillMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &skillMatcher{embeddings: embeddings, logger: logger}
}

// Similarity implements SkillMatcher.
func (m *skillMatcher) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := m.embeddings.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := m.embeddings.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return cosineSimilarity(va, vb), nil
}

// MatchScore implements SkillMatcher.
func (m *skillMatcher) MatchScore(ctx context.Context, resumeSkills, jobSkills []string) float64 {
	resume := sortedSet(resumeSkills)
	job := sortedSet(jobSkills)
	if len(resume) == 0 || len(job) == 0 {
		return 0
	}

	ctx = WithFailureMemo(ctx)
	total := 0.0
	for _, jobSkill := range job {
		best := math.Inf(-1)
		for _, resumeSkill := range resume {
			sim, err := m.Similarity(ctx, resumeSkill, jobSkill)
			if err != nil {
				m.logger.Debug("similarity failed, scoring pair as 0",
					zap.String("resume_skill", resumeSkill),
					zap.String("job_skill", jobSkill),
					zap.Error(err),
				)
				sim = 0
			}
			best = math.Max(best, sim)
		}
		total += best
	}

	score := total / float64(len(job)) * 100
	return math.Min(100, math.Max(0, score))
}

// cosineSimilarity returns 0 when either vector has zero norm or the
// lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Min(1, math.Max(-1, sim))
}

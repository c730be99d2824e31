package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

type ScreenerService interface {
	Screen(ctx context.Context, job models.Document, resumes []models.Document) (*models.ScreeningResult, error)
}

type screenerService struct {
	textExtractor  TextExtractor
	fieldExtractor FieldExtractor
	matcher        SkillMatcher
	embeddings     EmbeddingProvider
	autoSave       bool
	logger         *zap.Logger
}

func NewScreenerService(
	textExtractor TextExtractor,
	fieldExtractor FieldExtractor,
	matcher SkillMatcher,
	embeddings EmbeddingProvider,
	autoSave bool,
	logger *zap.Logger,
) ScreenerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &screenerService{
		textExtractor:  textExtractor,
		fieldExtractor: fieldExtractor,
		matcher:        matcher,
		embeddings:     embeddings,
		autoSave:       autoSave,
		logger:         logger,
	}
}

// Screen implements ScreenerService.
func (s *screenerService) Screen(ctx context.Context, job models.Document, resumes []models.Document) (*models.ScreeningResult, error) {
	if len(resumes) == 0 {
		return nil, ErrNoResumes
	}

	ctx = WithFailureMemo(ctx)
	log := s.logger.With(zap.String("request_id", uuid.NewString()))
	log.Info("screening started",
		zap.String("job", job.Filename),
		zap.Int("resumes", len(resumes)),
	)

	jobText, err := s.textExtractor.ExtractText(job)
	if err != nil {
		return nil, fmt.Errorf("failed to read job description: %w", err)
	}

	log.Debug("job description text", zap.String("preview", logger.TruncateForLog(jobText, 200)))

	jobProfile := s.fieldExtractor.Extract(jobText)
	log.Info("job description parsed",
		zap.Strings("required_skills", jobProfile.Skills),
		zap.Float64("experience_years", jobProfile.ExperienceYears),
		zap.String("education", string(jobProfile.EducationLevel)),
	)

	candidates := make([]models.MatchResult, 0, len(resumes))
	for i, resume := range resumes {
		result, err := s.screenResume(ctx, i, resume, jobProfile.Skills)
		if err != nil {
			log.Warn("skipping resume",
				zap.Int("position", i+1),
				zap.String("filename", resume.Filename),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, result)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	log.Info("screening finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("skipped", len(resumes)-len(candidates)),
	)

	if s.autoSave && s.embeddings != nil {
		if err := s.embeddings.SaveCache(ctx); err != nil {
			log.Warn("embedding cache autosave failed", zap.Error(err))
		}
	}

	return &models.ScreeningResult{
		RequiredSkills: jobProfile.Skills,
		Candidates:     candidates,
	}, nil
}

// screenResume turns one resume into a MatchResult. Panics are returned as
// errors.
func (s *screenerService) screenResume(ctx context.Context, index int, resume models.Document, jobSkills []string) (result models.MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while screening resume: %v", r)
		}
	}()

	text, err := s.textExtractor.ExtractText(resume)
	if err != nil {
		return models.MatchResult{}, err
	}

	profile := s.fieldExtractor.Extract(text)
	name := profile.Name
	if name == models.UnknownName && resume.Stem() != "" {
		name = resume.Stem()
	}

	return models.MatchResult{
		ID:          fmt.Sprintf("candidate_%d", index+1),
		Name:        name,
		Email:       profile.Email,
		MatchScore:  s.matcher.MatchScore(ctx, profile.Skills, jobSkills),
		SkillsFound: profile.Skills,
		Experience:  profile.ExperienceYears,
		Education:   profile.EducationLevel,
	}, nil
}

package service

import (
	"context"
	"errors"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/logger"
	"mcq-checker/internal/validation"

	"go.uber.org/zap"
)

// CatalogService lists themes and loads their questions. It never returns an
// error: any backing-store failure is logged and reported as "no data".
type CatalogService interface {
	ListThemes(ctx context.Context) []string
	LoadQuestions(ctx context.Context, themeID string) []domain.Question
}

type catalogService struct {
	repo domain.ThemeRepository
}

// NewCatalogService creates a new CatalogService over any theme repository
func NewCatalogService(repo domain.ThemeRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListThemes(ctx context.Context) []string {
	themes, err := s.repo.ListThemes(ctx)
	if err != nil {
		logger.Get().Error("Failed to list themes", zap.Error(err))
		return []string{}
	}
	return themes
}

func (s *catalogService) LoadQuestions(ctx context.Context, themeID string) []domain.Question {
	if !validation.IsValidThemeID(themeID) {
		logger.Get().Debug("Ignoring invalid theme identifier", zap.String("theme", themeID))
		return []domain.Question{}
	}

	records, err := s.repo.LoadQuestions(ctx, themeID)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeThemeNotFound {
			logger.Get().Info("Theme not found", zap.String("theme", themeID))
		} else {
			logger.Get().Error("Error loading theme", zap.String("theme", themeID), zap.Error(err))
		}
		return []domain.Question{}
	}

	questions := make([]domain.Question, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		q := rec.ToQuestion()
		if err := q.Validate(); err != nil {
			logger.Get().Warn("Skipping malformed question",
				zap.String("theme", themeID),
				zap.String("question_id", q.ID),
				zap.Error(err),
			)
			continue
		}
		if _, dup := seen[q.ID]; dup {
			logger.Get().Warn("Skipping duplicate question id",
				zap.String("theme", themeID),
				zap.String("question_id", q.ID),
			)
			continue
		}
		seen[q.ID] = struct{}{}
		questions = append(questions, q)
	}
	return questions
}

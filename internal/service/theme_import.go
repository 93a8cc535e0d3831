package service

import (
	"context"
	"fmt"

	"mcq-checker/internal/cache"
	"mcq-checker/internal/domain"
	"mcq-checker/internal/logger"

	"go.uber.org/zap"
)

// ImportSummary counts what an import run did.
type ImportSummary struct {
	Themes    int
	Questions int
	Skipped   int
	Failed    []string
}

// ThemeImporter copies every theme of one store into another, dropping
// questions that would be skipped at load time anyway.
type ThemeImporter struct {
	source domain.ThemeRepository
	dest   domain.ThemeWriter
	cache  domain.Cache
}

// NewThemeImporter creates an importer. cache may be nil; when set, the
// imported themes' cache entries are invalidated.
func NewThemeImporter(source domain.ThemeRepository, dest domain.ThemeWriter, c domain.Cache) *ThemeImporter {
	return &ThemeImporter{source: source, dest: dest, cache: c}
}

// ImportAll imports every theme the source lists. A failing theme is
// recorded in the summary and does not stop the run.
func (i *ThemeImporter) ImportAll(ctx context.Context) (ImportSummary, error) {
	var summary ImportSummary

	themes, err := i.source.ListThemes(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list source themes: %w", err)
	}

	for _, themeID := range themes {
		imported, skipped, err := i.importTheme(ctx, themeID)
		if err != nil {
			logger.Get().Error("Theme import failed", zap.String("theme", themeID), zap.Error(err))
			summary.Failed = append(summary.Failed, themeID)
			continue
		}
		summary.Themes++
		summary.Questions += imported
		summary.Skipped += skipped
	}

	if i.cache != nil && summary.Themes > 0 {
		i.invalidate(ctx, cache.ThemeListKey())
	}

	logger.Get().Info("Theme import finished",
		zap.Int("themes", summary.Themes),
		zap.Int("questions", summary.Questions),
		zap.Int("skipped", summary.Skipped),
		zap.Strings("failed", summary.Failed),
	)
	return summary, nil
}

func (i *ThemeImporter) importTheme(ctx context.Context, themeID string) (int, int, error) {
	records, err := i.source.LoadQuestions(ctx, themeID)
	if err != nil {
		return 0, 0, err
	}

	valid := make([]domain.QuestionRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	skipped := 0
	for _, rec := range records {
		if err := rec.ToQuestion().Validate(); err != nil {
			logger.Get().Warn("Skipping malformed question", zap.String("theme", themeID), zap.String("question_id", rec.ID), zap.Error(err))
			skipped++
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			logger.Get().Warn("Skipping duplicate question id", zap.String("theme", themeID), zap.String("question_id", rec.ID))
			skipped++
			continue
		}
		seen[rec.ID] = struct{}{}
		valid = append(valid, rec)
	}

	if err := i.dest.SaveTheme(ctx, themeID, valid); err != nil {
		return 0, 0, err
	}
	if i.cache != nil {
		i.invalidate(ctx, cache.ThemeQuestionsKey(themeID))
	}

	logger.Get().Info("Imported theme", zap.String("theme", themeID), zap.Int("questions", len(valid)), zap.Int("skipped", skipped))
	return len(valid), skipped, nil
}

func (i *ThemeImporter) invalidate(ctx context.Context, key string) {
	if err := i.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate theme cache", zap.String("key", key), zap.Error(err))
	}
}

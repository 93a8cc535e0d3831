package domain

import "context"

// ThemeRepository is the port implemented by every theme backing store.
// LoadQuestions returns a ThemeNotFound DomainError for unknown themes;
// callers that must never fail wrap it (see service.CatalogService).
type ThemeRepository interface {
	ListThemes(ctx context.Context) ([]string, error)
	LoadQuestions(ctx context.Context, themeID string) ([]QuestionRecord, error)
}

// ThemeWriter replaces a stored theme and all of its questions.
type ThemeWriter interface {
	SaveTheme(ctx context.Context, themeID string, records []QuestionRecord) error
}

package service

import (
	"context"
	"time"

	"mcq-checker/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockThemeRepository ---
type MockThemeRepository struct {
	mock.Mock
}

func (m *MockThemeRepository) ListThemes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockThemeRepository) LoadQuestions(ctx context.Context, themeID string) ([]domain.QuestionRecord, error) {
	args := m.Called(ctx, themeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionRecord), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockCatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListThemes(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockCatalogService) LoadQuestions(ctx context.Context, themeID string) []domain.Question {
	args := m.Called(ctx, themeID)
	return args.Get(0).([]domain.Question)
}

func geoRecords() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{ID: "Q1", Text: "Capital of France?", Options: domain.OptionList{{Key: "A", Text: "Paris"}, {Key: "B", Text: "Rome"}}, Correct: "A", Explanation: "Paris is the capital."},
		{ID: "Q2", Text: "Capital of Italy?", Options: domain.OptionList{{Key: "A", Text: "Paris"}, {Key: "B", Text: "Rome"}}, Correct: "B"},
		{ID: "Q3", Text: "Name a river in Paris.", Answer: "The Seine"},
	}
}

func geoQuestions() []domain.Question {
	records := geoRecords()
	questions := make([]domain.Question, len(records))
	for i, rec := range records {
		questions[i] = rec.ToQuestion()
	}
	return questions
}

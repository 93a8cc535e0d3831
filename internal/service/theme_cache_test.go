package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mcq-checker/internal/cache"
	"mcq-checker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCachedThemeRepository_NilCacheReturnsNext(t *testing.T) {
	repo := new(MockThemeRepository)
	assert.Same(t, repo, NewCachedThemeRepository(repo, nil, time.Minute))
}

func TestCachedThemeRepository_LoadQuestions(t *testing.T) {
	ctx := context.Background()
	key := cache.ThemeQuestionsKey("geo")
	records := geoRecords()
	encoded, err := json.Marshal(records)
	require.NoError(t, err)

	t.Run("cache hit skips the source", func(t *testing.T) {
		repo := new(MockThemeRepository)
		c := new(MockCache)
		c.On("Get", ctx, key).Return(string(encoded), nil).Once()

		got, err := NewCachedThemeRepository(repo, c, time.Minute).LoadQuestions(ctx, "geo")

		require.NoError(t, err)
		assert.Equal(t, records, got)
		repo.AssertNotCalled(t, "LoadQuestions", mock.Anything, mock.Anything)
		c.AssertExpectations(t)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		repo := new(MockThemeRepository)
		repo.On("LoadQuestions", ctx, "geo").Return(records, nil).Once()
		c := new(MockCache)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss).Once()
		c.On("Set", ctx, key, string(encoded), 2*time.Minute).Return(nil).Once()

		got, err := NewCachedThemeRepository(repo, c, 2*time.Minute).LoadQuestions(ctx, "geo")

		require.NoError(t, err)
		assert.Equal(t, records, got)
		repo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		repo := new(MockThemeRepository)
		repo.On("LoadQuestions", ctx, "geo").Return(nil, domain.NewThemeNotFoundError("geo")).Once()
		c := new(MockCache)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss).Once()

		_, err := NewCachedThemeRepository(repo, c, time.Minute).LoadQuestions(ctx, "geo")

		assert.Error(t, err)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failures fall back to the source", func(t *testing.T) {
		repo := new(MockThemeRepository)
		repo.On("LoadQuestions", ctx, "geo").Return(records, nil).Once()
		c := new(MockCache)
		c.On("Get", ctx, key).Return("", errors.New("connection refused")).Once()
		c.On("Set", ctx, key, mock.Anything, time.Minute).Return(errors.New("connection refused")).Once()

		got, err := NewCachedThemeRepository(repo, c, time.Minute).LoadQuestions(ctx, "geo")

		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("undecodable entry is reloaded", func(t *testing.T) {
		repo := new(MockThemeRepository)
		repo.On("LoadQuestions", ctx, "geo").Return(records, nil).Once()
		c := new(MockCache)
		c.On("Get", ctx, key).Return("{not json", nil).Once()
		c.On("Set", ctx, key, string(encoded), time.Minute).Return(nil).Once()

		got, err := NewCachedThemeRepository(repo, c, time.Minute).LoadQuestions(ctx, "geo")

		require.NoError(t, err)
		assert.Equal(t, records, got)
		c.AssertExpectations(t)
	})
}

func TestCachedThemeRepository_ListThemes(t *testing.T) {
	ctx := context.Background()
	key := cache.ThemeListKey()

	repo := new(MockThemeRepository)
	repo.On("ListThemes", ctx).Return([]string{"geo"}, nil).Once()
	c := new(MockCache)
	c.On("Get", ctx, key).Return("", domain.ErrCacheMiss).Once()
	c.On("Set", ctx, key, `["geo"]`, defaultThemeCacheTTL).Return(nil).Once()

	themes, err := NewCachedThemeRepository(repo, c, 0).ListThemes(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"geo"}, themes)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

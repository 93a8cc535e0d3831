package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mcq-checker/internal/cache"
	"mcq-checker/internal/domain"
	"mcq-checker/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultThemeCacheTTL = 5 * time.Minute

// cachedThemeRepository puts a read-through cache in front of a theme
// repository. Only successful loads are cached; errors always reach the
// underlying store again on the next request.
type cachedThemeRepository struct {
	next    domain.ThemeRepository
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewCachedThemeRepository wraps next with cache. A nil cache returns next unchanged.
func NewCachedThemeRepository(next domain.ThemeRepository, c domain.Cache, ttl time.Duration) domain.ThemeRepository {
	if c == nil {
		return next
	}
	if ttl <= 0 {
		ttl = defaultThemeCacheTTL
	}
	return &cachedThemeRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedThemeRepository) ListThemes(ctx context.Context) ([]string, error) {
	return readThrough(ctx, r, cache.ThemeListKey(), func() ([]string, error) {
		return r.next.ListThemes(ctx)
	})
}

func (r *cachedThemeRepository) LoadQuestions(ctx context.Context, themeID string) ([]domain.QuestionRecord, error) {
	return readThrough(ctx, r, cache.ThemeQuestionsKey(themeID), func() ([]domain.QuestionRecord, error) {
		return r.next.LoadQuestions(ctx, themeID)
	})
}

func readThrough[T any](ctx context.Context, r *cachedThemeRepository, key string, load func() (T, error)) (T, error) {
	var zero T

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		errDecode := json.Unmarshal([]byte(cached), &value)
		if errDecode == nil {
			logger.Get().Debug("Theme cache hit", zap.String("key", key))
			return value, nil
		}
		logger.Get().Warn("Discarding undecodable theme cache entry", zap.String("key", key), zap.Error(errDecode))
	case errors.Is(err, domain.ErrCacheMiss):
		logger.Get().Debug("Theme cache miss", zap.String("key", key))
	default:
		logger.Get().Warn("Theme cache read failed, loading from source", zap.String("key", key), zap.Error(err))
	}

	res, err, _ := r.sfGroup.Do(key, func() (interface{}, error) {
		value, loadErr := load()
		if loadErr != nil {
			return nil, loadErr
		}
		data, errEncode := json.Marshal(value)
		if errEncode != nil {
			logger.Get().Error("Failed to encode theme data for caching", zap.String("key", key), zap.Error(errEncode))
			return value, nil
		}
		if errSet := r.cache.Set(ctx, key, string(data), r.ttl); errSet != nil {
			logger.Get().Warn("Failed to cache theme data", zap.String("key", key), zap.Error(errSet))
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type from singleflight.Do for %s: %T", key, res)
	}
	return value, nil
}

package cache

import "strings"

const (
	GlobalKeyPrefix = "mcqchecker"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ThemeListKey is the key of the cached, sorted theme ID list.
func ThemeListKey() string {
	return GenerateCacheKey("catalog", "themes", "all")
}

// ThemeQuestionsKey is the key of one theme's cached question records.
func ThemeQuestionsKey(themeID string) string {
	return GenerateCacheKey("catalog", "questions", themeID)
}

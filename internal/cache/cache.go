package cache

import (
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// CacheKey generates a cache key from a business name
func CacheKey(name string) string {
	return "candor:v1:business:" + strings.ToLower(strings.TrimSpace(name))
}

package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const DefaultExpiration = time.Hour

// Cache keeps JSON encoded lookup results in process memory only, even when
// redis is connected. A nil Cache never hits.
type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(expiration time.Duration) {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	memory := gocache.New(expiration, 10*time.Minute)
	c.Cache = cache.New[string](gocachestore.NewGoCache(memory, store.WithExpiration(expiration)))
}

func (c *Cache) Load(ctx context.Context, path string, target any) bool {
	if c == nil || c.Cache == nil {
		return false
	}

	cachedObject, err := c.Cache.Get(ctx, path)
	if err != nil || cachedObject == "" {
		return false
	}

	if err := json.Unmarshal([]byte(cachedObject), target); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Ignoring unreadable cached result")
		return false
	}

	return true
}

func (c *Cache) Save(ctx context.Context, path string, value any) {
	if c == nil || c.Cache == nil {
		return
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.Cache.Set(ctx, path, string(encoded)); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to cache result")
	}
}

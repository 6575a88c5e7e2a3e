package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
)

// CacheExpiration is how long an extracted intent is reused.
const CacheExpiration = 10 * time.Minute

const cacheKeyPrefix = "tfnsw-assistant:intent:"

// CachedExtractor memoises successful extractions by normalized text. A
// cached request that carried no explicit time is re-stamped to now on every
// hit; a requested time is kept.
type CachedExtractor struct {
	inner Extractor
	cache *cache.Cache[string]
	clock clock.Clock
}

// NewCachedExtractor caches inner's results in redis.
func NewCachedExtractor(inner Extractor, client *redis.Client, c clock.Clock) *CachedExtractor {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(CacheExpiration))

	return &CachedExtractor{
		inner: inner,
		cache: cache.New[string](redisStore),
		clock: c,
	}
}

func cacheKey(text string) string {
	return cacheKeyPrefix + strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func (c *CachedExtractor) Extract(ctx context.Context, text string) (Intent, error) {
	key := cacheKey(text)

	if cached, err := c.cache.Get(ctx, key); err == nil {
		var in Intent
		if err := json.Unmarshal([]byte(cached), &in); err == nil {
			if !in.NeedsFollowUp && in.TimeDefaulted {
				in.Datetime = c.clock.Now()
			}
			log.Debug().Str("key", key).Msg("Intent cache hit")
			return in, nil
		}
	}

	in, err := c.inner.Extract(ctx, text)
	if err != nil {
		return Intent{}, err
	}

	encoded, err := json.Marshal(in)
	if err != nil {
		return in, nil
	}
	if err := c.cache.Set(ctx, key, string(encoded)); err != nil {
		log.Warn().Err(fmt.Errorf("failed to cache intent: %w", err)).Str("key", key).Send()
	}

	return in, nil
}

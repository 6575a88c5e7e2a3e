package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding favorites, one field per route id.
const DefaultRedisKey = "tfnsw-assistant:favorites"

// RedisStore keeps favorites in a redis hash.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load returns the favorites ordered by creation time.
func (r *RedisStore) Load(ctx context.Context) ([]FavoriteRoute, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites hash: %w", err)
	}

	routes := make([]FavoriteRoute, 0, len(fields))
	for id, raw := range fields {
		var f FavoriteRoute
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("failed to parse favorite %s: %w", id, err)
		}
		routes = append(routes, f)
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].CreatedAt.Equal(routes[j].CreatedAt) {
			return routes[i].ID < routes[j].ID
		}
		return routes[i].CreatedAt.Before(routes[j].CreatedAt)
	})
	return routes, nil
}

// Save replaces the hash atomically.
func (r *RedisStore) Save(ctx context.Context, routes []FavoriteRoute) error {
	values := make([]any, 0, len(routes)*2)
	for _, f := range routes {
		encoded, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("failed to serialize favorite %s: %w", f.ID, err)
		}
		values = append(values, f.ID, string(encoded))
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(values) > 0 {
			pipe.HSet(ctx, r.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write favorites hash: %w", err)
	}
	return nil
}

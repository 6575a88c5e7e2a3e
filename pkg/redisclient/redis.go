// Package redisclient connects to the optional redis backing the intent
// cache and shared favorites.
package redisclient

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
)

const defaultConnectionAddress = "localhost:6379"

// Connect dials redis with the environment's settings and verifies the
// connection with a PING.
func Connect(ctx context.Context, env *config.Environment) (*redis.Client, error) {
	address := env.RedisAddress
	if address == "" {
		address = defaultConnectionAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: env.RedisPassword,
		DB:       env.RedisDatabase,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", address, err)
	}

	log.Debug().Str("address", address).Int("database", env.RedisDatabase).Msg("Connected to redis")
	return client, nil
}

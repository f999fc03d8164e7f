package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "settings:"

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) KeyValueStore {
	return &redisStore{
		client: client,
	}
}

func (that *redisStore) GetString(ctx context.Context, key string) (string, bool, error) {
	response, err := that.client.Get(ctx, redisKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return response, true, nil
}

func (that *redisStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	return getInt(ctx, that, key)
}

func (that *redisStore) SetString(ctx context.Context, key, value string) error {
	if err := that.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func (that *redisStore) SetInt(ctx context.Context, key string, value int) error {
	return that.SetString(ctx, key, strconv.Itoa(value))
}

// SetStrings - wraps the writes in MULTI/EXEC.
func (that *redisStore) SetStrings(ctx context.Context, values map[string]string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, redisKeyPrefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set batch of %d keys: %w", len(values), err)
	}

	return nil
}

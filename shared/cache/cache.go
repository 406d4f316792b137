package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"furk/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	Nil                   = redis.Nil
)

// RedisCache is the read-through cache in front of the list, detail and
// count queries. Values are JSON except plain strings, which are stored raw.
// TTL is in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var raw []byte

	switch v := value.(type) {
	case string:
		raw = []byte(v)
	default:
		raw, err = json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to marshal cache value")

			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
	}

	if err = cache.client.Set(ctx, key, raw, time.Second*time.Duration(duration)).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache value")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}

// Get loads key into value. A miss surfaces as a wrapped cache.Nil error so
// callers fall through to the database.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	cached, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	switch v := value.(type) {
	case *string:
		*v = cached
	default:
		if err := json.Unmarshal([]byte(cached), value); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache value")

			return fmt.Errorf("failed to unmarshal cache value: %w", err)
		}
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache value")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Clear deletes every key matching prefix, which is a SCAN glob pattern.
func (cache *redisCache) Clear(ctx context.Context, prefix string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelCacheKeyAttribute, prefix)

	iter := cache.client.Scan(ctx, 0, prefix, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if err = cache.client.Del(ctx, key).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to delete cache value")

			return fmt.Errorf("failed to delete cache value: %w", err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return nil
}

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// PageCache stores rendered HTML pages in Redis.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

const (
	pageKeyPrefix = "oldruins:page:"

	DefaultPageTTL = 5 * time.Minute
)

func NewPageCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}

	return &PageCache{
		client: client,
		ttl:    ttl,
		log:    logger,
	}
}

// Get returns the cached page for key. Errors are logged and reported as a miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		pc.log.WarnContext(ctx, "page cache get error", "key", key, "error", err)
		return nil, false
	}

	pc.log.DebugContext(ctx, "page cache hit", "key", key)
	return val, true
}

func (pc *PageCache) Set(ctx context.Context, key string, page []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, page, pc.ttl).Err(); err != nil {
		pc.log.WarnContext(ctx, "page cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached page and returns the number removed.
func (pc *PageCache) InvalidateAll(ctx context.Context) int {
	var (
		cursor  uint64
		deleted int
	)

	for {
		keys, next, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			pc.log.WarnContext(ctx, "page cache scan error", "error", err)
			return deleted
		}

		if len(keys) > 0 {
			n, err := pc.client.Del(ctx, keys...).Result()
			if err != nil {
				pc.log.WarnContext(ctx, "page cache delete error", "error", err)
			}
			deleted += int(n)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	pc.log.InfoContext(ctx, "page cache cleared", "deleted", deleted)
	return deleted
}

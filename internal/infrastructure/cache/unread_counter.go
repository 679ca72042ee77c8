package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	notifapp "github.com/weshare/backend/internal/application/notification"
	"github.com/weshare/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const unreadKeyPrefix = "notification:unread:"

// RedisUnreadCounter caches per-user unread notification counts in Redis.
// Cache errors degrade to misses so the badge count falls back to the database.
type RedisUnreadCounter struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisUnreadCounter connects to Redis and returns a counter cache
func NewRedisUnreadCounter(cfg config.RedisConfig, logger *zap.Logger) (*RedisUnreadCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisUnreadCounterWithClient(client, logger), nil
}

// NewRedisUnreadCounterWithClient creates a counter using an existing client.
// Useful for tests or when sharing a client across components.
func NewRedisUnreadCounterWithClient(client *redis.Client, logger *zap.Logger) *RedisUnreadCounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisUnreadCounter{
		client: client,
		ttl:    10 * time.Minute,
		logger: logger,
	}
}

// Get returns the cached unread count for a user, and whether it was present
func (c *RedisUnreadCounter) Get(ctx context.Context, recipientID uuid.UUID) (int64, bool) {
	val, err := c.client.Get(ctx, unreadKey(recipientID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("unread counter cache read failed",
				zap.String("recipient_id", recipientID.String()),
				zap.Error(err),
			)
		}
		return 0, false
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores the unread count for a user with a TTL
func (c *RedisUnreadCounter) Set(ctx context.Context, recipientID uuid.UUID, count int64) {
	if err := c.client.Set(ctx, unreadKey(recipientID), count, c.ttl).Err(); err != nil {
		c.logger.Warn("unread counter cache write failed",
			zap.String("recipient_id", recipientID.String()),
			zap.Error(err),
		)
	}
}

// Invalidate drops the cached count so the next read recomputes it
func (c *RedisUnreadCounter) Invalidate(ctx context.Context, recipientID uuid.UUID) {
	if err := c.client.Del(ctx, unreadKey(recipientID)).Err(); err != nil {
		c.logger.Warn("unread counter cache invalidation failed",
			zap.String("recipient_id", recipientID.String()),
			zap.Error(err),
		)
	}
}

// Close closes the underlying Redis client
func (c *RedisUnreadCounter) Close() error {
	return c.client.Close()
}

func unreadKey(recipientID uuid.UUID) string {
	return unreadKeyPrefix + recipientID.String()
}

var _ notifapp.UnreadCounter = (*RedisUnreadCounter)(nil)

package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kursadbilgin/fulfillment-bridge/internal/idempotency"
)

const defaultGuardTTL = 24 * time.Hour

var _ idempotency.Guard = (*RedisGuard)(nil)

// RedisGuard claims orders with SET NX so concurrent deliveries of the same
// event collapse to one courier call per process fleet. The TTL bounds how
// long a crashed attempt can keep an order claimed.
type RedisGuard struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *goredis.Client) (*RedisGuard, error) {
	return newRedisGuard(client, defaultGuardTTL)
}

func newRedisGuard(client *goredis.Client, ttl time.Duration) (*RedisGuard, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}

	return &RedisGuard{
		client: client,
		ttl:    ttl,
	}, nil
}

func (g *RedisGuard) Acquire(ctx context.Context, orderID int64) (bool, error) {
	if g == nil || g.client == nil {
		return false, fmt.Errorf("order guard is not initialized")
	}
	if orderID <= 0 {
		return false, fmt.Errorf("order id must be positive")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	acquired, err := g.client.SetNX(ctx, guardKey(orderID), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire order guard: %w", err)
	}

	return acquired, nil
}

func (g *RedisGuard) Release(ctx context.Context, orderID int64) error {
	if g == nil || g.client == nil {
		return fmt.Errorf("order guard is not initialized")
	}
	if orderID <= 0 {
		return fmt.Errorf("order id must be positive")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := g.client.Del(ctx, guardKey(orderID)).Err(); err != nil {
		return fmt.Errorf("failed to release order guard: %w", err)
	}

	return nil
}

func guardKey(orderID int64) string {
	return fmt.Sprintf("fulfillment:order:%d", orderID)
}

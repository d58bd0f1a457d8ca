package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/groupsix/gymbook/config"
	"github.com/groupsix/gymbook/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps the customer-facing upcoming schedule hot. The
// schedule is re-read on every customer page load but changes only on
// admin edits and bookings, so a short TTL plus explicit invalidation
// covers it.
type RedisCache struct {
	client      *redis.Client
	scheduleTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, scheduleTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		scheduleTTL: scheduleTTL,
	}
}

func (c *RedisCache) GetUpcoming(ctx context.Context) ([]domain.Session, error) {
	data, err := c.client.Get(ctx, upcomingKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var sessions []domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *RedisCache) SetUpcoming(ctx context.Context, sessions []domain.Session) error {
	payload, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, upcomingKey(), payload, c.scheduleTTL).Err()
}

func (c *RedisCache) InvalidateUpcoming(ctx context.Context) error {
	return c.client.Del(ctx, upcomingKey()).Err()
}

func upcomingKey() string {
	return "cache:schedule:upcoming"
}

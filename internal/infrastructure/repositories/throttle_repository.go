package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Filichkin/SA-RAG/domain"
)

// LoginThrottleImpl implements domain.LoginThrottle using Redis. A key
// per user marks an open resend window; SetNX makes the reservation
// atomic under concurrent logins.
type LoginThrottleImpl struct {
	client *redis.Client
	prefix string
	window time.Duration
}

// NewLoginThrottle creates a new Redis-backed login throttle
func NewLoginThrottle(client *redis.Client, window time.Duration) domain.LoginThrottle {
	return &LoginThrottleImpl{
		client: client,
		prefix: "2fa:res:",
		window: window,
	}
}

// Reserve implements domain.LoginThrottle
func (r *LoginThrottleImpl) Reserve(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("%s%d", r.prefix, userID)

	ok, err := r.client.SetNX(ctx, key, 1, r.window).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve login window: %w", err)
	}
	if !ok {
		return domain.ErrLoginThrottled
	}
	return nil
}

// Release implements domain.LoginThrottle
func (r *LoginThrottleImpl) Release(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("%s%d", r.prefix, userID)
	return r.client.Del(ctx, key).Err()
}

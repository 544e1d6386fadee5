package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Filichkin/SA-RAG/domain"
)

func setupThrottle(t *testing.T, window time.Duration) (domain.LoginThrottle, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLoginThrottle(client, window), mr
}

func TestLoginThrottleImpl_Reserve(t *testing.T) {
	throttle, _ := setupThrottle(t, time.Minute)
	ctx := context.Background()

	if err := throttle.Reserve(ctx, 1); err != nil {
		t.Fatalf("first reservation failed: %v", err)
	}
	if err := throttle.Reserve(ctx, 1); !errors.Is(err, domain.ErrLoginThrottled) {
		t.Fatalf("expected ErrLoginThrottled, got %v", err)
	}

	// The window is per user.
	if err := throttle.Reserve(ctx, 2); err != nil {
		t.Errorf("another user's login must not be throttled: %v", err)
	}
}

func TestLoginThrottleImpl_WindowExpires(t *testing.T) {
	throttle, mr := setupThrottle(t, time.Minute)
	ctx := context.Background()

	if err := throttle.Reserve(ctx, 1); err != nil {
		t.Fatalf("reservation failed: %v", err)
	}

	mr.FastForward(time.Minute + time.Second)

	if err := throttle.Reserve(ctx, 1); err != nil {
		t.Errorf("expected the window to be open again, got %v", err)
	}
}

func TestLoginThrottleImpl_Release(t *testing.T) {
	throttle, _ := setupThrottle(t, time.Minute)
	ctx := context.Background()

	if err := throttle.Reserve(ctx, 1); err != nil {
		t.Fatalf("reservation failed: %v", err)
	}
	if err := throttle.Release(ctx, 1); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := throttle.Reserve(ctx, 1); err != nil {
		t.Errorf("expected an immediate retry after release, got %v", err)
	}
}

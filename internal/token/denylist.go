package token

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "token:revoked:"

// Denylist records revoked token IDs until the tokens would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist stores revoked token IDs as expiring Redis keys.
type RedisDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client, now: time.Now}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// NopDenylist is used when Redis is unavailable: nothing is ever revoked.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (NopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// NewRedisClient connects to addr, which may be host:port or a redis:// URL.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("redis connected", "addr", opts.Addr)
	return client, nil
}

package repository

import (
	"context"
	"time"
)

// TokenCache is the ephemeral key/value store with per-entry expiry used for
// password reset codes and revoked-token blacklist entries.
type TokenCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetAll writes every entry with the same ttl, all or nothing.
	SetAll(ctx context.Context, entries map[string]string, ttl time.Duration) error
	// Get reports found=false for absent or expired keys.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Take returns the value of key and deletes it in one step.
	Take(ctx context.Context, key string) (value string, found bool, err error)
	Exists(ctx context.Context, key string) (bool, error)
	// TTL is zero for absent keys.
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error
}

package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

var (
	ErrLockNotConfigured = errors.New("lock_client_not_configured")
	ErrLockBadKey        = errors.New("lock_key_empty")
	ErrLockBadTTL        = errors.New("lock_ttl_not_positive")
)

// releaseScript deletes the key only when it still holds our token, so
// a lock that expired and was re-acquired elsewhere is never released
// by the previous holder.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker serializes webhook processing per payment across instances.
// A nil Locker is valid and means locking is disabled; callers fall
// back to the guarded SQL updates.
type Locker struct {
	client *redis.Client
	script *redis.Script
}

func NewLocker(client *redis.Client) *Locker {
	if client == nil {
		return nil
	}
	return &Locker{
		client: client,
		script: redis.NewScript(releaseScript),
	}
}

// TryLock attempts a non-blocking acquire. It returns the release
// token and whether the lock was won; losing the race is not an error.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, ErrLockNotConfigured
	}
	if key == "" {
		return "", false, ErrLockBadKey
	}
	if ttl <= 0 {
		return "", false, ErrLockBadTTL
	}

	token := uuid.NewString()
	won, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, won, nil
}

// Release drops the lock if the token still owns it. Releasing an
// expired or foreign lock is a no-op.
func (l *Locker) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}

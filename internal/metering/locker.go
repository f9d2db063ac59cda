package metering

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const lockPrefix = "creditmeter:metering:"

// Locker guards a generation while one worker fetches and settles it.
//
//go:generate mockgen -source=locker.go -destination=mock_locker.go -package=metering
type Locker interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// LocalLocker is enough for a single instance.
type LocalLocker struct {
	held sync.Map
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

func (l *LocalLocker) TryLock(_ context.Context, key string) (bool, error) {
	_, loaded := l.held.LoadOrStore(key, struct{}{})
	return !loaded, nil
}

func (l *LocalLocker) Unlock(_ context.Context, key string) error {
	l.held.Delete(key)
	return nil
}

// Only the owner that set the key may delete it.
const unlockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker shares locks between instances with SET NX. Keys expire after
// ttl so a crashed worker cannot hold a generation forever.
type RedisLocker struct {
	client redis.Cmdable
	owner  string
	ttl    time.Duration
}

func NewRedisLocker(client redis.Cmdable, owner string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		owner:  owner,
		ttl:    ttl,
	}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, lockPrefix+key, l.owner, l.ttl).Result()
}

func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	return l.client.Eval(ctx, unlockScript, []string{lockPrefix + key}, l.owner).Err()
}

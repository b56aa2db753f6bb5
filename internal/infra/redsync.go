package infra

import (
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Locker hands out redis-backed mutexes shared by every replica and CLI run.
type Locker struct {
	rs *redsync.Redsync
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{rs: redsync.New(goredis.NewPool(client))}
}

// Mutex returns the lock "mutex:<name>". tries of 1 fails fast when another holder exists.
func (l *Locker) Mutex(name string, expiry time.Duration, tries int) *redsync.Mutex {
	return l.rs.NewMutex("mutex:"+name,
		redsync.WithExpiry(expiry),
		redsync.WithTries(tries),
	)
}

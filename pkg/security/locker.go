package security

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Locker 跨实例的按 key 互斥
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// RedsyncLocker 基于 redsync 的分布式锁
type RedsyncLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
}

var _ Locker = (*RedsyncLocker)(nil)

func NewRedsyncLocker(client redis.UniversalClient, ttl time.Duration) *RedsyncLocker {
	return &RedsyncLocker{rs: redsync.New(goredis.NewPool(client)), ttl: ttl}
}

func (l *RedsyncLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex("lock:"+key, redsync.WithExpiry(l.ttl), redsync.WithTries(32))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		if ok, err := mutex.UnlockContext(context.Background()); !ok || err != nil {
			hlog.Warnf("release lock %s failed: ok=%v err=%v", key, ok, err)
		}
	}, nil
}

// NopLocker 单实例部署或测试时使用
type NopLocker struct{}

func (NopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained indica que outra instância segura o lock no momento
var ErrNotObtained = errors.New("lock já está em uso por outra instância")

// Lease é um lock adquirido que precisa ser liberado pelo chamador
type Lease interface {
	Release(ctx context.Context) error
}

// Locker serializa a sincronização por organização entre instâncias da API.
// Em ambiente com uma única instância o NoopLocker é suficiente.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

type RedisLocker struct {
	locker *redislock.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		locker: redislock.New(client),
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	lease, err := l.locker.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrNotObtained
		}
		return nil, err
	}

	return &redisLease{lease: lease}, nil
}

type redisLease struct {
	lease *redislock.Lock
}

func (l *redisLease) Release(ctx context.Context) error {
	return l.lease.Release(ctx)
}

// NoopLocker sempre concede o lock. Usado quando o Redis não está
// configurado.
type NoopLocker struct{}

func NewNoopLocker() *NoopLocker {
	return &NoopLocker{}
}

func (l *NoopLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	return noopLease{}, nil
}

type noopLease struct{}

func (noopLease) Release(ctx context.Context) error {
	return nil
}

// Package redis implementa el lock distribuido por agregado con bsm/redislock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Fulfillment-api/internal/application/ports"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/pkg/config"
)

var _ ports.Locker = (*Locker)(nil)

const (
	keyPrefix    = "fulfillment:lock:"
	retryBackoff = 50 * time.Millisecond
)

// NewClient abre la conexión a Redis y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// Locker implementa ports.Locker entre instancias con redislock.
type Locker struct {
	client *redislock.Client
	// retries cantidad de reintentos antes de reportar conflicto
	retries int
}

// NewLocker construye el locker sobre un cliente go-redis.
func NewLocker(rdb redislock.RedisClient) *Locker {
	return &Locker{client: redislock.New(rdb), retries: 100}
}

// Obtain toma key con reintentos lineales. Si el lock sigue tomado retorna domain.ErrConflict.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (ports.Unlock, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryBackoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("lock %s ocupado: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var ErrBusy = httperr.ErrBusiness("booking_busy")

// DayLocker segura a agenda de um dia do salão entre a checagem de
// disponibilidade e a gravação. O índice único no banco continua sendo a
// palavra final.
type DayLocker interface {
	Acquire(ctx context.Context, salonID uint, date string) (release func(), err error)
}

// ======================================================
// REDIS
// ======================================================

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisDayLocker struct {
	rdb      *redis.Client
	ttl      time.Duration
	attempts int
	wait     time.Duration
}

func NewRedisDayLocker(rdb *redis.Client, ttl time.Duration) *RedisDayLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisDayLocker{
		rdb:      rdb,
		ttl:      ttl,
		attempts: 5,
		wait:     100 * time.Millisecond,
	}
}

func key(salonID uint, date string) string {
	return fmt.Sprintf("salon:%d:day-hold:%s", salonID, date)
}

func (l *RedisDayLocker) Acquire(ctx context.Context, salonID uint, date string) (func(), error) {
	k := key(salonID, date)
	token := uuid.NewString()

	for i := 0; i < l.attempts; i++ {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return func() {
				// contexto próprio: liberar mesmo com a requisição cancelada
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(ctx, l.rdb, []string{k}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.wait):
		}
	}

	return nil, ErrBusy
}

// ======================================================
// NOP (REDIS_URL vazio)
// ======================================================

type NopDayLocker struct{}

func (NopDayLocker) Acquire(context.Context, uint, string) (func(), error) {
	return func() {}, nil
}

// New conecta no redis quando há URL; sem URL devolve o NopDayLocker.
func New(redisURL string, ttl time.Duration) (DayLocker, error) {
	if redisURL == "" {
		return NopDayLocker{}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisDayLocker(redis.NewClient(opts), ttl), nil
}

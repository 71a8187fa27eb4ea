package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	visitTotalKey   = "site:visits:total"
	visitDailyKey   = "site:visits:daily:"
	visitDailyTTL   = 48 * time.Hour
	visitDateLayout = "2006-01-02"
)

// VisitRepository tracks site visit counters in Redis.
type VisitRepository interface {
	Increment(ctx context.Context, now time.Time) (total, today int64, err error)
	Counts(ctx context.Context, now time.Time) (total, today int64, err error)
}

type visitRepository struct {
	client *redis.Client
	seed   int64
}

// NewVisitRepository returns a Redis-backed implementation. seed is the
// starting value of the total counter for a fresh deployment.
func NewVisitRepository(client *redis.Client, seed int64) VisitRepository {
	return &visitRepository{client: client, seed: seed}
}

func (r *visitRepository) Increment(ctx context.Context, now time.Time) (int64, int64, error) {
	if err := r.client.SetNX(ctx, visitTotalKey, r.seed, 0).Err(); err != nil {
		return 0, 0, err
	}
	total, err := r.client.Incr(ctx, visitTotalKey).Result()
	if err != nil {
		return 0, 0, err
	}

	dailyKey := visitDailyKey + now.Format(visitDateLayout)
	today, err := r.client.Incr(ctx, dailyKey).Result()
	if err != nil {
		return 0, 0, err
	}
	_ = r.client.Expire(ctx, dailyKey, visitDailyTTL).Err()

	return total, today, nil
}

func (r *visitRepository) Counts(ctx context.Context, now time.Time) (int64, int64, error) {
	total, err := r.client.Get(ctx, visitTotalKey).Int64()
	if err == redis.Nil {
		total = r.seed
	} else if err != nil {
		return 0, 0, err
	}

	today, err := r.client.Get(ctx, visitDailyKey+now.Format(visitDateLayout)).Int64()
	if err == redis.Nil {
		today = 0
	} else if err != nil {
		return 0, 0, err
	}

	return total, today, nil
}

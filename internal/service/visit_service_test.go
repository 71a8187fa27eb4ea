package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVisitRepo replicates the Redis counter semantics: a seeded total and a
// per-day counter keyed by date.
type stubVisitRepo struct {
	seed  int64
	total int64
	daily map[string]int64
}

func newStubVisitRepo(seed int64) *stubVisitRepo {
	return &stubVisitRepo{seed: seed, daily: make(map[string]int64)}
}

func (r *stubVisitRepo) Increment(_ context.Context, now time.Time) (int64, int64, error) {
	if r.total == 0 {
		r.total = r.seed
	}
	r.total++
	day := now.Format("2006-01-02")
	r.daily[day]++
	return r.total, r.daily[day], nil
}

func (r *stubVisitRepo) Counts(_ context.Context, now time.Time) (int64, int64, error) {
	total := r.total
	if total == 0 {
		total = r.seed
	}
	return total, r.daily[now.Format("2006-01-02")], nil
}

func TestVisitService_RecordVisit(t *testing.T) {
	svc := NewVisitService(newStubVisitRepo(1250))

	total, today, err := svc.RecordVisit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1251), total, "first visit starts from the seed")
	assert.Equal(t, int64(1), today)

	total, today, err = svc.RecordVisit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1252), total)
	assert.Equal(t, int64(2), today)
}

func TestVisitService_CountsWithoutIncrement(t *testing.T) {
	repo := newStubVisitRepo(1250)
	svc := NewVisitService(repo)

	total, today, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1250), total, "fresh deployment reports the seed")
	assert.Zero(t, today)

	_, _, err = svc.RecordVisit(context.Background())
	require.NoError(t, err)

	total, today, err = svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1251), total)
	assert.Equal(t, int64(1), today, "reading counters must not increment them")
}

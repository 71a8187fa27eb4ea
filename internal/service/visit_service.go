package service

import (
	"context"
	"time"

	"github.com/spec-kit/lead-portal/internal/repository"
)

// VisitService exposes the site visit counter.
type VisitService struct {
	visits repository.VisitRepository
}

// NewVisitService constructs the service.
func NewVisitService(visits repository.VisitRepository) *VisitService {
	return &VisitService{visits: visits}
}

// RecordVisit increments the total and per-day counters.
func (s *VisitService) RecordVisit(ctx context.Context) (total, today int64, err error) {
	return s.visits.Increment(ctx, time.Now())
}

// Counts reads the counters without incrementing.
func (s *VisitService) Counts(ctx context.Context) (total, today int64, err error) {
	return s.visits.Counts(ctx, time.Now())
}

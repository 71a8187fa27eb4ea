package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-portal/internal/service"
)

// StartVisitRollupWorker periodically logs the visit counters so operators can
// watch traffic without querying Redis directly. The goroutine exits when ctx
// is cancelled.
func StartVisitRollupWorker(ctx context.Context, logger *zap.Logger, visits *service.VisitService, interval time.Duration) {
	if visits == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				total, today, err := visits.Counts(ctx)
				if err != nil {
					logger.Warn("visit counter read failed", zap.Error(err))
					continue
				}
				logger.Info("visit counters", zap.Int64("total", total), zap.Int64("today", today))
			}
		}
	}()
}

package jobs

import (
	"context"
	"time"

	"estate-hub.backend/pkg/logger"
	"go.uber.org/zap"
)

// Sweeper expires overdue pending offers. Satisfied by OfferUsecase.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time, batchSize int) (int, error)
}

// OfferExpiryJob runs the expiry sweep on an interval. Every expiry is a
// conditional update, so it is safe to run this job from multiple instances.
type OfferExpiryJob struct {
	sweeper   Sweeper
	interval  time.Duration
	batchSize int
	stop      chan struct{}
}

func NewOfferExpiryJob(sweeper Sweeper, interval time.Duration, batchSize int) *OfferExpiryJob {
	return &OfferExpiryJob{
		sweeper:   sweeper,
		interval:  interval,
		batchSize: batchSize,
		stop:      make(chan struct{}),
	}
}

func (j *OfferExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting offer expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "offer expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "offer expiry job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *OfferExpiryJob) Stop() {
	close(j.stop)
}

func (j *OfferExpiryJob) runOnce(ctx context.Context) {
	count, err := j.sweeper.SweepExpired(ctx, time.Now(), j.batchSize)
	if err != nil {
		logger.Error(ctx, "offer expiry sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Info(ctx, "expired offers", zap.Int("count", count))
	}
}

package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
)

// ExpirySweeper runs the expired-request sweep on a fixed cadence. The sweep
// itself is idempotent, so overlapping runs (ticker plus an admin-triggered
// sweep) cannot double-expire a request.
type ExpirySweeper struct {
	requests RequestServiceInterface
	interval time.Duration
}

// NewExpirySweeper creates a sweeper with the given interval
func NewExpirySweeper(requests RequestServiceInterface, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{requests: requests, interval: interval}
}

// Run sweeps once immediately and then on every tick until the context is
// cancelled. Intended to be started as a goroutine from main.
func (s *ExpirySweeper) Run(ctx context.Context) {
	logger.Info("Expiry sweeper started", zap.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	count, err := s.requests.SweepExpired(ctx)
	if err != nil {
		logger.LogError(err, "Expiry sweep failed")
		return
	}
	if count > 0 {
		logger.Info("Expiry sweep completed", zap.Int("expired", count))
	}
}

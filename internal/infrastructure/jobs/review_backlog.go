package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"kyc-bot.backend/internal/domain/entities"
	"kyc-bot.backend/internal/metrics"
	"kyc-bot.backend/pkg/logger"
)

const defaultBacklogInterval = time.Minute

// SessionCounter reports how many sessions sit in each workflow state
type SessionCounter interface {
	CountByState() map[entities.WorkflowState]int
}

// ReviewBacklogJob periodically publishes session gauges and the review backlog
type ReviewBacklogJob struct {
	sessions SessionCounter
	metrics  *metrics.Metrics
	interval time.Duration
	stop     chan struct{}
}

func NewReviewBacklogJob(sessions SessionCounter, m *metrics.Metrics, interval time.Duration) *ReviewBacklogJob {
	if interval <= 0 {
		interval = defaultBacklogInterval
	}
	return &ReviewBacklogJob{
		sessions: sessions,
		metrics:  m,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *ReviewBacklogJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting review backlog job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Review backlog job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Review backlog job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *ReviewBacklogJob) Stop() {
	close(j.stop)
}

// refresh returns the number of submissions awaiting a decision.
func (j *ReviewBacklogJob) refresh(ctx context.Context) int {
	counts := j.sessions.CountByState()
	for state, n := range counts {
		j.metrics.SetSessions(state.Label(), n)
	}

	waiting := counts[entities.StateWaiting]
	if waiting > 0 {
		logger.Info(ctx, "Submissions waiting for review", zap.Int("waiting", waiting))
	}
	return waiting
}

package di

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionPurger deletes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// NewPurgeJob returns a cron job that purges expired sessions within timeout.
func NewPurgeJob(p SessionPurger, timeout time.Duration, log *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, err := p.PurgeExpiredSessions(ctx)
		if err != nil {
			log.Error("session purge failed", zap.Error(err))
			return
		}
		log.Info("session purge finished", zap.Int64("removed", n))
	}
}

// NewScheduler registers the purge job on spec. The caller starts and stops it.
func NewScheduler(spec string, purge func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, purge); err != nil {
		return nil, err
	}
	return c, nil
}

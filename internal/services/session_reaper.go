package services

import (
	"context"
	"time"

	"foodshare/internal/utils"

	"github.com/robfig/cron/v3"
)

// SessionReaper periodically deletes expired sessions
type SessionReaper struct {
	sessions SessionRepositoryInterface
	cron     *cron.Cron
	schedule string
	now      func() time.Time
	logger   utils.Logger
}

// NewSessionReaper creates a reaper running on a cron schedule such as "@every 1h"
func NewSessionReaper(sessions SessionRepositoryInterface, schedule string) *SessionReaper {
	if schedule == "" {
		schedule = "@every 1h"
	}
	return &SessionReaper{
		sessions: sessions,
		cron:     cron.New(),
		schedule: schedule,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   utils.GetLogger(),
	}
}

// Start registers the job and starts the scheduler
func (r *SessionReaper) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, func() { _, _ = r.RunOnce(context.Background()) }); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("session reaper started", "schedule", r.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job
func (r *SessionReaper) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce deletes every session expired at this moment
func (r *SessionReaper) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := r.sessions.DeleteExpired(ctx, r.now())
	if err != nil {
		r.logger.Error("reap expired sessions failed", "error", err.Error())
		return 0, err
	}
	if n > 0 {
		r.logger.Info("expired sessions removed", "count", n)
	}
	return n, nil
}

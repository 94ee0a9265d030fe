// Package sweep re-runs the overdue-task sweep on a schedule so a
// long-running process reclassifies past-due tasks when the day rolls
// over, not just at startup.
package sweep

import (
	"github.com/robfig/cron/v3"

	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/internal/store"
)

// Job runs the overdue sweep just after local midnight
type Job struct {
	cron *cron.Cron
}

// Start schedules the midnight sweep and returns the running job
func Start(st *store.Store) (*Job, error) {
	c := cron.New()
	_, err := c.AddFunc("1 0 * * *", func() {
		if n := st.SweepOverdue(); n > 0 {
			logger.Info("Midnight sweep reclassified overdue tasks", logger.F("count", n))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return &Job{cron: c}, nil
}

// Stop cancels the scheduled sweep
func (j *Job) Stop() {
	j.cron.Stop()
}

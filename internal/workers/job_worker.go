package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/services"
)

// JobWorker hides job listings whose application deadline has passed.
type JobWorker struct {
	db       *gorm.DB
	jobs     services.JobService
	interval time.Duration
}

func NewJobWorker(db *gorm.DB, jobs services.JobService, interval time.Duration) *JobWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JobWorker{db: db, jobs: jobs, interval: interval}
}

func (w *JobWorker) Start(ctx context.Context) {
	go w.closeExpiredListings(ctx)
}

func (w *JobWorker) closeExpiredListings(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(time.Now())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Job worker stopped")
			return
		case now := <-ticker.C:
			w.RunOnce(now)
		}
	}
}

func (w *JobWorker) RunOnce(now time.Time) int64 {
	n, err := w.jobs.DeactivateExpired(w.db, now)
	if err != nil {
		logger.WorkerLog("jobs", "deactivate_expired", err)
		return 0
	}
	if n > 0 {
		logger.Info("Deactivated expired job listings", "count", n)
	}
	return n
}

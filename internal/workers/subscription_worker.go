package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/services"
)

// SubscriptionWorker expires ACTIVE subscriptions whose period has ended.
type SubscriptionWorker struct {
	db       *gorm.DB
	subs     services.SubscriptionService
	interval time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, subs services.SubscriptionService, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{db: db, subs: subs, interval: interval}
}

// Start runs one pass immediately, then one per interval until ctx is done.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.checkExpiredSubscriptions(ctx)
}

func (w *SubscriptionWorker) checkExpiredSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(time.Now())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case now := <-ticker.C:
			w.RunOnce(now)
		}
	}
}

// RunOnce expires due subscriptions and reports how many changed.
func (w *SubscriptionWorker) RunOnce(now time.Time) int {
	n, err := w.subs.ExpireDue(w.db, now)
	if err != nil {
		logger.WorkerLog("subscriptions", "expire", err, "expired", n)
		return n
	}
	if n > 0 {
		logger.Info("Marked subscriptions as expired", "count", n)
	}
	return n
}

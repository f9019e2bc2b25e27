package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/services"
)

type fakeSubscriptions struct {
	services.SubscriptionService
	calls atomic.Int32
	err   error
}

func (f *fakeSubscriptions) ExpireDue(_ *gorm.DB, _ time.Time) (int, error) {
	f.calls.Add(1)
	return 2, f.err
}

type fakeJobs struct {
	services.JobService
	calls atomic.Int32
}

func (f *fakeJobs) DeactivateExpired(_ *gorm.DB, _ time.Time) (int64, error) {
	f.calls.Add(1)
	return 3, nil
}

func TestSubscriptionWorker_RunOnce(t *testing.T) {
	subs := &fakeSubscriptions{}
	w := NewSubscriptionWorker(nil, subs, 0)
	assert.Equal(t, time.Hour, w.interval)
	assert.Equal(t, 2, w.RunOnce(time.Now()))

	subs.err = errors.New("db down")
	assert.Equal(t, 2, w.RunOnce(time.Now()))
	assert.Equal(t, int32(2), subs.calls.Load())
}

func TestWorkers_TickUntilCancelled(t *testing.T) {
	subs := &fakeSubscriptions{}
	jobs := &fakeJobs{}
	logger.Init("test")
	ctx, cancel := context.WithCancel(context.Background())

	NewSubscriptionWorker(nil, subs, 10*time.Millisecond).Start(ctx)
	NewJobWorker(nil, jobs, 10*time.Millisecond).Start(ctx)

	assert.Eventually(t, func() bool {
		return subs.calls.Load() >= 3 && jobs.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	settled := jobs.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, jobs.calls.Load(), "no ticks after cancellation")
}

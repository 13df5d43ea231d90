package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/internal/service"

	"github.com/stretchr/testify/assert"
)

type countingReminderService struct {
	scans int64
	err   error
}

func (c *countingReminderService) CheckUpcomingAppointments(ctx context.Context) (*service.ScanResult, error) {
	atomic.AddInt64(&c.scans, 1)
	if c.err != nil {
		return nil, c.err
	}
	return &service.ScanResult{Success: true, Message: "Sent 0 appointment reminders"}, nil
}

func (c *countingReminderService) count() int64 {
	return atomic.LoadInt64(&c.scans)
}

func TestReminderWorkerScansImmediately(t *testing.T) {
	svc := &countingReminderService{}
	w := NewReminderWorker(svc, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// The first scan happens at start, long before the first tick.
	assert.Eventually(t, func() bool { return svc.count() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, int64(1), svc.count())
}

func TestReminderWorkerTicks(t *testing.T) {
	svc := &countingReminderService{}
	w := NewReminderWorker(svc, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	assert.Eventually(t, func() bool { return svc.count() >= 3 }, time.Second, 10*time.Millisecond)
}

func TestReminderWorkerStopsOnCancel(t *testing.T) {
	svc := &countingReminderService{}
	w := NewReminderWorker(svc, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return svc.count() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	after := svc.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.count())
}

func TestReminderWorkerSurvivesScanErrors(t *testing.T) {
	svc := &countingReminderService{err: entity.ErrScanInFlight}
	w := NewReminderWorker(svc, 15*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// A rejected or failed scan must not kill the loop.
	assert.Eventually(t, func() bool { return svc.count() >= 2 }, time.Second, 5*time.Millisecond)
}

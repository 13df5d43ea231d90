package worker

import (
	"context"
	"errors"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/internal/service"

	"github.com/sirupsen/logrus"
)

type ReminderWorker struct {
	reminderService service.ReminderService
	interval        time.Duration
}

func NewReminderWorker(reminderService service.ReminderService, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		reminderService: reminderService,
		interval:        interval,
	}
}

// Start blocks until ctx is cancelled. A scan runs immediately on start, then
// on every tick.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Infof("Appointment reminder worker started, interval %s", w.interval)

	w.runScan(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Appointment reminder worker stopped")
			return
		case <-ticker.C:
			w.runScan(ctx)
		}
	}
}

func (w *ReminderWorker) runScan(ctx context.Context) {
	result, err := w.reminderService.CheckUpcomingAppointments(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrScanInFlight) {
			// An admin trigger or another instance beat us to it.
			logrus.Info("Skipping reminder scan: another scan is in flight")
			return
		}
		logrus.Errorf("Reminder scan failed: %v", err)
		return
	}

	logrus.Infof("Reminder scan completed: %s", result.Message)
}

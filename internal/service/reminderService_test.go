package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReminderService(repo *fakeAppointmentRepo, store *fakeNotificationRepo, lock ScanLocker, now time.Time) *reminderService {
	return &reminderService{
		appointmentRepo: repo,
		notifications:   NewNotificationService(store, nil),
		lock:            lock,
		now:             func() time.Time { return now },
	}
}

func upcomingRow(id, userID int64, doctorName string, slotDate time.Time, startTime string) *entity.UpcomingAppointment {
	return &entity.UpcomingAppointment{
		AppointmentID: id,
		PatientUserID: userID,
		PatientName:   "Test Patient",
		PatientEmail:  "patient@example.com",
		DoctorName:    doctorName,
		SlotDate:      slotDate,
		StartTime:     startTime,
	}
}

func TestReminderScanWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	repo := newFakeAppointmentRepo()
	svc := newTestReminderService(repo, newFakeNotificationRepo(), nil, now)

	_, err := svc.CheckUpcomingAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now, repo.lastFrom)
	wantTo := time.Date(2025, 3, 11, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	assert.Equal(t, wantTo, repo.lastTo)
}

func TestReminderScanCreatesNotification(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	repo := newFakeAppointmentRepo()
	repo.addUpcoming(upcomingRow(42, 7, "House", tomorrow, "10:00"), entity.AppointmentStatusScheduled)

	store := newFakeNotificationRepo()
	result, err := newTestReminderService(repo, store, nil, now).CheckUpcomingAppointments(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Count)

	notifications := store.ofUser(7)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, entity.NotificationTypeReminder, n.Type)
	assert.Equal(t, "Appointment Reminder", n.Title)
	assert.Equal(t, "You have an appointment with Dr. House tomorrow (Tuesday, 11 March 2025) at 10:00", n.Body)
	assert.False(t, n.IsRead)
	assert.Equal(t, int64(42), n.Data["appointmentId"])
	assert.Equal(t, "10:00", n.Data["time"])
}

func TestReminderScanFiltersAppointments(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	nextWeek := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    entity.AppointmentStatus
		slotDate  time.Time
		wantCount int
	}{
		{
			name:      "scheduled tomorrow is reminded",
			status:    entity.AppointmentStatusScheduled,
			slotDate:  tomorrow,
			wantCount: 1,
		},
		{
			name:      "cancelled appointment is skipped",
			status:    entity.AppointmentStatusCancelled,
			slotDate:  tomorrow,
			wantCount: 0,
		},
		{
			name:      "completed appointment is skipped",
			status:    entity.AppointmentStatusCompleted,
			slotDate:  tomorrow,
			wantCount: 0,
		},
		{
			name:      "slot outside the window is skipped",
			status:    entity.AppointmentStatusScheduled,
			slotDate:  nextWeek,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAppointmentRepo()
			repo.addUpcoming(upcomingRow(1, 7, "House", tt.slotDate, "10:00"), tt.status)

			store := newFakeNotificationRepo()
			result, err := newTestReminderService(repo, store, nil, now).CheckUpcomingAppointments(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantCount, result.Count)
			assert.Len(t, store.ofUser(7), tt.wantCount)
		})
	}
}

// Two back-to-back scans remind the same appointment twice. There is no dedup
// key on notifications; this pins the known gap so a fix shows up as a
// deliberate change.
func TestReminderScanDuplicatesAcrossRuns(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	repo := newFakeAppointmentRepo()
	repo.addUpcoming(upcomingRow(1, 7, "House", tomorrow, "10:00"), entity.AppointmentStatusScheduled)

	store := newFakeNotificationRepo()
	svc := newTestReminderService(repo, store, &fakeLocker{}, now)

	for i := 0; i < 2; i++ {
		result, err := svc.CheckUpcomingAppointments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.Count)
	}

	assert.Len(t, store.ofUser(7), 2)
}

func TestReminderScanSingleFlight(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	lock := &fakeLocker{held: true}
	svc := newTestReminderService(newFakeAppointmentRepo(), newFakeNotificationRepo(), lock, now)

	result, err := svc.CheckUpcomingAppointments(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, entity.ErrScanInFlight)
	assert.Zero(t, lock.releases)
}

func TestReminderScanReleasesLock(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	lock := &fakeLocker{}
	svc := newTestReminderService(newFakeAppointmentRepo(), newFakeNotificationRepo(), lock, now)

	_, err := svc.CheckUpcomingAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, lock.acquires)
	assert.Equal(t, 1, lock.releases)
	assert.False(t, lock.held)
}

func TestReminderScanContinuesAfterRowFailure(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	repo := newFakeAppointmentRepo()
	repo.addUpcoming(upcomingRow(1, 7, "House", tomorrow, "10:00"), entity.AppointmentStatusScheduled)
	repo.addUpcoming(upcomingRow(2, 8, "Wilson", tomorrow, "11:00"), entity.AppointmentStatusScheduled)

	store := newFakeNotificationRepo()
	store.createErrFor[7] = errors.New("insert failed")

	result, err := newTestReminderService(repo, store, nil, now).CheckUpcomingAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, store.ofUser(7))
	assert.Len(t, store.ofUser(8), 1)
}

func TestReminderScanQueryFailure(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	lock := &fakeLocker{}

	repo := newFakeAppointmentRepo()
	repo.upcomingErr = errors.New("connection refused")

	result, err := newTestReminderService(repo, newFakeNotificationRepo(), lock, now).CheckUpcomingAppointments(context.Background())
	assert.Nil(t, result)
	require.Error(t, err)

	// The lock must not stay held after an aborted cycle.
	assert.Equal(t, 1, lock.releases)
}

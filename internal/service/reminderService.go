package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/pkg/email"

	"github.com/sirupsen/logrus"
)

const reminderDateLayout = "Monday, 2 January 2006"

type ScanResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type reminderService struct {
	appointmentRepo repository.AppointmentRepository
	notifications   NotificationService
	lock            ScanLocker
	mailer          *email.Sender

	// now is swapped out in tests to pin the scan window.
	now func() time.Time
}

func NewReminderService(
	appointmentRepo repository.AppointmentRepository,
	notifications NotificationService,
	lock ScanLocker,
	mailer *email.Sender,
) ReminderService {
	return &reminderService{
		appointmentRepo: appointmentRepo,
		notifications:   notifications,
		lock:            lock,
		mailer:          mailer,
		now:             time.Now,
	}
}

// scanWindow spans from the current instant through the end of tomorrow, so
// one scan covers both today's remaining appointments and all of tomorrow's.
func (s *reminderService) scanWindow() (time.Time, time.Time) {
	now := s.now()
	tomorrow := now.AddDate(0, 0, 1)
	end := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, int(999*time.Millisecond), tomorrow.Location())
	return now, end
}

func (s *reminderService) CheckUpcomingAppointments(ctx context.Context) (*ScanResult, error) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire scan lock: %w", err)
		}
		if !ok {
			return nil, entity.ErrScanInFlight
		}
		defer func() {
			if err := s.lock.Release(ctx); err != nil {
				logrus.Errorf("Failed to release scan lock: %v", err)
			}
		}()
	}

	from, to := s.scanWindow()
	logrus.Infof("Reminder scan started: window %s .. %s", from.Format(time.RFC3339), to.Format(time.RFC3339))

	upcoming, err := s.appointmentRepo.GetUpcoming(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming appointments: %w", err)
	}

	sent := 0
	for _, appointment := range upcoming {
		if err := s.remind(ctx, appointment); err != nil {
			// One bad row must not stop the rest of the scan.
			logrus.Errorf("Failed to send reminder for appointment %d: %v", appointment.AppointmentID, err)
			continue
		}
		sent++
	}

	logrus.Infof("Reminder scan finished: %d of %d reminders sent", sent, len(upcoming))
	return &ScanResult{
		Success: true,
		Count:   sent,
		Message: fmt.Sprintf("Sent %d appointment reminders", sent),
	}, nil
}

func (s *reminderService) remind(ctx context.Context, appointment *entity.UpcomingAppointment) error {
	date := appointment.SlotDate.Format(reminderDateLayout)

	notification := &entity.Notification{
		UserID: appointment.PatientUserID,
		Type:   entity.NotificationTypeReminder,
		Title:  "Appointment Reminder",
		Body:   fmt.Sprintf("You have an appointment with Dr. %s tomorrow (%s) at %s", appointment.DoctorName, date, appointment.StartTime),
		Data: map[string]interface{}{
			"appointmentId": appointment.AppointmentID,
			"type":          "appointment_reminder",
			"doctorName":    appointment.DoctorName,
			"date":          date,
			"time":          appointment.StartTime,
		},
	}
	if err := s.notifications.Notify(ctx, notification); err != nil {
		return err
	}

	if s.mailer != nil && appointment.PatientEmail != "" {
		details := email.AppointmentDetails{
			DoctorName: appointment.DoctorName,
			Date:       date,
			Time:       appointment.StartTime,
		}
		if err := s.mailer.SendAppointmentReminder(appointment.PatientEmail, details); err != nil {
			// The in-app notification already landed; mail is best effort.
			logrus.Errorf("Failed to send reminder mail for appointment %d: %v", appointment.AppointmentID, err)
		}
	}

	return nil
}

package service

import (
	"context"
	"fmt"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/pkg/email"

	"github.com/sirupsen/logrus"
)

type BookAppointmentRequest struct {
	PatientID int64  `json:"patientId" binding:"required"`
	DoctorID  int64  `json:"doctorId" binding:"required"`
	SlotID    int64  `json:"slotId" binding:"required"`
	Symptoms  string `json:"symptoms"`
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.SlotRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	notifications   NotificationService
	mailer          *email.Sender
}

func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	mailer *email.Sender,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		notifications:   notifications,
		mailer:          mailer,
	}
}

func (s *appointmentService) Book(ctx context.Context, req *BookAppointmentRequest) (*entity.Appointment, error) {
	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if !slot.IsAvailable {
		return nil, entity.ErrSlotUnavailable
	}
	if slot.DoctorID != req.DoctorID {
		return nil, fmt.Errorf("%w: slot belongs to another doctor", entity.ErrInvalidInput)
	}

	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		SlotID:    req.SlotID,
		Symptoms:  req.Symptoms,
	}
	// The repository consumes the slot inside the same transaction; a race on
	// the availability check above surfaces here as ErrSlotUnavailable.
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	logrus.Infof("Appointment booked: id=%d patient=%d doctor=%d slot=%d",
		appointment.ID, appointment.PatientID, appointment.DoctorID, appointment.SlotID)

	s.sendBookingConfirmation(ctx, appointment, patient, doctor, slot)

	return appointment, nil
}

// sendBookingConfirmation writes the in-app notification and sends the
// confirmation mail. Failures are logged, never surfaced to the booking call.
func (s *appointmentService) sendBookingConfirmation(ctx context.Context, appointment *entity.Appointment, patient *entity.Patient, doctor *entity.Doctor, slot *entity.Slot) {
	date := slot.Date.Format("Monday, 2 January 2006")

	notification := &entity.Notification{
		UserID: patient.UserID,
		Type:   entity.NotificationTypeAppointment,
		Title:  "Appointment Booked",
		Body:   fmt.Sprintf("Your appointment with Dr. %s on %s at %s is confirmed", doctor.Name, date, slot.StartTime),
		Data: map[string]interface{}{
			"appointmentId": appointment.ID,
			"type":          "appointment_booked",
			"doctorName":    doctor.Name,
			"date":          date,
			"time":          slot.StartTime,
		},
	}
	if err := s.notifications.Notify(ctx, notification); err != nil {
		logrus.Errorf("Failed to write booking notification for appointment %d: %v", appointment.ID, err)
	}

	if s.mailer == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, patient.UserID)
	if err != nil {
		logrus.Errorf("Failed to look up patient user %d for confirmation mail: %v", patient.UserID, err)
		return
	}
	details := email.AppointmentDetails{
		DoctorName: doctor.Name,
		Date:       date,
		Time:       slot.StartTime,
		Symptoms:   appointment.Symptoms,
	}
	if err := s.mailer.SendAppointmentConfirmation(user.Email, details); err != nil {
		logrus.Errorf("Failed to send confirmation mail for appointment %d: %v", appointment.ID, err)
	}
}

func (s *appointmentService) GetByPatient(ctx context.Context, patientID int64) ([]*entity.AppointmentDetails, error) {
	return s.appointmentRepo.GetByPatient(ctx, patientID)
}

func (s *appointmentService) GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.AppointmentDetails, error) {
	return s.appointmentRepo.GetByDoctor(ctx, doctorID)
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) (*entity.Appointment, error) {
	switch status {
	case entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled:
	default:
		return nil, entity.ErrInvalidStatus
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == entity.AppointmentStatusCompleted {
		return nil, entity.ErrAppointmentCompleted
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	// A cancelled appointment gives its slot back.
	if status == entity.AppointmentStatusCancelled {
		if err := s.slotRepo.SetAvailability(ctx, appointment.SlotID, true); err != nil {
			logrus.Errorf("Failed to release slot %d for cancelled appointment %d: %v", appointment.SlotID, id, err)
		}
	}

	appointment.Status = status
	return appointment, nil
}

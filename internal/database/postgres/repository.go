package repository

import (
	"context"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id int64) (*entity.Patient, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Patient, error)
	GetAll(ctx context.Context) ([]*entity.Patient, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	GetByID(ctx context.Context, id int64) (*entity.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Doctor, error)
	GetAll(ctx context.Context) ([]*entity.Doctor, error)
}

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	GetByID(ctx context.Context, id int64) (*entity.Slot, error)
	GetAvailable(ctx context.Context) ([]*entity.Slot, error)
	GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.Slot, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id int64) (*entity.Appointment, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.AppointmentDetails, error)
	GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.AppointmentDetails, error)
	UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error

	// GetUpcoming returns SCHEDULED appointments whose slot date lies in
	// [from, to], joined with patient, user, doctor and slot. The reminder
	// scan is its only caller.
	GetUpcoming(ctx context.Context, from, to time.Time) ([]*entity.UpcomingAppointment, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	GetByID(ctx context.Context, id int64) (*entity.Prescription, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.Prescription, error)
}

type LabRequestRepository interface {
	Create(ctx context.Context, request *entity.LabRequest) error
	GetByID(ctx context.Context, id int64) (*entity.LabRequest, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.LabRequest, error)
	UpdateStatus(ctx context.Context, id int64, status entity.LabRequestStatus) error
}

type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id int64) (*entity.Bill, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.Bill, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BillStatus) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error)
	CountUnreadByUser(ctx context.Context, userID int64) (int64, error)

	// MarkRead and Delete are scoped by owner: a missing row and a row owned
	// by someone else are both entity.ErrNotificationNotFound.
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error

	GetStats(ctx context.Context) (*entity.NotificationStats, error)
}

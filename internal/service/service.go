package service

import (
	"context"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Verify(ctx context.Context, tokenString string) (*entity.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error

	// Admin operations
	GetAllUsers(ctx context.Context) ([]*entity.UserAccount, error)
	DeleteUser(ctx context.Context, id int64) error
	ToggleUserStatus(ctx context.Context, id int64) (*entity.User, error)
}

type ProfileService interface {
	GetPatients(ctx context.Context) ([]*entity.Patient, error)
	GetPatientByUserID(ctx context.Context, userID int64) (*entity.Patient, error)
	GetDoctors(ctx context.Context) ([]*entity.Doctor, error)
	GetDoctorByUserID(ctx context.Context, userID int64) (*entity.Doctor, error)
}

type SlotService interface {
	CreateSlot(ctx context.Context, req *CreateSlotRequest) (*entity.Slot, error)
	GetAvailableSlots(ctx context.Context) ([]*entity.Slot, error)
	GetDoctorSlots(ctx context.Context, doctorID int64) ([]*entity.Slot, error)
	DeleteSlot(ctx context.Context, id int64) error
}

type AppointmentService interface {
	Book(ctx context.Context, req *BookAppointmentRequest) (*entity.Appointment, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.AppointmentDetails, error)
	GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.AppointmentDetails, error)

	// UpdateStatus enforces the transitions: COMPLETED is terminal, moving to
	// CANCELLED frees the slot.
	UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) (*entity.Appointment, error)
}

type PrescriptionService interface {
	Create(ctx context.Context, req *CreatePrescriptionRequest) (*entity.Prescription, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.Prescription, error)
}

type LabRequestService interface {
	Create(ctx context.Context, req *CreateLabRequestRequest) (*entity.LabRequest, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.LabRequest, error)
	UpdateStatus(ctx context.Context, id int64, status entity.LabRequestStatus) (*entity.LabRequest, error)
}

type BillService interface {
	Create(ctx context.Context, req *CreateBillRequest) (*entity.Bill, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*entity.Bill, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BillStatus) (*entity.Bill, error)
}

type NotificationService interface {
	List(ctx context.Context, userID int64) (*NotificationList, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	Stats(ctx context.Context) (*entity.NotificationStats, error)

	// Notify is the store writer used by other services and the reminder
	// scan: a plain insert, isRead false, no dedup.
	Notify(ctx context.Context, notification *entity.Notification) error
}

type ReminderService interface {
	// CheckUpcomingAppointments runs one reminder scan over the window
	// [now, tomorrow 23:59:59.999]. Returns entity.ErrScanInFlight when
	// another scan holds the lock.
	CheckUpcomingAppointments(ctx context.Context) (*ScanResult, error)
}

// ScanLocker is the single-flight guard around a reminder scan.
type ScanLocker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// UnreadCache caches per-user unread counters; implementations may miss at
// any time and the service falls back to the repository count.
type UnreadCache interface {
	GetUnread(ctx context.Context, userID int64) (int64, bool)
	SetUnread(ctx context.Context, userID, count int64) error
	Invalidate(ctx context.Context, userID int64) error
}

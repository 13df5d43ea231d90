package entity

import "errors"

var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is deactivated")
	ErrWrongPassword     = errors.New("incorrect password")

	// Profile errors
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")

	// Slot errors
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrSlotBooked      = errors.New("slot has a booking and cannot be deleted")

	// Appointment errors
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCompleted = errors.New("completed appointment cannot be modified")
	ErrInvalidStatus        = errors.New("invalid status value")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
	ErrScanInFlight         = errors.New("reminder scan already in progress")

	// Billing / lab / prescription errors
	ErrBillNotFound         = errors.New("bill not found")
	ErrLabRequestNotFound   = errors.New("lab request not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden operation")
)

package entity

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

type Appointment struct {
	ID        int64             `json:"id" db:"id"`
	PatientID int64             `json:"patientId" db:"patient_id"`
	DoctorID  int64             `json:"doctorId" db:"doctor_id"`
	SlotID    int64             `json:"slotId" db:"slot_id"`
	Symptoms  string            `json:"symptoms" db:"symptoms"`
	Status    AppointmentStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// AppointmentDetails is an appointment joined with its patient, doctor and slot,
// the shape the reminder scan and the dashboards read.
type AppointmentDetails struct {
	Appointment
	Patient *Patient `json:"patient,omitempty"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Slot    *Slot    `json:"slot,omitempty"`
}

// UpcomingAppointment is one row of the reminder-scan query: a SCHEDULED
// appointment whose slot date falls inside the lookahead window.
type UpcomingAppointment struct {
	AppointmentID int64
	PatientUserID int64
	PatientName   string
	PatientEmail  string
	DoctorName    string
	SlotDate      time.Time
	StartTime     string
}

package entity

import "time"

type Medication struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
	Duration  string `json:"duration"`
}

type Prescription struct {
	ID            int64        `json:"id" db:"id"`
	PatientID     int64        `json:"patientId" db:"patient_id"`
	DoctorID      int64        `json:"doctorId" db:"doctor_id"`
	AppointmentID int64        `json:"appointmentId,omitempty" db:"appointment_id"`
	Medications   []Medication `json:"medications" db:"medications"`
	Instructions  string       `json:"instructions" db:"instructions"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
}

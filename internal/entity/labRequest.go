package entity

import "time"

type LabRequestStatus string

const (
	LabRequestStatusPending   LabRequestStatus = "PENDING"
	LabRequestStatusCompleted LabRequestStatus = "COMPLETED"
)

type LabRequest struct {
	ID        int64            `json:"id" db:"id"`
	PatientID int64            `json:"patientId" db:"patient_id"`
	DoctorID  int64            `json:"doctorId" db:"doctor_id"`
	Tests     []string         `json:"tests" db:"tests"`
	Status    LabRequestStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}

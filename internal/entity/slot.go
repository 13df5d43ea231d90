package entity

import "time"

type Slot struct {
	ID          int64     `json:"id" db:"id"`
	DoctorID    int64     `json:"doctorId" db:"doctor_id"`
	Date        DateOnly  `json:"date" db:"date"`
	StartTime   string    `json:"startTime" db:"start_time"`
	EndTime     string    `json:"endTime" db:"end_time"`
	IsAvailable bool      `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

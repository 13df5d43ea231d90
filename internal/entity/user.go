package entity

import "time"

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Patient struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"userId" db:"user_id"`
	Name             string    `json:"name" db:"name"`
	Phone            string    `json:"phone" db:"phone"`
	DateOfBirth      time.Time `json:"dateOfBirth" db:"date_of_birth"`
	EmergencyContact string    `json:"emergencyContact" db:"emergency_contact"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

type Doctor struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"userId" db:"user_id"`
	Name            string    `json:"name" db:"name"`
	Specialization  string    `json:"specialization" db:"specialization"`
	Qualification   string    `json:"qualification" db:"qualification"`
	Experience      int       `json:"experience" db:"experience"`
	ConsultationFee float64   `json:"consultationFee" db:"consultation_fee"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// UserAccount is the admin view of a user joined with its role profile.
type UserAccount struct {
	User
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

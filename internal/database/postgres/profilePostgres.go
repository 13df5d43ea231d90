package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type patientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	query := `
		INSERT INTO patients (user_id, name, phone, date_of_birth, emergency_contact, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		patient.UserID,
		patient.Name,
		patient.Phone,
		patient.DateOfBirth,
		patient.EmergencyContact,
		now,
	).Scan(&patient.ID)

	if err != nil {
		return fmt.Errorf("failed to create patient: %v", err)
	}

	patient.CreatedAt = now
	return nil
}

const patientColumns = `id, user_id, name, phone, date_of_birth, emergency_contact, created_at`

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*entity.Patient, error) {
	return r.getOne(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Patient, error) {
	return r.getOne(ctx, `SELECT `+patientColumns+` FROM patients WHERE user_id = $1`, userID)
}

func (r *patientRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&patient.ID,
		&patient.UserID,
		&patient.Name,
		&patient.Phone,
		&patient.DateOfBirth,
		&patient.EmergencyContact,
		&patient.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %v", err)
	}

	return &patient, nil
}

func (r *patientRepository) GetAll(ctx context.Context) ([]*entity.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get patients: %v", err)
	}
	defer rows.Close()

	var patients []*entity.Patient
	for rows.Next() {
		var patient entity.Patient
		if err := rows.Scan(&patient.ID, &patient.UserID, &patient.Name, &patient.Phone,
			&patient.DateOfBirth, &patient.EmergencyContact, &patient.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %v", err)
		}
		patients = append(patients, &patient)
	}

	return patients, rows.Err()
}

type doctorRepository struct {
	db *sql.DB
}

func NewDoctorRepository(db *sql.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	query := `
		INSERT INTO doctors (user_id, name, specialization, qualification, experience, consultation_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		doctor.UserID,
		doctor.Name,
		doctor.Specialization,
		doctor.Qualification,
		doctor.Experience,
		doctor.ConsultationFee,
		now,
	).Scan(&doctor.ID)

	if err != nil {
		return fmt.Errorf("failed to create doctor: %v", err)
	}

	doctor.CreatedAt = now
	return nil
}

const doctorColumns = `id, user_id, name, specialization, qualification, experience, consultation_fee, created_at`

func (r *doctorRepository) GetByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	return r.getOne(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Doctor, error) {
	return r.getOne(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE user_id = $1`, userID)
}

func (r *doctorRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Qualification,
		&doctor.Experience,
		&doctor.ConsultationFee,
		&doctor.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %v", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) GetAll(ctx context.Context) ([]*entity.Doctor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctors: %v", err)
	}
	defer rows.Close()

	var doctors []*entity.Doctor
	for rows.Next() {
		var doctor entity.Doctor
		if err := rows.Scan(&doctor.ID, &doctor.UserID, &doctor.Name, &doctor.Specialization,
			&doctor.Qualification, &doctor.Experience, &doctor.ConsultationFee, &doctor.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %v", err)
		}
		doctors = append(doctors, &doctor)
	}

	return doctors, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type appointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create books the appointment and consumes its slot in one transaction.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	// Consume the slot; zero rows means it was already taken or never existed.
	result, err := tx.ExecContext(ctx,
		`UPDATE slots SET is_available = FALSE WHERE id = $1 AND is_available = TRUE`,
		appointment.SlotID,
	)
	if err != nil {
		return fmt.Errorf("failed to consume slot: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %v", err)
	}
	if affected == 0 {
		return entity.ErrSlotUnavailable
	}

	query := `
		INSERT INTO appointments (patient_id, doctor_id, slot_id, symptoms, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.SlotID,
		appointment.Symptoms,
		entity.AppointmentStatusScheduled,
		now,
		now,
	).Scan(&appointment.ID)

	if err != nil {
		return fmt.Errorf("failed to create appointment: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	appointment.Status = entity.AppointmentStatusScheduled
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, slot_id, symptoms, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var appointment entity.Appointment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.SlotID,
		&appointment.Symptoms,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %v", err)
	}

	return &appointment, nil
}

const appointmentDetailsQuery = `
	SELECT
		a.id, a.patient_id, a.doctor_id, a.slot_id, a.symptoms, a.status, a.created_at, a.updated_at,
		p.id, p.user_id, p.name, p.phone,
		d.id, d.user_id, d.name, d.specialization, d.consultation_fee,
		s.id, s.doctor_id, s.date, s.start_time, s.end_time, s.is_available
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN slots s ON s.id = a.slot_id
`

func (r *appointmentRepository) GetByPatient(ctx context.Context, patientID int64) ([]*entity.AppointmentDetails, error) {
	return r.listDetails(ctx, appointmentDetailsQuery+` WHERE a.patient_id = $1 ORDER BY s.date, s.start_time`, patientID)
}

func (r *appointmentRepository) GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.AppointmentDetails, error) {
	return r.listDetails(ctx, appointmentDetailsQuery+` WHERE a.doctor_id = $1 ORDER BY s.date, s.start_time`, doctorID)
}

func (r *appointmentRepository) listDetails(ctx context.Context, query string, args ...interface{}) ([]*entity.AppointmentDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments: %v", err)
	}
	defer rows.Close()

	var details []*entity.AppointmentDetails
	for rows.Next() {
		var (
			d       entity.AppointmentDetails
			patient entity.Patient
			doctor  entity.Doctor
			slot    entity.Slot
		)
		err := rows.Scan(
			&d.ID, &d.PatientID, &d.DoctorID, &d.SlotID, &d.Symptoms, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&patient.ID, &patient.UserID, &patient.Name, &patient.Phone,
			&doctor.ID, &doctor.UserID, &doctor.Name, &doctor.Specialization, &doctor.ConsultationFee,
			&slot.ID, &slot.DoctorID, &slot.Date, &slot.StartTime, &slot.EndTime, &slot.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %v", err)
		}
		d.Patient = &patient
		d.Doctor = &doctor
		d.Slot = &slot
		details = append(details, &d)
	}

	return details, rows.Err()
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status entity.AppointmentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %v", err)
	}
	return checkAffected(result, entity.ErrAppointmentNotFound)
}

func (r *appointmentRepository) GetUpcoming(ctx context.Context, from, to time.Time) ([]*entity.UpcomingAppointment, error) {
	query := `
		SELECT a.id, u.id, p.name, u.email, d.name, s.date, s.start_time
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN users u ON u.id = p.user_id
		JOIN doctors d ON d.id = a.doctor_id
		JOIN slots s ON s.id = a.slot_id
		WHERE a.status = 'SCHEDULED' AND s.date >= $1 AND s.date <= $2
		ORDER BY s.date, s.start_time
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming appointments: %v", err)
	}
	defer rows.Close()

	var upcoming []*entity.UpcomingAppointment
	for rows.Next() {
		var u entity.UpcomingAppointment
		if err := rows.Scan(&u.AppointmentID, &u.PatientUserID, &u.PatientName,
			&u.PatientEmail, &u.DoctorName, &u.SlotDate, &u.StartTime); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming appointment: %v", err)
		}
		upcoming = append(upcoming, &u)
	}

	return upcoming, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type prescriptionRepository struct {
	db *sql.DB
}

func NewPrescriptionRepository(db *sql.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	medications, err := json.Marshal(prescription.Medications)
	if err != nil {
		return fmt.Errorf("failed to marshal medications: %v", err)
	}

	query := `
		INSERT INTO prescriptions (patient_id, doctor_id, appointment_id, medications, instructions, created_at)
		VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.AppointmentID,
		medications,
		prescription.Instructions,
		now,
	).Scan(&prescription.ID)

	if err != nil {
		return fmt.Errorf("failed to create prescription: %v", err)
	}

	prescription.CreatedAt = now
	return nil
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id int64) (*entity.Prescription, error) {
	query := `
		SELECT id, patient_id, doctor_id, COALESCE(appointment_id, 0), medications, instructions, created_at
		FROM prescriptions WHERE id = $1
	`

	var (
		p           entity.Prescription
		medications []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.PatientID, &p.DoctorID, &p.AppointmentID, &medications, &p.Instructions, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %v", err)
	}

	if err := json.Unmarshal(medications, &p.Medications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal medications: %v", err)
	}
	return &p, nil
}

func (r *prescriptionRepository) GetByPatient(ctx context.Context, patientID int64) ([]*entity.Prescription, error) {
	query := `
		SELECT id, patient_id, doctor_id, COALESCE(appointment_id, 0), medications, instructions, created_at
		FROM prescriptions WHERE patient_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescriptions: %v", err)
	}
	defer rows.Close()

	var prescriptions []*entity.Prescription
	for rows.Next() {
		var (
			p           entity.Prescription
			medications []byte
		)
		if err := rows.Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.AppointmentID,
			&medications, &p.Instructions, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prescription: %v", err)
		}
		if err := json.Unmarshal(medications, &p.Medications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal medications: %v", err)
		}
		prescriptions = append(prescriptions, &p)
	}

	return prescriptions, rows.Err()
}

type labRequestRepository struct {
	db *sql.DB
}

func NewLabRequestRepository(db *sql.DB) LabRequestRepository {
	return &labRequestRepository{db: db}
}

func (r *labRequestRepository) Create(ctx context.Context, request *entity.LabRequest) error {
	tests, err := json.Marshal(request.Tests)
	if err != nil {
		return fmt.Errorf("failed to marshal tests: %v", err)
	}

	query := `
		INSERT INTO lab_requests (patient_id, doctor_id, tests, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		request.PatientID,
		request.DoctorID,
		tests,
		entity.LabRequestStatusPending,
		now,
	).Scan(&request.ID)

	if err != nil {
		return fmt.Errorf("failed to create lab request: %v", err)
	}

	request.Status = entity.LabRequestStatusPending
	request.CreatedAt = now
	request.UpdatedAt = now
	return nil
}

func (r *labRequestRepository) GetByID(ctx context.Context, id int64) (*entity.LabRequest, error) {
	query := `SELECT id, patient_id, doctor_id, tests, status, created_at, updated_at FROM lab_requests WHERE id = $1`

	var (
		req   entity.LabRequest
		tests []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.PatientID, &req.DoctorID, &tests, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrLabRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab request: %v", err)
	}

	if err := json.Unmarshal(tests, &req.Tests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tests: %v", err)
	}
	return &req, nil
}

func (r *labRequestRepository) GetByPatient(ctx context.Context, patientID int64) ([]*entity.LabRequest, error) {
	query := `SELECT id, patient_id, doctor_id, tests, status, created_at, updated_at FROM lab_requests WHERE patient_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lab requests: %v", err)
	}
	defer rows.Close()

	var requests []*entity.LabRequest
	for rows.Next() {
		var (
			req   entity.LabRequest
			tests []byte
		)
		if err := rows.Scan(&req.ID, &req.PatientID, &req.DoctorID, &tests,
			&req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lab request: %v", err)
		}
		if err := json.Unmarshal(tests, &req.Tests); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tests: %v", err)
		}
		requests = append(requests, &req)
	}

	return requests, rows.Err()
}

func (r *labRequestRepository) UpdateStatus(ctx context.Context, id int64, status entity.LabRequestStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE lab_requests SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab request status: %v", err)
	}
	return checkAffected(result, entity.ErrLabRequestNotFound)
}

type billRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	items, err := json.Marshal(bill.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal bill items: %v", err)
	}

	query := `
		INSERT INTO bills (patient_id, items, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		bill.PatientID,
		items,
		bill.TotalAmount,
		entity.BillStatusPending,
		now,
	).Scan(&bill.ID)

	if err != nil {
		return fmt.Errorf("failed to create bill: %v", err)
	}

	bill.Status = entity.BillStatusPending
	bill.CreatedAt = now
	bill.UpdatedAt = now
	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id int64) (*entity.Bill, error) {
	query := `SELECT id, patient_id, items, total_amount, status, created_at, updated_at FROM bills WHERE id = $1`

	var (
		bill  entity.Bill
		items []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bill.ID, &bill.PatientID, &items, &bill.TotalAmount, &bill.Status, &bill.CreatedAt, &bill.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %v", err)
	}

	if err := json.Unmarshal(items, &bill.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bill items: %v", err)
	}
	return &bill, nil
}

func (r *billRepository) GetByPatient(ctx context.Context, patientID int64) ([]*entity.Bill, error) {
	query := `SELECT id, patient_id, items, total_amount, status, created_at, updated_at FROM bills WHERE patient_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %v", err)
	}
	defer rows.Close()

	var bills []*entity.Bill
	for rows.Next() {
		var (
			bill  entity.Bill
			items []byte
		)
		if err := rows.Scan(&bill.ID, &bill.PatientID, &items, &bill.TotalAmount,
			&bill.Status, &bill.CreatedAt, &bill.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %v", err)
		}
		if err := json.Unmarshal(items, &bill.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bill items: %v", err)
		}
		bills = append(bills, &bill)
	}

	return bills, rows.Err()
}

func (r *billRepository) UpdateStatus(ctx context.Context, id int64, status entity.BillStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bills SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %v", err)
	}
	return checkAffected(result, entity.ErrBillNotFound)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type slotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	query := `
		INSERT INTO slots (doctor_id, date, start_time, end_time, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		slot.DoctorID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		true,
		now,
	).Scan(&slot.ID)

	if err != nil {
		return fmt.Errorf("failed to create slot: %v", err)
	}

	slot.IsAvailable = true
	slot.CreatedAt = now
	return nil
}

const slotColumns = `id, doctor_id, date, start_time, end_time, is_available, created_at`

func (r *slotRepository) GetByID(ctx context.Context, id int64) (*entity.Slot, error) {
	var slot entity.Slot
	err := r.db.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id).Scan(
		&slot.ID,
		&slot.DoctorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&slot.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %v", err)
	}

	return &slot, nil
}

func (r *slotRepository) GetAvailable(ctx context.Context) ([]*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE is_available = TRUE AND date >= CURRENT_DATE ORDER BY date, start_time`
	return r.list(ctx, query)
}

func (r *slotRepository) GetByDoctor(ctx context.Context, doctorID int64) ([]*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE doctor_id = $1 ORDER BY date, start_time`
	return r.list(ctx, query, doctorID)
}

func (r *slotRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Slot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %v", err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		var slot entity.Slot
		if err := rows.Scan(&slot.ID, &slot.DoctorID, &slot.Date, &slot.StartTime,
			&slot.EndTime, &slot.IsAvailable, &slot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %v", err)
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}

func (r *slotRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE slots SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return fmt.Errorf("failed to update slot availability: %v", err)
	}
	return checkAffected(result, entity.ErrSlotNotFound)
}

// Delete removes a slot only while it is still available. A consumed slot is
// referenced by an appointment and stays.
func (r *slotRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE id = $1 AND is_available = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %v", err)
	}
	if affected == 0 {
		// Distinguish a missing slot from a booked one.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return entity.ErrSlotBooked
	}
	return nil
}

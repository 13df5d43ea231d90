package entity

import "time"

type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
	BillStatusOverdue BillStatus = "OVERDUE"
)

type BillItem struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

type Bill struct {
	ID          int64      `json:"id" db:"id"`
	PatientID   int64      `json:"patientId" db:"patient_id"`
	Items       []BillItem `json:"items" db:"items"`
	TotalAmount float64    `json:"totalAmount" db:"total_amount"`
	Status      BillStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

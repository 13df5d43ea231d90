package service

import (
	"context"
	"testing"

	"github.com/abhey8/Hospital-OPD/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlotFixture(t *testing.T) (SlotService, *fakeSlotRepo, int64) {
	t.Helper()

	doctors := newFakeDoctorRepo()
	d := &entity.Doctor{UserID: 99, Name: "House"}
	require.NoError(t, doctors.Create(context.Background(), d))

	slots := newFakeSlotRepo()
	return NewSlotService(slots, doctors), slots, d.ID
}

func TestCreateSlotValidation(t *testing.T) {
	svc, _, doctorID := newSlotFixture(t)

	tests := []struct {
		name    string
		req     *CreateSlotRequest
		wantErr error
	}{
		{
			name:    "unknown doctor",
			req:     &CreateSlotRequest{DoctorID: 404, Date: "2025-04-01", StartTime: "09:00", EndTime: "09:30"},
			wantErr: entity.ErrDoctorNotFound,
		},
		{
			name:    "bad date",
			req:     &CreateSlotRequest{DoctorID: doctorID, Date: "01/04/2025", StartTime: "09:00", EndTime: "09:30"},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "bad start time",
			req:     &CreateSlotRequest{DoctorID: doctorID, Date: "2025-04-01", StartTime: "9am", EndTime: "09:30"},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     &CreateSlotRequest{DoctorID: doctorID, Date: "2025-04-01", StartTime: "10:00", EndTime: "09:30"},
			wantErr: entity.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSlot(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSlot(t *testing.T) {
	svc, _, doctorID := newSlotFixture(t)

	slot, err := svc.CreateSlot(context.Background(), &CreateSlotRequest{
		DoctorID:  doctorID,
		Date:      "2025-04-01",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.NoError(t, err)

	assert.True(t, slot.IsAvailable)
	assert.Equal(t, "2025-04-01", slot.Date.Format("2006-01-02"))
	assert.Equal(t, "09:00", slot.StartTime)
}

func TestDeleteSlotOnlyWhileAvailable(t *testing.T) {
	svc, slots, doctorID := newSlotFixture(t)

	slot, err := svc.CreateSlot(context.Background(), &CreateSlotRequest{
		DoctorID:  doctorID,
		Date:      "2025-04-01",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.NoError(t, err)

	// A booked slot cannot be deleted.
	require.NoError(t, slots.SetAvailability(context.Background(), slot.ID, false))
	assert.ErrorIs(t, svc.DeleteSlot(context.Background(), slot.ID), entity.ErrSlotBooked)

	require.NoError(t, slots.SetAvailability(context.Background(), slot.ID, true))
	require.NoError(t, svc.DeleteSlot(context.Background(), slot.ID))
	assert.ErrorIs(t, svc.DeleteSlot(context.Background(), slot.ID), entity.ErrSlotNotFound)
}

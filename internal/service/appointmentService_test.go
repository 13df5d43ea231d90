package service

import (
	"context"
	"testing"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	svc       AppointmentService
	slots     *fakeSlotRepo
	appts     *fakeAppointmentRepo
	store     *fakeNotificationRepo
	patientID int64
	doctorID  int64
	slotID    int64
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	users := newFakeUserRepo()
	patient := &entity.User{Email: "patient@example.com", Role: entity.RolePatient}
	require.NoError(t, users.Create(context.Background(), patient))

	patients := newFakePatientRepo()
	p := &entity.Patient{UserID: patient.ID, Name: "Test Patient"}
	require.NoError(t, patients.Create(context.Background(), p))

	doctors := newFakeDoctorRepo()
	d := &entity.Doctor{UserID: 99, Name: "House", Specialization: "Diagnostics"}
	require.NoError(t, doctors.Create(context.Background(), d))

	slots := newFakeSlotRepo()
	slot := &entity.Slot{
		DoctorID:    d.ID,
		Date:        entity.NewDateOnly(time.Now().AddDate(0, 0, 1)),
		StartTime:   "10:00",
		EndTime:     "10:30",
		IsAvailable: true,
	}
	require.NoError(t, slots.Create(context.Background(), slot))

	appts := newFakeAppointmentRepo()
	store := newFakeNotificationRepo()
	svc := NewAppointmentService(appts, slots, patients, doctors, users, NewNotificationService(store, nil), nil)

	return &appointmentFixture{
		svc:       svc,
		slots:     slots,
		appts:     appts,
		store:     store,
		patientID: p.ID,
		doctorID:  d.ID,
		slotID:    slot.ID,
	}
}

func TestBookAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Book(context.Background(), &BookAppointmentRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		SlotID:    f.slotID,
		Symptoms:  "headache",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusScheduled, appointment.Status)
	assert.Equal(t, "headache", appointment.Symptoms)

	// The patient gets a booking confirmation in-app.
	notifications := f.store.ofUser(1)
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationTypeAppointment, notifications[0].Type)
	assert.Contains(t, notifications[0].Body, "Dr. House")
}

func TestBookAppointmentUnavailableSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	require.NoError(t, f.slots.SetAvailability(context.Background(), f.slotID, false))

	_, err := f.svc.Book(context.Background(), &BookAppointmentRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		SlotID:    f.slotID,
	})
	assert.ErrorIs(t, err, entity.ErrSlotUnavailable)
	assert.Empty(t, f.store.notifications)
}

func TestBookAppointmentUnknownRefs(t *testing.T) {
	f := newAppointmentFixture(t)

	tests := []struct {
		name    string
		req     *BookAppointmentRequest
		wantErr error
	}{
		{
			name:    "missing patient",
			req:     &BookAppointmentRequest{PatientID: 404, DoctorID: f.doctorID, SlotID: f.slotID},
			wantErr: entity.ErrPatientNotFound,
		},
		{
			name:    "missing doctor",
			req:     &BookAppointmentRequest{PatientID: f.patientID, DoctorID: 404, SlotID: f.slotID},
			wantErr: entity.ErrDoctorNotFound,
		},
		{
			name:    "missing slot",
			req:     &BookAppointmentRequest{PatientID: f.patientID, DoctorID: f.doctorID, SlotID: 404},
			wantErr: entity.ErrSlotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Book(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateStatusCompletedIsTerminal(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Book(context.Background(), &BookAppointmentRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		SlotID:    f.slotID,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), appointment.ID, entity.AppointmentStatusCompleted)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), appointment.ID, entity.AppointmentStatusCancelled)
	assert.ErrorIs(t, err, entity.ErrAppointmentCompleted)
}

func TestUpdateStatusCancelFreesSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Book(context.Background(), &BookAppointmentRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		SlotID:    f.slotID,
	})
	require.NoError(t, err)
	require.NoError(t, f.slots.SetAvailability(context.Background(), f.slotID, false))

	updated, err := f.svc.UpdateStatus(context.Background(), appointment.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, updated.Status)

	slot, err := f.slots.GetByID(context.Background(), f.slotID)
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), 1, entity.AppointmentStatus("RESCHEDULED"))
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)
}

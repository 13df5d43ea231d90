package service

import (
	"context"
	"fmt"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/pkg/email"

	"github.com/sirupsen/logrus"
)

type CreatePrescriptionRequest struct {
	PatientID     int64               `json:"patientId" binding:"required"`
	DoctorID      int64               `json:"doctorId" binding:"required"`
	AppointmentID int64               `json:"appointmentId"`
	Medications   []entity.Medication `json:"medications" binding:"required,min=1,dive"`
	Instructions  string              `json:"instructions"`
}

type CreateLabRequestRequest struct {
	PatientID int64    `json:"patientId" binding:"required"`
	DoctorID  int64    `json:"doctorId" binding:"required"`
	Tests     []string `json:"tests" binding:"required,min=1"`
}

type CreateBillRequest struct {
	PatientID int64             `json:"patientId" binding:"required"`
	Items     []entity.BillItem `json:"items" binding:"required,min=1,dive"`
}

type prescriptionService struct {
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	userRepo         repository.UserRepository
	notifications    NotificationService
	mailer           *email.Sender
}

func NewPrescriptionService(
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	mailer *email.Sender,
) PrescriptionService {
	return &prescriptionService{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		userRepo:         userRepo,
		notifications:    notifications,
		mailer:           mailer,
	}
}

func (s *prescriptionService) Create(ctx context.Context, req *CreatePrescriptionRequest) (*entity.Prescription, error) {
	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		AppointmentID: req.AppointmentID,
		Medications:   req.Medications,
		Instructions:  req.Instructions,
	}
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}

	logrus.Infof("Prescription created: id=%d patient=%d doctor=%d", prescription.ID, prescription.PatientID, prescription.DoctorID)

	notification := &entity.Notification{
		UserID: patient.UserID,
		Type:   entity.NotificationTypePrescription,
		Title:  "Prescription Ready",
		Body:   fmt.Sprintf("Dr. %s has prepared a prescription for you", doctor.Name),
		Data: map[string]interface{}{
			"prescriptionId": prescription.ID,
			"type":           "prescription_ready",
			"doctorName":     doctor.Name,
		},
	}
	if err := s.notifications.Notify(ctx, notification); err != nil {
		logrus.Errorf("Failed to write prescription notification for patient %d: %v", patient.ID, err)
	}

	if s.mailer != nil {
		if user, err := s.userRepo.GetByID(ctx, patient.UserID); err != nil {
			logrus.Errorf("Failed to look up patient user %d for prescription mail: %v", patient.UserID, err)
		} else if err := s.mailer.SendPrescriptionReady(user.Email, doctor.Name, prescription.Medications); err != nil {
			logrus.Errorf("Failed to send prescription mail for patient %d: %v", patient.ID, err)
		}
	}

	return prescription, nil
}

func (s *prescriptionService) GetByPatient(ctx context.Context, patientID int64) ([]*entity.Prescription, error) {
	return s.prescriptionRepo.GetByPatient(ctx, patientID)
}

type labRequestService struct {
	labRequestRepo repository.LabRequestRepository
	patientRepo    repository.PatientRepository
	notifications  NotificationService
}

func NewLabRequestService(
	labRequestRepo repository.LabRequestRepository,
	patientRepo repository.PatientRepository,
	notifications NotificationService,
) LabRequestService {
	return &labRequestService{
		labRequestRepo: labRequestRepo,
		patientRepo:    patientRepo,
		notifications:  notifications,
	}
}

func (s *labRequestService) Create(ctx context.Context, req *CreateLabRequestRequest) (*entity.LabRequest, error) {
	if _, err := s.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}

	request := &entity.LabRequest{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Tests:     req.Tests,
		Status:    entity.LabRequestStatusPending,
	}
	if err := s.labRequestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logrus.Infof("Lab request created: id=%d patient=%d tests=%d", request.ID, request.PatientID, len(request.Tests))
	return request, nil
}

func (s *labRequestService) GetByPatient(ctx context.Context, patientID int64) ([]*entity.LabRequest, error) {
	return s.labRequestRepo.GetByPatient(ctx, patientID)
}

func (s *labRequestService) UpdateStatus(ctx context.Context, id int64, status entity.LabRequestStatus) (*entity.LabRequest, error) {
	switch status {
	case entity.LabRequestStatusPending, entity.LabRequestStatusCompleted:
	default:
		return nil, entity.ErrInvalidStatus
	}

	request, err := s.labRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.labRequestRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	request.Status = status

	// Completed results are worth telling the patient about.
	if status == entity.LabRequestStatusCompleted {
		patient, err := s.patientRepo.GetByID(ctx, request.PatientID)
		if err != nil {
			logrus.Errorf("Failed to look up patient %d for lab result notification: %v", request.PatientID, err)
			return request, nil
		}
		notification := &entity.Notification{
			UserID: patient.UserID,
			Type:   entity.NotificationTypeSystem,
			Title:  "Lab Results Ready",
			Body:   "Your lab test results are ready for review",
			Data: map[string]interface{}{
				"labRequestId": request.ID,
				"type":         "lab_results_ready",
			},
		}
		if err := s.notifications.Notify(ctx, notification); err != nil {
			logrus.Errorf("Failed to write lab result notification for patient %d: %v", patient.ID, err)
		}
	}

	return request, nil
}

type billService struct {
	billRepo    repository.BillRepository
	patientRepo repository.PatientRepository
}

func NewBillService(billRepo repository.BillRepository, patientRepo repository.PatientRepository) BillService {
	return &billService{billRepo: billRepo, patientRepo: patientRepo}
}

func (s *billService) Create(ctx context.Context, req *CreateBillRequest) (*entity.Bill, error) {
	if _, err := s.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}

	var total float64
	for _, item := range req.Items {
		if item.Amount < 0 {
			return nil, fmt.Errorf("%w: negative item amount", entity.ErrInvalidInput)
		}
		total += item.Amount
	}

	bill := &entity.Bill{
		PatientID:   req.PatientID,
		Items:       req.Items,
		TotalAmount: total,
		Status:      entity.BillStatusPending,
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	logrus.Infof("Bill created: id=%d patient=%d total=%.2f", bill.ID, bill.PatientID, bill.TotalAmount)
	return bill, nil
}

func (s *billService) GetByPatient(ctx context.Context, patientID int64) ([]*entity.Bill, error) {
	return s.billRepo.GetByPatient(ctx, patientID)
}

func (s *billService) UpdateStatus(ctx context.Context, id int64, status entity.BillStatus) (*entity.Bill, error) {
	switch status {
	case entity.BillStatusPending, entity.BillStatusPaid, entity.BillStatusOverdue:
	default:
		return nil, entity.ErrInvalidStatus
	}

	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	bill.Status = status
	return bill, nil
}

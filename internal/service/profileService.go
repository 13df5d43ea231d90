package service

import (
	"context"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type profileService struct {
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewProfileService(patientRepo repository.PatientRepository, doctorRepo repository.DoctorRepository) ProfileService {
	return &profileService{patientRepo: patientRepo, doctorRepo: doctorRepo}
}

func (s *profileService) GetPatients(ctx context.Context) ([]*entity.Patient, error) {
	return s.patientRepo.GetAll(ctx)
}

func (s *profileService) GetPatientByUserID(ctx context.Context, userID int64) (*entity.Patient, error) {
	return s.patientRepo.GetByUserID(ctx, userID)
}

func (s *profileService) GetDoctors(ctx context.Context) ([]*entity.Doctor, error) {
	return s.doctorRepo.GetAll(ctx)
}

func (s *profileService) GetDoctorByUserID(ctx context.Context, userID int64) (*entity.Doctor, error) {
	return s.doctorRepo.GetByUserID(ctx, userID)
}

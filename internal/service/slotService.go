package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"
)

type CreateSlotRequest struct {
	DoctorID  int64  `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type slotService struct {
	slotRepo   repository.SlotRepository
	doctorRepo repository.DoctorRepository
}

func NewSlotService(slotRepo repository.SlotRepository, doctorRepo repository.DoctorRepository) SlotService {
	return &slotService{slotRepo: slotRepo, doctorRepo: doctorRepo}
}

func (s *slotService) CreateSlot(ctx context.Context, req *CreateSlotRequest) (*entity.Slot, error) {
	if _, err := s.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", entity.ErrInvalidInput, req.Date)
	}

	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", entity.ErrInvalidInput, req.StartTime)
	}
	if _, err := time.Parse("15:04", req.EndTime); err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", entity.ErrInvalidInput, req.EndTime)
	}
	if req.EndTime <= req.StartTime {
		return nil, fmt.Errorf("%w: end time must be after start time", entity.ErrInvalidInput)
	}

	slot := &entity.Slot{
		DoctorID:    req.DoctorID,
		Date:        entity.NewDateOnly(date),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	return slot, nil
}

func (s *slotService) GetAvailableSlots(ctx context.Context) ([]*entity.Slot, error) {
	return s.slotRepo.GetAvailable(ctx)
}

func (s *slotService) GetDoctorSlots(ctx context.Context, doctorID int64) ([]*entity.Slot, error) {
	return s.slotRepo.GetByDoctor(ctx, doctorID)
}

func (s *slotService) DeleteSlot(ctx context.Context, id int64) error {
	return s.slotRepo.Delete(ctx, id)
}

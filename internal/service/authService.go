package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/pkg/token"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=6"`
	Role        entity.Role `json:"role" binding:"required"`
	Name        string      `json:"name" binding:"required"`
	Phone       string      `json:"phone"`
	DateOfBirth string      `json:"dateOfBirth"`
}

type authService struct {
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	tokens      *token.Manager
}

func NewAuthService(
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	tokens *token.Manager,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		tokens:      tokens,
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*entity.User, string, error) {
	if req.Role != entity.RolePatient && req.Role != entity.RoleDoctor && req.Role != entity.RoleAdmin {
		return nil, "", fmt.Errorf("%w: unknown role %q", entity.ErrInvalidInput, req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Role profile goes in alongside the account.
	switch req.Role {
	case entity.RolePatient:
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
		patient := &entity.Patient{
			UserID:           user.ID,
			Name:             req.Name,
			Phone:            req.Phone,
			DateOfBirth:      dob,
			EmergencyContact: req.Phone,
		}
		if err := s.patientRepo.Create(ctx, patient); err != nil {
			return nil, "", fmt.Errorf("failed to create patient profile: %w", err)
		}
	case entity.RoleDoctor:
		doctor := &entity.Doctor{
			UserID: user.ID,
			Name:   req.Name,
		}
		if err := s.doctorRepo.Create(ctx, doctor); err != nil {
			return nil, "", fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}

	tokenString, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	logrus.Infof("User registered: id=%d role=%s", user.ID, user.Role)
	return user, tokenString, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", entity.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", entity.ErrWrongPassword
	}

	tokenString, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, tokenString, nil
}

func (s *authService) Verify(ctx context.Context, tokenString string) (*entity.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, entity.ErrUnauthorized
	}
	return s.userRepo.GetByID(ctx, claims.UserID)
}

func (s *authService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *authService) GetAllUsers(ctx context.Context) ([]*entity.UserAccount, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*entity.UserAccount, 0, len(users))
	for _, user := range users {
		account := &entity.UserAccount{User: *user}
		switch user.Role {
		case entity.RolePatient:
			if patient, err := s.patientRepo.GetByUserID(ctx, user.ID); err == nil {
				account.Name = patient.Name
				account.Phone = patient.Phone
			}
		case entity.RoleDoctor:
			if doctor, err := s.doctorRepo.GetByUserID(ctx, user.ID); err == nil {
				account.Name = doctor.Name
				account.Specialization = doctor.Specialization
			}
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (s *authService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *authService) ToggleUserStatus(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetActive(ctx, id, !user.IsActive); err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	return user, nil
}

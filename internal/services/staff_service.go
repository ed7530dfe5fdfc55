package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// StaffService manages restaurant staff records
type StaffService interface {
	Create(ctx context.Context, staff *models.Staff) error
	Get(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	List(ctx context.Context) ([]*models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	staffRepo repositories.StaffRepository
}

func NewStaffService(staffRepo repositories.StaffRepository) StaffService {
	return &staffService{staffRepo: staffRepo}
}

func (s *staffService) validate(staff *models.Staff) error {
	if err := common.ValidateRequiredString(staff.Name, "name"); err != nil {
		return common.NewValidationError("name", err.Error())
	}
	if err := common.ValidateStaffRole(staff.Role); err != nil {
		return common.NewValidationError("role", err.Error())
	}
	if err := common.ValidateOptionalString(staff.Email, "email", 255); err != nil {
		return common.NewValidationError("email", err.Error())
	}
	if err := common.ValidateOptionalString(staff.Phone, "phone", 32); err != nil {
		return common.NewValidationError("phone", err.Error())
	}
	return nil
}

func (s *staffService) Create(ctx context.Context, staff *models.Staff) error {
	if err := s.validate(staff); err != nil {
		return err
	}
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return common.StorageError("create staff", err)
	}
	return nil
}

func (s *staffService) Get(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError("get staff", err)
	}
	if staff == nil {
		return nil, fmt.Errorf("staff %s: %w", id, common.ErrNotFound)
	}
	return staff, nil
}

func (s *staffService) List(ctx context.Context) ([]*models.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, common.StorageError("list staff", err)
	}
	return staff, nil
}

func (s *staffService) Update(ctx context.Context, staff *models.Staff) error {
	if err := s.validate(staff); err != nil {
		return err
	}
	existing, err := s.staffRepo.GetByID(ctx, staff.ID)
	if err != nil {
		return common.StorageError("get staff", err)
	}
	if existing == nil {
		return fmt.Errorf("staff %s: %w", staff.ID, common.ErrNotFound)
	}
	staff.CreatedAt = existing.CreatedAt

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return common.StorageError("update staff", err)
	}
	return nil
}

func (s *staffService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return common.StorageError("get staff", err)
	}
	if existing == nil {
		return fmt.Errorf("staff %s: %w", id, common.ErrNotFound)
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return common.StorageError("delete staff", err)
	}
	return nil
}

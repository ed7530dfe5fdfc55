package services

import (
	"context"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// CustomerService manages the customer directory and loyalty balances
type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	Get(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) validate(customer *models.Customer) error {
	if err := common.ValidateRequiredString(customer.Name, "name"); err != nil {
		return common.NewValidationError("name", err.Error())
	}
	if customer.LoyaltyPoints < 0 {
		return common.NewValidationError("loyalty_points", "loyalty_points cannot be negative")
	}
	if err := common.ValidateOptionalString(customer.Email, "email", 255); err != nil {
		return common.NewValidationError("email", err.Error())
	}
	if err := common.ValidateOptionalString(customer.Phone, "phone", 32); err != nil {
		return common.NewValidationError("phone", err.Error())
	}
	if err := common.SanitizeHTMLField(customer.Address, "address"); err != nil {
		return common.NewValidationError("address", err.Error())
	}
	return nil
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := s.validate(customer); err != nil {
		return err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return common.StorageError("create customer", err)
	}
	return nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError("get customer", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %d: %w", id, common.ErrNotFound)
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, common.StorageError("list customers", err)
	}
	return customers, nil
}

func (s *customerService) Update(ctx context.Context, customer *models.Customer) error {
	if err := s.validate(customer); err != nil {
		return err
	}
	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return common.StorageError("get customer", err)
	}
	if existing == nil {
		return fmt.Errorf("customer %d: %w", customer.ID, common.ErrNotFound)
	}
	customer.CreatedAt = existing.CreatedAt

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return common.StorageError("update customer", err)
	}
	return nil
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return common.StorageError("get customer", err)
	}
	if existing == nil {
		return fmt.Errorf("customer %d: %w", id, common.ErrNotFound)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return common.StorageError("delete customer", err)
	}
	return nil
}

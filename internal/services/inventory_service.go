package services

import (
	"context"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// InventoryService tracks stock levels for kitchen supplies
type InventoryService interface {
	Create(ctx context.Context, item *models.Inventory) error
	Get(ctx context.Context, id int64) (*models.Inventory, error)
	List(ctx context.Context) ([]*models.Inventory, error)
	Update(ctx context.Context, item *models.Inventory) error
	Delete(ctx context.Context, id int64) error
	ListLowStock(ctx context.Context) ([]*models.Inventory, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
}

func NewInventoryService(inventoryRepo repositories.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) validate(item *models.Inventory) error {
	if err := common.ValidateRequiredString(item.ItemName, "item_name"); err != nil {
		return common.NewValidationError("item_name", err.Error())
	}
	if err := common.ValidateRequiredString(item.Category, "category"); err != nil {
		return common.NewValidationError("category", err.Error())
	}
	if err := common.ValidateRequiredString(item.Unit, "unit"); err != nil {
		return common.NewValidationError("unit", err.Error())
	}
	if item.CurrentStock < 0 {
		return common.NewValidationError("current_stock", "current_stock cannot be negative")
	}
	if item.MinStock < 0 {
		return common.NewValidationError("min_stock", "min_stock cannot be negative")
	}
	return nil
}

func (s *inventoryService) Create(ctx context.Context, item *models.Inventory) error {
	if err := s.validate(item); err != nil {
		return err
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return common.StorageError("create inventory item", err)
	}
	return nil
}

func (s *inventoryService) Get(ctx context.Context, id int64) (*models.Inventory, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError("get inventory item", err)
	}
	if item == nil {
		return nil, fmt.Errorf("inventory item %d: %w", id, common.ErrNotFound)
	}
	return item, nil
}

func (s *inventoryService) List(ctx context.Context) ([]*models.Inventory, error) {
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, common.StorageError("list inventory", err)
	}
	return items, nil
}

func (s *inventoryService) Update(ctx context.Context, item *models.Inventory) error {
	if err := s.validate(item); err != nil {
		return err
	}
	existing, err := s.inventoryRepo.GetByID(ctx, item.ID)
	if err != nil {
		return common.StorageError("get inventory item", err)
	}
	if existing == nil {
		return fmt.Errorf("inventory item %d: %w", item.ID, common.ErrNotFound)
	}
	item.CreatedAt = existing.CreatedAt

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return common.StorageError("update inventory item", err)
	}
	return nil
}

func (s *inventoryService) Delete(ctx context.Context, id int64) error {
	existing, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return common.StorageError("get inventory item", err)
	}
	if existing == nil {
		return fmt.Errorf("inventory item %d: %w", id, common.ErrNotFound)
	}
	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		return common.StorageError("delete inventory item", err)
	}
	return nil
}

func (s *inventoryService) ListLowStock(ctx context.Context) ([]*models.Inventory, error) {
	items, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, common.StorageError("list low stock", err)
	}
	return items, nil
}

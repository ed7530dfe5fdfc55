package services

import (
	"context"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// TableService manages dining tables and their seating state
type TableService interface {
	Create(ctx context.Context, table *models.Table) error
	List(ctx context.Context) ([]*models.Table, error)
	UpdateStatus(ctx context.Context, id int64, status models.TableStatus, currentOrderID *int64) (*models.Table, error)
}

type tableService struct {
	tableRepo repositories.TableRepository
}

func NewTableService(tableRepo repositories.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) Create(ctx context.Context, table *models.Table) error {
	if err := common.ValidatePositiveInteger(table.Number, "number", 10000); err != nil {
		return common.NewValidationError("number", err.Error())
	}
	if err := common.ValidatePositiveInteger(table.Capacity, "capacity", 100); err != nil {
		return common.NewValidationError("capacity", err.Error())
	}
	if table.Status == "" {
		table.Status = models.TableAvailable
	}
	if !table.Status.Valid() {
		return common.NewValidationError("status", fmt.Sprintf("unknown table status %q", table.Status))
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		return common.StorageError("create table", err)
	}
	return nil
}

func (s *tableService) List(ctx context.Context) ([]*models.Table, error) {
	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, common.StorageError("list tables", err)
	}
	return tables, nil
}

func (s *tableService) UpdateStatus(ctx context.Context, id int64, status models.TableStatus, currentOrderID *int64) (*models.Table, error) {
	if !status.Valid() {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown table status %q", status))
	}
	if status != models.TableOccupied {
		// An order reference only makes sense on an occupied table.
		currentOrderID = nil
	}

	table, err := s.tableRepo.UpdateStatus(ctx, id, status, currentOrderID)
	if err != nil {
		return nil, common.StorageError("update table status", err)
	}
	if table == nil {
		return nil, fmt.Errorf("table %d: %w", id, common.ErrNotFound)
	}
	return table, nil
}

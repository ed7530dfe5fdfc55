package jobs

import (
	"context"
	"log"

	"tableside/internal/models"
	"tableside/internal/repositories"
)

// InventoryAlerts finds supplies at or below their reorder threshold and
// logs them so the kitchen manager can restock.
type InventoryAlerts struct {
	inventoryRepo repositories.InventoryRepository
}

func NewInventoryAlerts(inventoryRepo repositories.InventoryRepository) *InventoryAlerts {
	return &InventoryAlerts{inventoryRepo: inventoryRepo}
}

// CheckLowStock returns the inventory items needing a restock.
func (a *InventoryAlerts) CheckLowStock(ctx context.Context) ([]*models.Inventory, error) {
	items, err := a.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		log.Printf("Failed to list low stock items: %v", err)
		return nil, err
	}
	return items, nil
}

// Run checks stock levels and logs every item below threshold.
func (a *InventoryAlerts) Run(ctx context.Context) error {
	items, err := a.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	log.Printf("Low stock alert: %d items below threshold", len(items))
	for _, item := range items {
		log.Printf("- %s (%s) has %d %s remaining (minimum: %d)",
			item.ItemName, item.Category, item.CurrentStock, item.Unit, item.MinStock)
	}
	return nil
}

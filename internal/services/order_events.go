package services

import (
	"context"

	"tableside/internal/repositories"
)

// OrderCompletedEvent signals that a table-bound order reached completed.
// Freeing the table is a subscriber concern, not the lifecycle manager's.
type OrderCompletedEvent struct {
	OrderID int64 `json:"order_id"`
	TableID int64 `json:"table_id"`
}

// OrderEventPublisher receives lifecycle events emitted by the order service.
type OrderEventPublisher interface {
	PublishOrderCompleted(ctx context.Context, event OrderCompletedEvent) error
}

// TableReleaser is the in-process subscriber wired in main: it frees the
// table that held the completed order.
type TableReleaser struct {
	tableRepo repositories.TableRepository
}

func NewTableReleaser(tableRepo repositories.TableRepository) *TableReleaser {
	return &TableReleaser{tableRepo: tableRepo}
}

func (t *TableReleaser) PublishOrderCompleted(ctx context.Context, event OrderCompletedEvent) error {
	return t.tableRepo.ReleaseByOrder(ctx, event.OrderID)
}

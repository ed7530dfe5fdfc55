package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type Order struct {
	ID         int64       `json:"id" db:"id"`
	TableID    *int64      `json:"table_id" db:"table_id"`
	CustomerID *int64      `json:"customer_id" db:"customer_id"`
	StaffID    *uuid.UUID  `json:"staff_id" db:"staff_id"`
	Status     OrderStatus `json:"status" db:"status"`
	Total      float64     `json:"total" db:"total"`
	Notes      *string     `json:"notes" db:"notes"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderWithItems is an order joined with its line items for read endpoints.
type OrderWithItems struct {
	Order
	Items []*OrderItem `json:"items"`
}

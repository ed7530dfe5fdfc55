package models

import "time"

// TableStatus is the seating state of a dining table.
type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableMaintenance TableStatus = "maintenance"
)

// Valid reports whether s is a known table status.
func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableMaintenance:
		return true
	}
	return false
}

type Table struct {
	ID             int64       `json:"id" db:"id"`
	Number         int         `json:"number" db:"number"`
	Capacity       int         `json:"capacity" db:"capacity"`
	Status         TableStatus `json:"status" db:"status"`
	CurrentOrderID *int64      `json:"current_order_id" db:"current_order_id"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

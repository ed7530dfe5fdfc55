package models

import "time"

type Inventory struct {
	ID           int64     `json:"id" db:"id"`
	ItemName     string    `json:"item_name" db:"item_name"`
	Category     string    `json:"category" db:"category"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	MinStock     int       `json:"min_stock" db:"min_stock"`
	Unit         string    `json:"unit" db:"unit"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i *Inventory) LowStock() bool {
	return i.CurrentStock <= i.MinStock
}

package models

import "time"

// OrderItem is one line entry within an order. UnitPrice is the menu price
// captured at order time and never changes afterwards, so historical totals
// survive later menu price edits.
type OrderItem struct {
	ID         int64     `json:"id" db:"id"`
	OrderID    int64     `json:"order_id" db:"order_id"`
	MenuItemID int64     `json:"menu_item_id" db:"menu_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	Notes      *string   `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DishCount is an aggregated popularity row: a menu item name and the total
// quantity ordered across all time.
type DishCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Role      string    `json:"role" db:"role"`   // manager, waiter, chef, cashier
	Shift     *string   `json:"shift" db:"shift"` // morning, afternoon, evening
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

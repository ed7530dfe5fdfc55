package models

import "time"

// ReservationStatus is the booking state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

type Reservation struct {
	ID              int64             `json:"id" db:"id"`
	CustomerID      *int64            `json:"customer_id" db:"customer_id"`
	TableID         *int64            `json:"table_id" db:"table_id"`
	ReservationDate time.Time         `json:"reservation_date" db:"reservation_date"`
	PartySize       int               `json:"party_size" db:"party_size"`
	Status          ReservationStatus `json:"status" db:"status"`
	Notes           *string           `json:"notes" db:"notes"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tableside/internal/models"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id int64) (*models.Reservation, error)
	List(ctx context.Context) ([]*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	Delete(ctx context.Context, id int64) error
	// CompletePast marks confirmed reservations dated before cutoff as
	// completed and returns how many rows changed.
	CompletePast(ctx context.Context, cutoff time.Time) (int64, error)
}

type reservationRepo struct {
	db DB
}

func NewReservationRepo(db DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (customer_id, table_id, reservation_date, party_size, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, reservation.CustomerID, reservation.TableID, reservation.ReservationDate,
		reservation.PartySize, reservation.Status, reservation.Notes).
		Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
}

func (r *reservationRepo) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	query := `
		SELECT id, customer_id, table_id, reservation_date, party_size, status, notes, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&reservation.ID, &reservation.CustomerID, &reservation.TableID,
		&reservation.ReservationDate, &reservation.PartySize, &reservation.Status, &reservation.Notes,
		&reservation.CreatedAt, &reservation.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *reservationRepo) List(ctx context.Context) ([]*models.Reservation, error) {
	query := `
		SELECT id, customer_id, table_id, reservation_date, party_size, status, notes, created_at, updated_at
		FROM reservations
		ORDER BY reservation_date ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		reservation := &models.Reservation{}
		if err := rows.Scan(&reservation.ID, &reservation.CustomerID, &reservation.TableID,
			&reservation.ReservationDate, &reservation.PartySize, &reservation.Status,
			&reservation.Notes, &reservation.CreatedAt, &reservation.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}

func (r *reservationRepo) Update(ctx context.Context, reservation *models.Reservation) error {
	query := `
		UPDATE reservations
		SET customer_id = $1, table_id = $2, reservation_date = $3, party_size = $4, status = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, reservation.CustomerID, reservation.TableID, reservation.ReservationDate,
		reservation.PartySize, reservation.Status, reservation.Notes, reservation.ID)
	return err
}

func (r *reservationRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *reservationRepo) CompletePast(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE reservations
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND reservation_date < $1
	`
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

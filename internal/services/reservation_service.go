package services

import (
	"context"
	"fmt"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// ReservationService manages table bookings
type ReservationService interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	Get(ctx context.Context, id int64) (*models.Reservation, error)
	List(ctx context.Context) ([]*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	Delete(ctx context.Context, id int64) error
}

type reservationService struct {
	reservationRepo repositories.ReservationRepository
	tableRepo       repositories.TableRepository
}

func NewReservationService(reservationRepo repositories.ReservationRepository, tableRepo repositories.TableRepository) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
	}
}

func (s *reservationService) validate(ctx context.Context, reservation *models.Reservation) error {
	if err := common.ValidatePositiveInteger(reservation.PartySize, "party_size", 100); err != nil {
		return common.NewValidationError("party_size", err.Error())
	}
	if reservation.ReservationDate.IsZero() {
		return common.NewValidationError("reservation_date", "reservation_date is required")
	}
	if reservation.Status == "" {
		reservation.Status = models.ReservationConfirmed
	}
	if !reservation.Status.Valid() {
		return common.NewValidationError("status", fmt.Sprintf("unknown reservation status %q", reservation.Status))
	}
	if err := common.SanitizeHTMLField(reservation.Notes, "notes"); err != nil {
		return common.NewValidationError("notes", err.Error())
	}

	// A booked table must actually seat the party.
	if reservation.TableID != nil {
		table, err := s.tableRepo.GetByID(ctx, *reservation.TableID)
		if err != nil {
			return common.StorageError("get table", err)
		}
		if table == nil {
			return common.NewValidationError("table_id", fmt.Sprintf("table %d does not exist", *reservation.TableID))
		}
		if reservation.PartySize > table.Capacity {
			return common.NewValidationError("party_size",
				fmt.Sprintf("party of %d exceeds table %d capacity of %d", reservation.PartySize, table.Number, table.Capacity))
		}
	}
	return nil
}

func (s *reservationService) Create(ctx context.Context, reservation *models.Reservation) error {
	if err := s.validate(ctx, reservation); err != nil {
		return err
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return common.StorageError("create reservation", err)
	}
	return nil
}

func (s *reservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError("get reservation", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, common.ErrNotFound)
	}
	return reservation, nil
}

func (s *reservationService) List(ctx context.Context) ([]*models.Reservation, error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, common.StorageError("list reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) Update(ctx context.Context, reservation *models.Reservation) error {
	if err := s.validate(ctx, reservation); err != nil {
		return err
	}
	existing, err := s.reservationRepo.GetByID(ctx, reservation.ID)
	if err != nil {
		return common.StorageError("get reservation", err)
	}
	if existing == nil {
		return fmt.Errorf("reservation %d: %w", reservation.ID, common.ErrNotFound)
	}
	reservation.CreatedAt = existing.CreatedAt

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return common.StorageError("update reservation", err)
	}
	return nil
}

func (s *reservationService) Delete(ctx context.Context, id int64) error {
	existing, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return common.StorageError("get reservation", err)
	}
	if existing == nil {
		return fmt.Errorf("reservation %d: %w", id, common.ErrNotFound)
	}
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return common.StorageError("delete reservation", err)
	}
	return nil
}

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// ReservationHandlers handles HTTP requests for reservations
type ReservationHandlers struct {
	reservationService services.ReservationService
}

func NewReservationHandlers(reservationService services.ReservationService) *ReservationHandlers {
	return &ReservationHandlers{reservationService: reservationService}
}

type reservationRequest struct {
	CustomerID      *int64  `json:"customer_id"`
	TableID         *int64  `json:"table_id"`
	ReservationDate string  `json:"reservation_date"`
	PartySize       int     `json:"party_size"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}

func (r *reservationRequest) toModel() (*models.Reservation, error) {
	// Accept both full timestamps and bare dates.
	date, err := time.Parse(time.RFC3339, r.ReservationDate)
	if err != nil {
		date, err = time.Parse("2006-01-02", r.ReservationDate)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "reservation_date must be RFC3339 or YYYY-MM-DD")
		}
	}
	return &models.Reservation{
		CustomerID:      r.CustomerID,
		TableID:         r.TableID,
		ReservationDate: date,
		PartySize:       r.PartySize,
		Status:          models.ReservationStatus(r.Status),
		Notes:           r.Notes,
	}, nil
}

// CreateReservation handles POST /reservations
func (h *ReservationHandlers) CreateReservation(c echo.Context) error {
	ctx := c.Request().Context()

	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	reservation, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.reservationService.Create(ctx, reservation); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Reservation created successfully",
		"reservation": reservation,
	})
}

// ListReservations handles GET /reservations
func (h *ReservationHandlers) ListReservations(c echo.Context) error {
	ctx := c.Request().Context()

	reservations, err := h.reservationService.List(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// GetReservation handles GET /reservations/:id
func (h *ReservationHandlers) GetReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	reservation, err := h.reservationService.Get(ctx, id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles PUT /reservations/:id
func (h *ReservationHandlers) UpdateReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	reservation, err := req.toModel()
	if err != nil {
		return err
	}
	reservation.ID = id
	if err := h.reservationService.Update(ctx, reservation); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Reservation updated successfully",
		"reservation": reservation,
	})
}

// DeleteReservation handles DELETE /reservations/:id
func (h *ReservationHandlers) DeleteReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.reservationService.Delete(ctx, id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Reservation deleted successfully",
	})
}

package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// StaffHandlers handles HTTP requests for staff members
type StaffHandlers struct {
	staffService services.StaffService
}

func NewStaffHandlers(staffService services.StaffService) *StaffHandlers {
	return &StaffHandlers{staffService: staffService}
}

func parseStaffID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid staff ID")
	}
	return id, nil
}

type staffRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
	Shift    *string `json:"shift"`
	IsActive *bool   `json:"is_active"`
}

func (r *staffRequest) toModel() *models.Staff {
	staff := &models.Staff{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     r.Role,
		Shift:    r.Shift,
		IsActive: true,
	}
	if r.IsActive != nil {
		staff.IsActive = *r.IsActive
	}
	return staff
}

// CreateStaff handles POST /staff
func (h *StaffHandlers) CreateStaff(c echo.Context) error {
	ctx := c.Request().Context()

	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	staff := req.toModel()
	if err := h.staffService.Create(ctx, staff); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Staff member created successfully",
		"staff":   staff,
	})
}

// ListStaff handles GET /staff
func (h *StaffHandlers) ListStaff(c echo.Context) error {
	ctx := c.Request().Context()

	staff, err := h.staffService.List(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, staff)
}

// GetStaff handles GET /staff/:id
func (h *StaffHandlers) GetStaff(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseStaffID(c)
	if err != nil {
		return err
	}

	staff, err := h.staffService.Get(ctx, id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, staff)
}

// UpdateStaff handles PUT /staff/:id
func (h *StaffHandlers) UpdateStaff(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseStaffID(c)
	if err != nil {
		return err
	}

	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	staff := req.toModel()
	staff.ID = id
	if err := h.staffService.Update(ctx, staff); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Staff member updated successfully",
		"staff":   staff,
	})
}

// DeleteStaff handles DELETE /staff/:id
func (h *StaffHandlers) DeleteStaff(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseStaffID(c)
	if err != nil {
		return err
	}

	if err := h.staffService.Delete(ctx, id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Staff member deleted successfully",
	})
}

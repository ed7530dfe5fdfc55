package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// CustomerHandlers handles HTTP requests for customers
type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

type customerRequest struct {
	Name          string  `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	LoyaltyPoints int     `json:"loyalty_points"`
}

func (r *customerRequest) toModel() *models.Customer {
	return &models.Customer{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		LoyaltyPoints: r.LoyaltyPoints,
	}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	customer := req.toModel()
	if err := h.customerService.Create(ctx, customer); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Customer created successfully",
		"customer": customer,
	})
}

// ListCustomers handles GET /customers
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	customers, err := h.customerService.List(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /customers/:id
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.customerService.Get(ctx, id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	customer := req.toModel()
	customer.ID = id
	if err := h.customerService.Update(ctx, customer); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Customer updated successfully",
		"customer": customer,
	})
}

// DeleteCustomer handles DELETE /customers/:id
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.customerService.Delete(ctx, id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Customer deleted successfully",
	})
}

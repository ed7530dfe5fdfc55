package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// TableHandlers handles HTTP requests for dining tables
type TableHandlers struct {
	tableService services.TableService
}

func NewTableHandlers(tableService services.TableService) *TableHandlers {
	return &TableHandlers{tableService: tableService}
}

// CreateTable handles POST /tables
func (h *TableHandlers) CreateTable(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Number   int    `json:"number"`
		Capacity int    `json:"capacity"`
		Status   string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	table := &models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   models.TableStatus(req.Status),
	}
	if err := h.tableService.Create(ctx, table); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Table created successfully",
		"table":   table,
	})
}

// ListTables handles GET /tables
func (h *TableHandlers) ListTables(c echo.Context) error {
	ctx := c.Request().Context()

	tables, err := h.tableService.List(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tables)
}

// UpdateTableStatus handles PUT /tables/:id/status
func (h *TableHandlers) UpdateTableStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status         string `json:"status"`
		CurrentOrderID *int64 `json:"current_order_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateTableStatus(req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.tableService.UpdateStatus(ctx, id, models.TableStatus(req.Status), req.CurrentOrderID)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Table status updated successfully",
		"table":   table,
	})
}

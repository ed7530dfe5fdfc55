package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// InventoryHandlers handles HTTP requests for inventory items
type InventoryHandlers struct {
	inventoryService services.InventoryService
}

func NewInventoryHandlers(inventoryService services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventoryService: inventoryService}
}

type inventoryRequest struct {
	ItemName     string `json:"item_name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Unit         string `json:"unit"`
}

func (r *inventoryRequest) toModel() *models.Inventory {
	return &models.Inventory{
		ItemName:     r.ItemName,
		Category:     r.Category,
		CurrentStock: r.CurrentStock,
		MinStock:     r.MinStock,
		Unit:         r.Unit,
	}
}

// CreateInventoryItem handles POST /inventory
func (h *InventoryHandlers) CreateInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item := req.toModel()
	if err := h.inventoryService.Create(ctx, item); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":        "Inventory item created successfully",
		"inventory_item": item,
	})
}

// ListInventory handles GET /inventory
func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.inventoryService.List(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListLowStock handles GET /inventory/low-stock
func (h *InventoryHandlers) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.inventoryService.ListLowStock(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetInventoryItem handles GET /inventory/:id
func (h *InventoryHandlers) GetInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.inventoryService.Get(ctx, id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem handles PUT /inventory/:id
func (h *InventoryHandlers) UpdateInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item := req.toModel()
	item.ID = id
	if err := h.inventoryService.Update(ctx, item); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "Inventory item updated successfully",
		"inventory_item": item,
	})
}

// DeleteInventoryItem handles DELETE /inventory/:id
func (h *InventoryHandlers) DeleteInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.inventoryService.Delete(ctx, id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Inventory item deleted successfully",
	})
}

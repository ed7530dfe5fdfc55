package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		TableID    *int64  `json:"table_id"`
		CustomerID *int64  `json:"customer_id"`
		StaffID    *string `json:"staff_id"`
		Notes      *string `json:"notes"`
		Items      []struct {
			MenuItemID int64    `json:"menu_item_id"`
			Quantity   int      `json:"quantity"`
			UnitPrice  *float64 `json:"unit_price"`
			Notes      *string  `json:"notes"`
		} `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	createReq := &services.CreateOrderRequest{
		TableID:    req.TableID,
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
	}
	if req.StaffID != nil && *req.StaffID != "" {
		staffID, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid staff ID")
		}
		createReq.StaffID = &staffID
	}
	for _, item := range req.Items {
		createReq.Items = append(createReq.Items, services.CreateOrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Notes:      item.Notes,
		})
	}

	order, err := h.orderService.CreateOrder(ctx, createReq)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// ListOrders handles GET /orders, optionally filtered by ?status=
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	if statusParam := c.QueryParam("status"); statusParam != "" {
		if err := common.ValidateOrderStatus(statusParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		orders, err := h.orderService.ListOrdersByStatus(ctx, models.OrderStatus(statusParam), limit, offset)
		if err != nil {
			return common.RespondDomainError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"orders": orders,
			"status": statusParam,
			"limit":  limit,
			"offset": offset,
		})
	}

	orders, err := h.orderService.ListOrders(ctx, limit, offset)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// GetOrder handles GET /orders/:id, returning the order with its line items
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateOrderStatus(req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.AdvanceStatus(ctx, orderID, models.OrderStatus(req.Status))
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// AddOrderItem handles POST /orders/:id/items
func (h *OrderHandlers) AddOrderItem(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		MenuItemID int64    `json:"menu_item_id"`
		Quantity   int      `json:"quantity"`
		UnitPrice  *float64 `json:"unit_price"`
		Notes      *string  `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item, err := h.orderService.AppendItem(ctx, orderID, &services.AppendItemRequest{
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Notes:      req.Notes,
	})
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Item added to order",
		"item":    item,
	})
}

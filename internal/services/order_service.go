package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// orderTransitions is the allowed-transition table. Orders move strictly
// forward along pending -> preparing -> ready -> completed; cancellation is
// possible only before the kitchen has finished the food.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing: {models.OrderReady, models.OrderCancelled},
	models.OrderReady:     {models.OrderCompleted},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateOrderRequest carries the input for a new order with its pre-attached
// line items.
type CreateOrderRequest struct {
	TableID    *int64
	CustomerID *int64
	StaffID    *uuid.UUID
	Notes      *string
	Items      []CreateOrderItem
}

// CreateOrderItem is one requested line item. UnitPrice overrides the current
// menu price when set; otherwise the menu price is captured at order time.
type CreateOrderItem struct {
	MenuItemID int64
	Quantity   int
	UnitPrice  *float64
	Notes      *string
}

// AppendItemRequest adds a line item to an open order.
type AppendItemRequest struct {
	MenuItemID int64
	Quantity   int
	UnitPrice  *float64
	Notes      *string
}

// OrderServiceInterface defines the order lifecycle operations
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*models.OrderWithItems, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListOrdersByStatus(ctx context.Context, status models.OrderStatus, limit, offset int) ([]*models.Order, error)
	AdvanceStatus(ctx context.Context, orderID int64, requested models.OrderStatus) (*models.Order, error)
	AppendItem(ctx context.Context, orderID int64, req *AppendItemRequest) (*models.OrderItem, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
	itemRepo  repositories.OrderItemRepository
	menuRepo  repositories.MenuRepository
	cacheSvc  caching.CacheService
	publisher OrderEventPublisher
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository, itemRepo repositories.OrderItemRepository,
	menuRepo repositories.MenuRepository, cacheSvc caching.CacheService, publisher OrderEventPublisher) OrderServiceInterface {
	return &orderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		menuRepo:  menuRepo,
		cacheSvc:  cacheSvc,
		publisher: publisher,
	}
}

// CreateOrder validates the request, captures unit prices from the menu,
// computes the total and inserts the order with its items in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if err := common.SanitizeHTMLField(req.Notes, "order notes"); err != nil {
		return nil, common.NewValidationError("notes", err.Error())
	}
	if len(req.Items) == 0 {
		return nil, common.NewValidationError("items", "at least one item is required")
	}

	items := make([]*models.OrderItem, 0, len(req.Items))
	var total float64
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, common.NewValidationError("quantity", "quantity must be positive")
		}

		unitPrice, err := s.resolveUnitPrice(ctx, line.MenuItemID, line.UnitPrice)
		if err != nil {
			return nil, err
		}

		total += unitPrice * float64(line.Quantity)
		items = append(items, &models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			Notes:      line.Notes,
		})
	}

	order := &models.Order{
		TableID:    req.TableID,
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
		Status:     models.OrderPending,
		Total:      total,
		Notes:      req.Notes,
	}

	if err := s.orderRepo.Create(ctx, order, items); err != nil {
		return nil, common.StorageError("create order", err)
	}

	s.invalidateDashboard(ctx)

	return order, nil
}

// resolveUnitPrice captures the price for a line item: the override when
// given, otherwise the current menu price.
func (s *orderService) resolveUnitPrice(ctx context.Context, menuItemID int64, override *float64) (float64, error) {
	if override != nil {
		if *override <= 0 {
			return 0, common.NewValidationError("unit_price", "unit price must be positive")
		}
		return *override, nil
	}

	menuItem, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		return 0, common.StorageError("look up menu item", err)
	}
	if menuItem == nil {
		return 0, common.NewValidationError("menu_item_id", fmt.Sprintf("unknown menu item %d", menuItemID))
	}
	if !menuItem.Available {
		return 0, common.NewValidationError("menu_item_id", fmt.Sprintf("menu item %q is not available", menuItem.Name))
	}
	return menuItem.Price, nil
}

// GetOrder retrieves an order together with its line items
func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*models.OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.StorageError("get order", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, common.ErrNotFound)
	}

	items, err := s.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, common.StorageError("list order items", err)
	}

	return &models.OrderWithItems{Order: *order, Items: items}, nil
}

// ListOrders lists orders with pagination, newest first
func (s *orderService) ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, common.StorageError("list orders", err)
	}
	return orders, nil
}

// ListOrdersByStatus lists orders in one lifecycle state, oldest first
func (s *orderService) ListOrdersByStatus(ctx context.Context, status models.OrderStatus, limit, offset int) ([]*models.Order, error) {
	if !status.Valid() {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown order status %q", status))
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	orders, err := s.orderRepo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, common.StorageError("list orders by status", err)
	}
	return orders, nil
}

// AdvanceStatus validates the requested transition against the lifecycle
// table and applies it with an optimistic concurrency guard: the UPDATE only
// matches while the stored status equals the status just read, so two
// concurrent advances cannot both succeed.
func (s *orderService) AdvanceStatus(ctx context.Context, orderID int64, requested models.OrderStatus) (*models.Order, error) {
	if !requested.Valid() {
		return nil, common.NewValidationError("status", fmt.Sprintf("unknown order status %q", requested))
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.StorageError("get order", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, common.ErrNotFound)
	}

	if !canTransition(order.Status, requested) {
		return nil, &common.TransitionError{From: order.Status, To: requested}
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, requested)
	if err != nil {
		return nil, common.StorageError("update order status", err)
	}
	if !applied {
		// The guarded UPDATE matched nothing: the order was deleted or its
		// status moved underneath us. Re-read to tell the two apart.
		current, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, common.StorageError("re-read order", err)
		}
		if current == nil {
			return nil, fmt.Errorf("order %d: %w", orderID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("order %d moved from %q to %q: %w", orderID, order.Status, current.Status, common.ErrConflict)
	}

	order.Status = requested
	order.UpdatedAt = time.Now()

	if requested == models.OrderCompleted && order.TableID != nil {
		event := OrderCompletedEvent{OrderID: order.ID, TableID: *order.TableID}
		if err := s.publisher.PublishOrderCompleted(ctx, event); err != nil {
			// The transition itself is committed; the table can be freed by hand.
			log.Printf("Failed to publish completion event for order %d: %v", order.ID, err)
		}
	}

	s.invalidateDashboard(ctx)

	return order, nil
}

// AppendItem adds a line item to an order that is still open (pending or
// preparing) and recomputes the stored total.
func (s *orderService) AppendItem(ctx context.Context, orderID int64, req *AppendItemRequest) (*models.OrderItem, error) {
	if req.Quantity <= 0 {
		return nil, common.NewValidationError("quantity", "quantity must be positive")
	}
	if err := common.SanitizeHTMLField(req.Notes, "item notes"); err != nil {
		return nil, common.NewValidationError("notes", err.Error())
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.StorageError("get order", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, common.ErrNotFound)
	}

	if order.Status != models.OrderPending && order.Status != models.OrderPreparing {
		return nil, &common.TransitionError{Op: "append item", From: order.Status}
	}

	unitPrice, err := s.resolveUnitPrice(ctx, req.MenuItemID, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	item := &models.OrderItem{
		OrderID:    orderID,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		UnitPrice:  unitPrice,
		Notes:      req.Notes,
	}

	if err := s.itemRepo.Add(ctx, item); err != nil {
		return nil, common.StorageError("append order item", err)
	}

	s.invalidateDashboard(ctx)

	return item, nil
}

// invalidateDashboard drops cached dashboard views after an order mutation.
// Cache failures are logged, never surfaced: the next read recomputes.
func (s *orderService) invalidateDashboard(ctx context.Context) {
	if err := s.cacheSvc.InvalidateDashboard(ctx); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}

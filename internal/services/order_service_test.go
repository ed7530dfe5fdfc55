package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

// Mock repositories and services
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status models.OrderStatus, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SalesBetween(ctx context.Context, start, end time.Time) (int, float64, error) {
	args := m.Called(ctx, start, end)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *MockOrderRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]repositories.DaySales, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]repositories.DaySales), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) Add(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) PopularDishes(ctx context.Context, limit int) ([]models.DishCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.DishCount), args.Error(1)
}

type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) List(ctx context.Context) ([]*models.MenuItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockCacheService) SetMenuItem(ctx context.Context, item *models.MenuItem, ttl time.Duration) error {
	args := m.Called(ctx, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteMenuItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCacheService) GetDailyStats(ctx context.Context, day string) (*models.DailyStats, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyStats), args.Error(1)
}

func (m *MockCacheService) SetDailyStats(ctx context.Context, day string, stats *models.DailyStats, ttl time.Duration) error {
	args := m.Called(ctx, day, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateDashboard(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) SetSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, userID, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCompleted(ctx context.Context, event OrderCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo *MockOrderRepository
	itemRepo  *MockOrderItemRepository
	menuRepo  *MockMenuRepository
	cacheSvc  *MockCacheService
	publisher *MockEventPublisher
	service   OrderServiceInterface
	context   context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.itemRepo = new(MockOrderItemRepository)
	suite.menuRepo = new(MockMenuRepository)
	suite.cacheSvc = new(MockCacheService)
	suite.publisher = new(MockEventPublisher)
	suite.service = NewOrderService(suite.orderRepo, suite.itemRepo, suite.menuRepo, suite.cacheSvc, suite.publisher)
	suite.context = context.Background()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func pendingOrder(id int64) *models.Order {
	return &models.Order{ID: id, Status: models.OrderPending, Total: 20.00}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_CapturesMenuPricesAndTotal() {
	suite.menuRepo.On("GetByID", suite.context, int64(1)).
		Return(&models.MenuItem{ID: 1, Name: "Margherita", Price: 10.00, Available: true}, nil)
	suite.menuRepo.On("GetByID", suite.context, int64(2)).
		Return(&models.MenuItem{ID: 2, Name: "Tiramisu", Price: 5.50, Available: true}, nil)
	suite.orderRepo.On("Create", suite.context, mock.AnythingOfType("*models.Order"), mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Order).ID = 7
		}).Return(nil)
	suite.cacheSvc.On("InvalidateDashboard", suite.context).Return(nil)

	order, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		Items: []CreateOrderItem{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), order.ID)
	assert.Equal(suite.T(), models.OrderPending, order.Status)
	assert.Equal(suite.T(), 25.50, order.Total)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_EmptyItemsRejected() {
	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{})

	var ve *common.ValidationError
	assert.ErrorAs(suite.T(), err, &ve)
	assert.Equal(suite.T(), "items", ve.Field)
	suite.orderRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ZeroQuantityRejected() {
	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 0}},
	})

	var ve *common.ValidationError
	assert.ErrorAs(suite.T(), err, &ve)
	assert.Equal(suite.T(), "quantity", ve.Field)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownMenuItemRejected() {
	suite.menuRepo.On("GetByID", suite.context, int64(42)).Return(nil, nil)

	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 42, Quantity: 1}},
	})

	var ve *common.ValidationError
	assert.ErrorAs(suite.T(), err, &ve)
	assert.Equal(suite.T(), "menu_item_id", ve.Field)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnavailableMenuItemRejected() {
	suite.menuRepo.On("GetByID", suite.context, int64(3)).
		Return(&models.MenuItem{ID: 3, Name: "Oysters", Price: 18.00, Available: false}, nil)

	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 3, Quantity: 1}},
	})

	var ve *common.ValidationError
	assert.ErrorAs(suite.T(), err, &ve)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_PriceOverrideUsed() {
	override := 8.00
	suite.orderRepo.On("Create", suite.context, mock.AnythingOfType("*models.Order"), mock.Anything).Return(nil)
	suite.cacheSvc.On("InvalidateDashboard", suite.context).Return(nil)

	order, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 3, UnitPrice: &override}},
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 24.00, order.Total)
	// The override skips the menu lookup entirely.
	suite.menuRepo.AssertNotCalled(suite.T(), "GetByID")
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_ValidTransitions() {
	valid := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.OrderPending, models.OrderPreparing},
		{models.OrderPending, models.OrderCancelled},
		{models.OrderPreparing, models.OrderReady},
		{models.OrderPreparing, models.OrderCancelled},
		{models.OrderReady, models.OrderCompleted},
	}

	for _, tc := range valid {
		suite.SetupTest()
		order := &models.Order{ID: 5, Status: tc.from}
		suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(order, nil)
		suite.orderRepo.On("UpdateStatus", suite.context, int64(5), tc.from, tc.to).Return(true, nil)
		suite.publisher.On("PublishOrderCompleted", suite.context, mock.Anything).Return(nil)
		suite.cacheSvc.On("InvalidateDashboard", suite.context).Return(nil)

		updated, err := suite.service.AdvanceStatus(suite.context, 5, tc.to)
		assert.NoError(suite.T(), err, "%s -> %s", tc.from, tc.to)
		assert.Equal(suite.T(), tc.to, updated.Status)
	}
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_InvalidTransitionsRejected() {
	invalid := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.OrderPending, models.OrderReady},
		{models.OrderPending, models.OrderCompleted},
		{models.OrderPreparing, models.OrderCompleted},
		{models.OrderReady, models.OrderCancelled},
		{models.OrderReady, models.OrderPending},
		{models.OrderCompleted, models.OrderPending},
		{models.OrderCompleted, models.OrderCancelled},
		{models.OrderCancelled, models.OrderPreparing},
	}

	for _, tc := range invalid {
		suite.SetupTest()
		order := &models.Order{ID: 5, Status: tc.from}
		suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(order, nil)

		_, err := suite.service.AdvanceStatus(suite.context, 5, tc.to)
		var te *common.TransitionError
		assert.ErrorAs(suite.T(), err, &te, "%s -> %s", tc.from, tc.to)
		suite.orderRepo.AssertNotCalled(suite.T(), "UpdateStatus")
	}
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_SameStatusRejected() {
	suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(pendingOrder(5), nil)

	_, err := suite.service.AdvanceStatus(suite.context, 5, models.OrderPending)
	var te *common.TransitionError
	assert.ErrorAs(suite.T(), err, &te)
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_UnknownOrder() {
	suite.orderRepo.On("GetByID", suite.context, int64(99)).Return(nil, nil)

	_, err := suite.service.AdvanceStatus(suite.context, 99, models.OrderPreparing)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_ConcurrentAdvanceConflicts() {
	// First read sees pending, but the guarded update matches nothing because
	// another request advanced the order in between.
	suite.orderRepo.On("GetByID", suite.context, int64(5)).
		Return(pendingOrder(5), nil).Once()
	suite.orderRepo.On("UpdateStatus", suite.context, int64(5), models.OrderPending, models.OrderPreparing).
		Return(false, nil)
	suite.orderRepo.On("GetByID", suite.context, int64(5)).
		Return(&models.Order{ID: 5, Status: models.OrderPreparing}, nil).Once()

	_, err := suite.service.AdvanceStatus(suite.context, 5, models.OrderPreparing)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_DeletedDuringAdvance() {
	suite.orderRepo.On("GetByID", suite.context, int64(5)).
		Return(pendingOrder(5), nil).Once()
	suite.orderRepo.On("UpdateStatus", suite.context, int64(5), models.OrderPending, models.OrderPreparing).
		Return(false, nil)
	suite.orderRepo.On("GetByID", suite.context, int64(5)).
		Return(nil, nil).Once()

	_, err := suite.service.AdvanceStatus(suite.context, 5, models.OrderPreparing)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_CompletionPublishesTableRelease() {
	tableID := int64(12)
	order := &models.Order{ID: 5, TableID: &tableID, Status: models.OrderReady}
	suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(order, nil)
	suite.orderRepo.On("UpdateStatus", suite.context, int64(5), models.OrderReady, models.OrderCompleted).
		Return(true, nil)
	suite.publisher.On("PublishOrderCompleted", suite.context,
		OrderCompletedEvent{OrderID: 5, TableID: 12}).Return(nil)
	suite.cacheSvc.On("InvalidateDashboard", suite.context).Return(nil)

	updated, err := suite.service.AdvanceStatus(suite.context, 5, models.OrderCompleted)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderCompleted, updated.Status)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestAdvanceStatus_PublishFailureDoesNotFailTransition() {
	tableID := int64(12)
	order := &models.Order{ID: 5, TableID: &tableID, Status: models.OrderReady}
	suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(order, nil)
	suite.orderRepo.On("UpdateStatus", suite.context, int64(5), models.OrderReady, models.OrderCompleted).
		Return(true, nil)
	suite.publisher.On("PublishOrderCompleted", suite.context, mock.Anything).
		Return(errors.New("table repo down"))
	suite.cacheSvc.On("InvalidateDashboard", suite.context).Return(nil)

	updated, err := suite.service.AdvanceStatus(suite.context, 5, models.OrderCompleted)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderCompleted, updated.Status)
}

func (suite *OrderServiceTestSuite) TestAppendItem_OpenOrder() {
	suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(pendingOrder(5), nil)
	suite.menuRepo.On("GetByID", suite.context, int64(2)).
		Return(&models.MenuItem{ID: 2, Name: "Tiramisu", Price: 5.50, Available: true}, nil)
	suite.itemRepo.On("Add", suite.context, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	suite.cacheSvc.On("InvalidateDashboard", suite.context).Return(nil)

	item, err := suite.service.AppendItem(suite.context, 5, &AppendItemRequest{MenuItemID: 2, Quantity: 2})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), item.OrderID)
	assert.Equal(suite.T(), 5.50, item.UnitPrice)
}

func (suite *OrderServiceTestSuite) TestAppendItem_ClosedOrderRejected() {
	for _, status := range []models.OrderStatus{models.OrderReady, models.OrderCompleted, models.OrderCancelled} {
		suite.SetupTest()
		suite.orderRepo.On("GetByID", suite.context, int64(5)).
			Return(&models.Order{ID: 5, Status: status}, nil)

		_, err := suite.service.AppendItem(suite.context, 5, &AppendItemRequest{MenuItemID: 2, Quantity: 1})
		var te *common.TransitionError
		assert.ErrorAs(suite.T(), err, &te, "status %s", status)
		suite.itemRepo.AssertNotCalled(suite.T(), "Add")
	}
}

func (suite *OrderServiceTestSuite) TestGetOrder_WithItems() {
	suite.orderRepo.On("GetByID", suite.context, int64(5)).Return(pendingOrder(5), nil)
	suite.itemRepo.On("ListByOrder", suite.context, int64(5)).
		Return([]*models.OrderItem{{ID: 1, OrderID: 5, MenuItemID: 2, Quantity: 1, UnitPrice: 20.00}}, nil)

	order, err := suite.service.GetOrder(suite.context, 5)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), order.Items, 1)
	assert.Equal(suite.T(), int64(5), order.ID)
}

func (suite *OrderServiceTestSuite) TestGetOrder_NotFound() {
	suite.orderRepo.On("GetByID", suite.context, int64(99)).Return(nil, nil)

	_, err := suite.service.GetOrder(suite.context, 99)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestListOrdersByStatus_InvalidStatus() {
	_, err := suite.service.ListOrdersByStatus(suite.context, "burnt", 10, 0)
	var ve *common.ValidationError
	assert.ErrorAs(suite.T(), err, &ve)
}

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DishCount), args.Error(1)
}

type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, table *models.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableRepository) List(ctx context.Context) ([]*models.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Table), args.Error(1)
}

func (m *MockTableRepository) UpdateStatus(ctx context.Context, id int64, status models.TableStatus, currentOrderID *int64) (*models.Table, error) {
	args := m.Called(ctx, id, status, currentOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableRepository) ReleaseByOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockTableRepository) CountByStatus(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStaffRepository) CountActive(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
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

type AnalyticsServiceTestSuite struct {
	suite.Suite
	orderRepo *MockOrderRepository
	itemRepo  *MockOrderItemRepository
	tableRepo *MockTableRepository
	staffRepo *MockStaffRepository
	cacheSvc  *MockCacheService
	service   *AnalyticsService
	context   context.Context
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.itemRepo = new(MockOrderItemRepository)
	suite.tableRepo = new(MockTableRepository)
	suite.staffRepo = new(MockStaffRepository)
	suite.cacheSvc = new(MockCacheService)
	suite.service = NewAnalyticsService(suite.orderRepo, suite.itemRepo, suite.tableRepo, suite.staffRepo, suite.cacheSvc)
	suite.context = context.Background()
}

func TestAnalyticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (suite *AnalyticsServiceTestSuite) TestDailyStats_ComputesAverage() {
	asOf := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.cacheSvc.On("GetDailyStats", suite.context, "2025-03-10").Return(nil, nil)
	suite.orderRepo.On("SalesBetween", suite.context, day, day.AddDate(0, 0, 1)).Return(4, 100.00, nil)
	suite.tableRepo.On("CountByStatus", suite.context).Return(10, 3, nil)
	suite.staffRepo.On("CountActive", suite.context).Return(8, 6, nil)
	suite.cacheSvc.On("SetDailyStats", suite.context, "2025-03-10", mock.Anything, time.Minute).Return(nil)

	stats, err := suite.service.DailyStats(suite.context, asOf)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100.00, stats.SalesToday)
	assert.Equal(suite.T(), 4, stats.OrdersToday)
	assert.Equal(suite.T(), 25.00, stats.AverageOrderValue)
	assert.Equal(suite.T(), 3, stats.TablesOccupied)
	assert.Equal(suite.T(), 10, stats.TotalTables)
	assert.Equal(suite.T(), 6, stats.ActiveStaff)
	assert.Equal(suite.T(), 8, stats.TotalStaff)
}

func (suite *AnalyticsServiceTestSuite) TestDailyStats_ZeroOrdersZeroAverage() {
	asOf := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.cacheSvc.On("GetDailyStats", suite.context, "2025-03-10").Return(nil, nil)
	suite.orderRepo.On("SalesBetween", suite.context, day, day.AddDate(0, 0, 1)).Return(0, 0.0, nil)
	suite.tableRepo.On("CountByStatus", suite.context).Return(10, 0, nil)
	suite.staffRepo.On("CountActive", suite.context).Return(8, 0, nil)
	suite.cacheSvc.On("SetDailyStats", suite.context, "2025-03-10", mock.Anything, time.Minute).Return(nil)

	stats, err := suite.service.DailyStats(suite.context, asOf)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, stats.AverageOrderValue)
	assert.Equal(suite.T(), 0.0, stats.SalesToday)
}

func (suite *AnalyticsServiceTestSuite) TestDailyStats_ServesFromCache() {
	cached := &models.DailyStats{SalesToday: 55.00, OrdersToday: 2, AverageOrderValue: 27.50}
	suite.cacheSvc.On("GetDailyStats", suite.context, "2025-03-10").Return(cached, nil)

	stats, err := suite.service.DailyStats(suite.context, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, stats)
	suite.orderRepo.AssertNotCalled(suite.T(), "SalesBetween")
}

func (suite *AnalyticsServiceTestSuite) TestDailyStats_StorageFailure() {
	asOf := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.cacheSvc.On("GetDailyStats", suite.context, "2025-03-10").Return(nil, nil)
	suite.orderRepo.On("SalesBetween", suite.context, day, day.AddDate(0, 0, 1)).
		Return(0, 0.0, errors.New("connection refused"))

	_, err := suite.service.DailyStats(suite.context, asOf)
	assert.ErrorIs(suite.T(), err, common.ErrStorageUnavailable)
}

func (suite *AnalyticsServiceTestSuite) TestWeeklySales_ZeroFillsMissingDays() {
	asOf := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	first := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	// Only two days in the window had orders.
	suite.orderRepo.On("SalesByDay", suite.context, first, end).Return([]repositories.DaySales{
		{Day: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Sales: 50.00},
		{Day: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), Sales: 30.25},
	}, nil)

	points, err := suite.service.WeeklySales(suite.context, asOf)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), points, 7)

	expected := []models.SalesPoint{
		{Date: "2025-03-04", Sales: 0},
		{Date: "2025-03-05", Sales: 50.00},
		{Date: "2025-03-06", Sales: 0},
		{Date: "2025-03-07", Sales: 0},
		{Date: "2025-03-08", Sales: 30.25},
		{Date: "2025-03-09", Sales: 0},
		{Date: "2025-03-10", Sales: 0},
	}
	assert.Equal(suite.T(), expected, points)
}

func (suite *AnalyticsServiceTestSuite) TestWeeklySales_AllDaysEmpty() {
	asOf := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	first := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	suite.orderRepo.On("SalesByDay", suite.context, first, end).Return([]repositories.DaySales{}, nil)

	points, err := suite.service.WeeklySales(suite.context, asOf)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), points, 7)
	for i, p := range points {
		assert.Equal(suite.T(), 0.0, p.Sales, "day %d", i)
	}
	assert.Equal(suite.T(), "2025-03-04", points[0].Date)
	assert.Equal(suite.T(), "2025-03-10", points[6].Date)
}

func (suite *AnalyticsServiceTestSuite) TestPopularDishes_DefaultLimit() {
	suite.itemRepo.On("PopularDishes", suite.context, DefaultPopularLimit).
		Return([]models.DishCount{{Name: "Margherita", Count: 12}}, nil)

	dishes, err := suite.service.PopularDishes(suite.context, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), dishes, 1)
	suite.itemRepo.AssertCalled(suite.T(), "PopularDishes", suite.context, 5)
}

func (suite *AnalyticsServiceTestSuite) TestPopularDishes_ExplicitLimit() {
	suite.itemRepo.On("PopularDishes", suite.context, 3).
		Return([]models.DishCount{
			{Name: "Margherita", Count: 12},
			{Name: "Carbonara", Count: 8},
			{Name: "Tiramisu", Count: 8},
		}, nil)

	dishes, err := suite.service.PopularDishes(suite.context, 3)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), dishes, 3)
}

func (suite *AnalyticsServiceTestSuite) TestPopularDishes_NoOrdersReturnsEmptySlice() {
	suite.itemRepo.On("PopularDishes", suite.context, DefaultPopularLimit).
		Return(nil, nil)

	dishes, err := suite.service.PopularDishes(suite.context, 0)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), dishes)
	assert.Empty(suite.T(), dishes)
}

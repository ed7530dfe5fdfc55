package analytics

import (
	"context"
	"log"
	"time"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

const (
	// DefaultPopularLimit is how many dishes the popularity ranking returns
	// when the caller does not ask for a specific count.
	DefaultPopularLimit = 5

	dailyStatsTTL = time.Minute
)

// AnalyticsService computes read-only dashboard views over order history.
// It never mutates stored data; failures are always the record store's.
type AnalyticsService struct {
	orderRepo repositories.OrderRepository
	itemRepo  repositories.OrderItemRepository
	tableRepo repositories.TableRepository
	staffRepo repositories.StaffRepository
	cacheSvc  caching.CacheService
}

func NewAnalyticsService(orderRepo repositories.OrderRepository, itemRepo repositories.OrderItemRepository,
	tableRepo repositories.TableRepository, staffRepo repositories.StaffRepository,
	cacheSvc caching.CacheService) *AnalyticsService {
	return &AnalyticsService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		tableRepo: tableRepo,
		staffRepo: staffRepo,
		cacheSvc:  cacheSvc,
	}
}

// dayStart truncates t to midnight in t's own location. Day windows are
// half-open: [midnight, next midnight).
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DailyStats returns the dashboard headline numbers for asOf's calendar day.
// Table and staff counts are point-in-time, not windowed.
func (a *AnalyticsService) DailyStats(ctx context.Context, asOf time.Time) (*models.DailyStats, error) {
	day := dayStart(asOf)
	dayKey := day.Format("2006-01-02")

	cached, err := a.cacheSvc.GetDailyStats(ctx, dayKey)
	if err != nil {
		log.Printf("Dashboard cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	ordersToday, salesToday, err := a.orderRepo.SalesBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, common.StorageError("aggregate daily sales", err)
	}

	totalTables, tablesOccupied, err := a.tableRepo.CountByStatus(ctx)
	if err != nil {
		return nil, common.StorageError("count tables", err)
	}

	totalStaff, activeStaff, err := a.staffRepo.CountActive(ctx)
	if err != nil {
		return nil, common.StorageError("count staff", err)
	}

	// Guard the average against a zero-order day.
	averageOrderValue := 0.0
	if ordersToday > 0 {
		averageOrderValue = salesToday / float64(ordersToday)
	}

	stats := &models.DailyStats{
		SalesToday:        salesToday,
		OrdersToday:       ordersToday,
		AverageOrderValue: averageOrderValue,
		TablesOccupied:    tablesOccupied,
		TotalTables:       totalTables,
		ActiveStaff:       activeStaff,
		TotalStaff:        totalStaff,
	}

	if err := a.cacheSvc.SetDailyStats(ctx, dayKey, stats, dailyStatsTTL); err != nil {
		log.Printf("Dashboard cache write failed: %v", err)
	}

	return stats, nil
}

// WeeklySales returns one point per calendar day for the 7 days ending at
// asOf inclusive, ascending. The grouped query omits days without orders, so
// the series is zero-filled here rather than left with holes.
func (a *AnalyticsService) WeeklySales(ctx context.Context, asOf time.Time) ([]models.SalesPoint, error) {
	first := dayStart(asOf).AddDate(0, 0, -6)
	end := dayStart(asOf).AddDate(0, 0, 1)

	grouped, err := a.orderRepo.SalesByDay(ctx, first, end)
	if err != nil {
		return nil, common.StorageError("aggregate weekly sales", err)
	}

	salesByDay := make(map[string]float64, len(grouped))
	for _, row := range grouped {
		salesByDay[row.Day.Format("2006-01-02")] = row.Sales
	}

	points := make([]models.SalesPoint, 0, 7)
	for i := 0; i < 7; i++ {
		date := first.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, models.SalesPoint{
			Date:  date,
			Sales: salesByDay[date],
		})
	}

	return points, nil
}

// PopularDishes ranks menu items by total quantity ordered across all time,
// descending with name as the tie-break; dishes never ordered are omitted.
func (a *AnalyticsService) PopularDishes(ctx context.Context, limit int) ([]models.DishCount, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	dishes, err := a.itemRepo.PopularDishes(ctx, limit)
	if err != nil {
		return nil, common.StorageError("rank popular dishes", err)
	}
	if dishes == nil {
		dishes = []models.DishCount{}
	}
	return dishes, nil
}

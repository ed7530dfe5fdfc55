package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tableside/internal/analytics"
	"tableside/internal/common"
)

// DashboardHandlers serves the aggregated back-office metrics
type DashboardHandlers struct {
	analyticsSvc *analytics.AnalyticsService
}

func NewDashboardHandlers(analyticsSvc *analytics.AnalyticsService) *DashboardHandlers {
	return &DashboardHandlers{analyticsSvc: analyticsSvc}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	asOf := time.Now()
	if dateParam := c.QueryParam("date"); dateParam != "" {
		parsed, err := common.ValidateDateFormat(dateParam, "date")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		asOf = parsed
	}

	stats, err := h.analyticsSvc.DailyStats(ctx, asOf)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetWeeklySales handles GET /dashboard/weekly-sales
func (h *DashboardHandlers) GetWeeklySales(c echo.Context) error {
	ctx := c.Request().Context()

	sales, err := h.analyticsSvc.WeeklySales(ctx, time.Now())
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

// GetPopularDishes handles GET /dashboard/popular-dishes
func (h *DashboardHandlers) GetPopularDishes(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	dishes, err := h.analyticsSvc.PopularDishes(ctx, limit)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dishes)
}

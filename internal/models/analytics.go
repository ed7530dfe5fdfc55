package models

// DailyStats is the dashboard headline view for one calendar day.
// Field names follow the dashboard API contract.
type DailyStats struct {
	SalesToday        float64 `json:"salesToday"`
	OrdersToday       int     `json:"ordersToday"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	TablesOccupied    int     `json:"tablesOccupied"`
	TotalTables       int     `json:"totalTables"`
	ActiveStaff       int     `json:"activeStaff"`
	TotalStaff        int     `json:"totalStaff"`
}

// SalesPoint is one day of the weekly sales series. Date is YYYY-MM-DD.
type SalesPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

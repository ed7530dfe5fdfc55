package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tableside/internal/models"
)

// DaySales is one grouped row of the weekly sales query. Days without orders
// do not appear here; the analytics service zero-fills them.
type DaySales struct {
	Day   time.Time
	Sales float64
}

type OrderRepository interface {
	// Create inserts the order and its pre-attached items in one transaction.
	// Store-assigned identifiers and timestamps are written back into the models.
	Create(ctx context.Context, order *models.Order, items []*models.OrderItem) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListByStatus(ctx context.Context, status models.OrderStatus, limit, offset int) ([]*models.Order, error)
	// UpdateStatus applies the transition only if the stored status still
	// equals from. Returns false when no row matched, which callers resolve
	// into NotFound or Conflict by re-reading.
	UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error)
	SalesBetween(ctx context.Context, start, end time.Time) (int, float64, error)
	SalesByDay(ctx context.Context, start, end time.Time) ([]DaySales, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (table_id, customer_id, staff_id, status, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query, order.TableID, order.CustomerID, order.StaffID, order.Status, order.Total, order.Notes).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	for _, item := range items {
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, itemQuery, item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.Notes).
			Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, table_id, customer_id, staff_id, status, total, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.TableID, &order.CustomerID, &order.StaffID,
		&order.Status, &order.Total, &order.Notes, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, table_id, customer_id, staff_id, status, total, notes, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepo) ListByStatus(ctx context.Context, status models.OrderStatus, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, table_id, customer_id, staff_id, status, total, notes, created_at, updated_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.TableID, &order.CustomerID, &order.StaffID,
			&order.Status, &order.Total, &order.Notes, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepo) SalesBetween(ctx context.Context, start, end time.Time) (int, float64, error) {
	var count int
	var total float64
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`
	err := r.db.QueryRow(ctx, query, start, end).Scan(&count, &total)
	if err != nil {
		return 0, 0, err
	}
	return count, total, nil
}

func (r *orderRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]DaySales, error) {
	query := `
		SELECT DATE(created_at) AS day, COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []DaySales
	for rows.Next() {
		var ds DaySales
		if err := rows.Scan(&ds.Day, &ds.Sales); err != nil {
			return nil, err
		}
		sales = append(sales, ds)
	}
	return sales, rows.Err()
}

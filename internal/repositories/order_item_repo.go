package repositories

import (
	"context"

	"tableside/internal/models"
)

type OrderItemRepository interface {
	// Add inserts the item and recomputes the owning order's total from its
	// line items inside the same transaction.
	Add(ctx context.Context, item *models.OrderItem) error
	ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error)
	// PopularDishes sums ordered quantity per menu item across all time,
	// descending, ties broken by name ascending, truncated to limit.
	PopularDishes(ctx context.Context, limit int) ([]models.DishCount, error)
}

type orderItemRepo struct {
	db DB
}

func NewOrderItemRepo(db DB) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) Add(ctx context.Context, item *models.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query, item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.Notes).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return err
	}

	totalQuery := `
		UPDATE orders
		SET total = (SELECT COALESCE(SUM(quantity * unit_price), 0) FROM order_items WHERE order_id = $1),
		    updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, totalQuery, item.OrderID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, quantity, unit_price, notes, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity,
			&item.UnitPrice, &item.Notes, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderItemRepo) PopularDishes(ctx context.Context, limit int) ([]models.DishCount, error) {
	query := `
		SELECT m.name, SUM(oi.quantity)::int AS ordered
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		GROUP BY m.name
		ORDER BY ordered DESC, m.name ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []models.DishCount
	for rows.Next() {
		var dc models.DishCount
		if err := rows.Scan(&dc.Name, &dc.Count); err != nil {
			return nil, err
		}
		dishes = append(dishes, dc)
	}
	return dishes, rows.Err()
}

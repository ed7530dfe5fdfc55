package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tableside/internal/models"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *models.Inventory) error
	GetByID(ctx context.Context, id int64) (*models.Inventory, error)
	List(ctx context.Context) ([]*models.Inventory, error)
	Update(ctx context.Context, item *models.Inventory) error
	Delete(ctx context.Context, id int64) error
	ListLowStock(ctx context.Context) ([]*models.Inventory, error)
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepo(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, item_name, category, current_stock, min_stock, unit, last_updated, created_at`

func (r *inventoryRepo) Create(ctx context.Context, item *models.Inventory) error {
	query := `
		INSERT INTO inventory (item_name, category, current_stock, min_stock, unit, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, last_updated, created_at
	`
	return r.db.QueryRow(ctx, query, item.ItemName, item.Category, item.CurrentStock,
		item.MinStock, item.Unit).Scan(&item.ID, &item.LastUpdated, &item.CreatedAt)
}

func (r *inventoryRepo) GetByID(ctx context.Context, id int64) (*models.Inventory, error) {
	item := &models.Inventory{}
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.ItemName, &item.Category,
		&item.CurrentStock, &item.MinStock, &item.Unit, &item.LastUpdated, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryRepo) List(ctx context.Context) ([]*models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory ORDER BY category ASC, item_name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInventory(rows)
}

func (r *inventoryRepo) Update(ctx context.Context, item *models.Inventory) error {
	query := `
		UPDATE inventory
		SET item_name = $1, category = $2, current_stock = $3, min_stock = $4, unit = $5, last_updated = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, item.ItemName, item.Category, item.CurrentStock,
		item.MinStock, item.Unit, item.ID)
	return err
}

func (r *inventoryRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM inventory WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]*models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE current_stock <= min_stock ORDER BY category ASC, item_name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInventory(rows)
}

func scanInventory(rows pgx.Rows) ([]*models.Inventory, error) {
	var items []*models.Inventory
	for rows.Next() {
		item := &models.Inventory{}
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Category, &item.CurrentStock,
			&item.MinStock, &item.Unit, &item.LastUpdated, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

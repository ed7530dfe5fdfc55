package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tableside/internal/models"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id int64) (*models.Table, error)
	List(ctx context.Context) ([]*models.Table, error)
	UpdateStatus(ctx context.Context, id int64, status models.TableStatus, currentOrderID *int64) (*models.Table, error)
	// ReleaseByOrder frees whichever table currently holds orderID.
	ReleaseByOrder(ctx context.Context, orderID int64) error
	// CountByStatus returns the total table count and the occupied count.
	CountByStatus(ctx context.Context) (int, int, error)
}

type tableRepo struct {
	db DB
}

func NewTableRepo(db DB) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (number, capacity, status, current_order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, table.Number, table.Capacity, table.Status, table.CurrentOrderID).
		Scan(&table.ID, &table.CreatedAt, &table.UpdatedAt)
}

func (r *tableRepo) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	table := &models.Table{}
	query := `
		SELECT id, number, capacity, status, current_order_id, created_at, updated_at
		FROM tables
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&table.ID, &table.Number, &table.Capacity,
		&table.Status, &table.CurrentOrderID, &table.CreatedAt, &table.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) List(ctx context.Context) ([]*models.Table, error) {
	query := `
		SELECT id, number, capacity, status, current_order_id, created_at, updated_at
		FROM tables
		ORDER BY number ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.Number, &table.Capacity, &table.Status,
			&table.CurrentOrderID, &table.CreatedAt, &table.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepo) UpdateStatus(ctx context.Context, id int64, status models.TableStatus, currentOrderID *int64) (*models.Table, error) {
	table := &models.Table{}
	query := `
		UPDATE tables
		SET status = $1, current_order_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, number, capacity, status, current_order_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, status, currentOrderID, id).Scan(&table.ID, &table.Number,
		&table.Capacity, &table.Status, &table.CurrentOrderID, &table.CreatedAt, &table.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) ReleaseByOrder(ctx context.Context, orderID int64) error {
	query := `
		UPDATE tables
		SET status = 'available', current_order_id = NULL, updated_at = NOW()
		WHERE current_order_id = $1
	`
	_, err := r.db.Exec(ctx, query, orderID)
	return err
}

func (r *tableRepo) CountByStatus(ctx context.Context) (int, int, error) {
	var total, occupied int
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'occupied')
		FROM tables
	`
	err := r.db.QueryRow(ctx, query).Scan(&total, &occupied)
	if err != nil {
		return 0, 0, err
	}
	return total, occupied, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tableside/internal/models"
)

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	List(ctx context.Context) ([]*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type menuRepo struct {
	db DB
}

func NewMenuRepo(db DB) MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, description, price, category, image_url, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.Available).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuRepo) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `
		SELECT id, name, description, price, category, image_url, available, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Category, &item.ImageURL, &item.Available, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuRepo) List(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, image_url, available, created_at, updated_at
		FROM menu_items
		ORDER BY category ASC, name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.ImageURL, &item.Available, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuRepo) Update(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5, available = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Description, item.Price, item.Category,
		item.ImageURL, item.Available, item.ID)
	return err
}

func (r *menuRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

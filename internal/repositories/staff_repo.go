package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tableside/internal/models"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	List(ctx context.Context) ([]*models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountActive returns the total staff count and the active count.
	CountActive(ctx context.Context) (int, int, error)
}

type staffRepo struct {
	db DB
}

func NewStaffRepo(db DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *models.Staff) error {
	query := `
		INSERT INTO staff (id, name, email, phone, role, shift, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, staff.ID, staff.Name, staff.Email, staff.Phone,
		staff.Role, staff.Shift, staff.IsActive).Scan(&staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	staff := &models.Staff{}
	query := `
		SELECT id, name, email, phone, role, shift, is_active, created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&staff.ID, &staff.Name, &staff.Email, &staff.Phone,
		&staff.Role, &staff.Shift, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepo) List(ctx context.Context) ([]*models.Staff, error) {
	query := `
		SELECT id, name, email, phone, role, shift, is_active, created_at, updated_at
		FROM staff
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Staff
	for rows.Next() {
		staff := &models.Staff{}
		if err := rows.Scan(&staff.ID, &staff.Name, &staff.Email, &staff.Phone, &staff.Role,
			&staff.Shift, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, staff)
	}
	return members, rows.Err()
}

func (r *staffRepo) Update(ctx context.Context, staff *models.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, email = $2, phone = $3, role = $4, shift = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, staff.Name, staff.Email, staff.Phone, staff.Role,
		staff.Shift, staff.IsActive, staff.ID)
	return err
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM staff WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *staffRepo) CountActive(ctx context.Context) (int, int, error) {
	var total, active int
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM staff
	`
	err := r.db.QueryRow(ctx, query).Scan(&total, &active)
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

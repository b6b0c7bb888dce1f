package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avlodventures/eventbot/internal/models"
)

// Categories persists event categories. "Online" and "Offline" are
// seeded by migration; admins may add more.
type Categories struct {
	db *sqlx.DB
}

// NewCategories constructs the categories repository.
func NewCategories(db *sqlx.DB) *Categories {
	return &Categories{db: db}
}

// Create inserts a category, returning ErrDuplicateCategory when the
// unique name constraint rejects it.
func (r *Categories) Create(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := r.db.GetContext(ctx, &c,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

// List returns all categories ordered by id.
func (r *Categories) List(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.db.SelectContext(ctx, &cats,
		`SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetByID returns a category by id, or ErrNotFound.
func (r *Categories) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.GetContext(ctx, &c,
		`SELECT id, name FROM categories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

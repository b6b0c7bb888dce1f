package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avlodventures/eventbot/internal/models"
)

// Users persists bot users keyed by Telegram user id.
type Users struct {
	db *sqlx.DB
}

// NewUsers constructs the users repository.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Upsert creates the user row or replaces its profile fields.
func (r *Users) Upsert(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, full_name, phone, language)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone     = EXCLUDED.phone,
			language  = EXCLUDED.language`,
		u.ID, u.FullName, u.Phone, u.Language,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// Get returns a user by Telegram id, or ErrNotFound.
func (r *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u,
		`SELECT user_id, full_name, phone, language FROM users WHERE user_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdateName sets the user's display name.
func (r *Users) UpdateName(ctx context.Context, id int64, name string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name = $1 WHERE user_id = $2`, name, id); err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

// UpdatePhone sets the user's phone number.
func (r *Users) UpdatePhone(ctx context.Context, id int64, phone string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET phone = $1 WHERE user_id = $2`, phone, id); err != nil {
		return fmt.Errorf("update user phone: %w", err)
	}
	return nil
}

// UpdateLanguage sets the user's interface language.
func (r *Users) UpdateLanguage(ctx context.Context, id int64, language string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET language = $1 WHERE user_id = $2`, language, id); err != nil {
		return fmt.Errorf("update user language: %w", err)
	}
	return nil
}

// ListAll returns every user row, for localized broadcasts.
func (r *Users) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.SelectContext(ctx, &users,
		`SELECT user_id, full_name, phone, language FROM users`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

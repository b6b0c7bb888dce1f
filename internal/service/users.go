// Package service holds the application logic between the Telegram
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avlodventures/eventbot/internal/logger"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
)

// UserStore is the persistence surface Users needs.
type UserStore interface {
	Upsert(ctx context.Context, u models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdatePhone(ctx context.Context, id int64, phone string) error
	UpdateLanguage(ctx context.Context, id int64, language string) error
	ListAll(ctx context.Context) ([]models.User, error)
}

// Users manages registration profiles.
type Users struct {
	store UserStore
}

// NewUsers constructs the user service.
func NewUsers(store UserStore) *Users {
	return &Users{store: store}
}

// Register persists a completed registration profile. Re-registering an
// existing user replaces the profile.
func (s *Users) Register(ctx context.Context, u models.User) error {
	if err := s.store.Upsert(ctx, u); err != nil {
		return err
	}
	logger.Info(ctx, "users", "user.registered",
		slog.Int64("user_id", u.ID),
		slog.String("language", u.Language),
	)
	return nil
}

// Profile returns the stored profile, or repository.ErrNotFound.
func (s *Users) Profile(ctx context.Context, id int64) (*models.User, error) {
	return s.store.Get(ctx, id)
}

// IsRegistered reports whether the user completed registration.
func (s *Users) IsRegistered(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Rename updates the display name.
func (s *Users) Rename(ctx context.Context, id int64, name string) error {
	if err := s.store.UpdateName(ctx, id, name); err != nil {
		return err
	}
	logger.Info(ctx, "users", "user.renamed", slog.Int64("user_id", id))
	return nil
}

// ChangePhone updates the contact phone.
func (s *Users) ChangePhone(ctx context.Context, id int64, phone string) error {
	if err := s.store.UpdatePhone(ctx, id, phone); err != nil {
		return err
	}
	logger.Info(ctx, "users", "user.phone_changed", slog.Int64("user_id", id))
	return nil
}

// ChangeLanguage updates the interface language.
func (s *Users) ChangeLanguage(ctx context.Context, id int64, language string) error {
	if err := s.store.UpdateLanguage(ctx, id, language); err != nil {
		return err
	}
	logger.Info(ctx, "users", "user.language_changed",
		slog.Int64("user_id", id),
		slog.String("language", language),
	)
	return nil
}

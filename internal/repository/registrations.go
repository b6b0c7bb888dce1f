package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avlodventures/eventbot/internal/models"
)

// Registrations persists reserved seats.
type Registrations struct {
	db *sqlx.DB
}

// NewRegistrations constructs the registrations repository.
func NewRegistrations(db *sqlx.DB) *Registrations {
	return &Registrations{db: db}
}

// Exists reports whether a (user, event) reservation already exists.
func (r *Registrations) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`SELECT id FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("registration exists: %w", err)
	}
	return true, nil
}

// CountByEvent returns the confirmed registration count for an event.
func (r *Registrations) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// Reserve books one seat atomically. The event row is locked for the
// duration of the transaction, so the capacity check and the insert are
// serialized across concurrent confirms: the count can never exceed
// max_participants when it is positive. Duplicate attempts are rejected
// by the UNIQUE(user_id, event_id) constraint.
func (r *Registrations) Reserve(ctx context.Context, userID, eventID int64) (reg *models.Registration, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reserve: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	err = tx.GetContext(ctx, &capacity,
		`SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock event: %w", err)
	}

	if capacity > 0 {
		var taken int
		if err = tx.GetContext(ctx, &taken,
			`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID); err != nil {
			return nil, fmt.Errorf("count seats: %w", err)
		}
		if taken >= capacity {
			err = ErrEventFull
			return nil, err
		}
	}

	var id int64
	err = tx.GetContext(ctx, &id,
		`INSERT INTO registrations (user_id, event_id) VALUES ($1, $2) RETURNING id`,
		userID, eventID)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrAlreadyRegistered
		} else {
			err = fmt.Errorf("insert registration: %w", err)
		}
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reserve: %w", err)
	}
	return &models.Registration{ID: id, UserID: userID, EventID: eventID}, nil
}

// ListAttendees returns contact data of everyone registered for an event.
func (r *Registrations) ListAttendees(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := r.db.SelectContext(ctx, &attendees, `
		SELECT u.user_id, u.full_name, u.phone
		FROM registrations r
		JOIN users u ON r.user_id = u.user_id
		WHERE r.event_id = $1
		ORDER BY r.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return attendees, nil
}

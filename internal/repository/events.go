package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avlodventures/eventbot/internal/models"
)

// EventField names a single editable event column.
type EventField string

const (
	FieldImage       EventField = "image_ref"
	FieldDescription EventField = "description"
	FieldTime        EventField = "time_label"
	FieldDate        EventField = "date_label"
	FieldCapacity    EventField = "max_participants"
	FieldLocation    EventField = "location"
)

var editableFields = map[EventField]struct{}{
	FieldImage:       {},
	FieldDescription: {},
	FieldTime:        {},
	FieldDate:        {},
	FieldCapacity:    {},
	FieldLocation:    {},
}

// Events persists promoted events.
type Events struct {
	db *sqlx.DB
}

// NewEvents constructs the events repository.
func NewEvents(db *sqlx.DB) *Events {
	return &Events{db: db}
}

// Create inserts an event and returns its id.
func (r *Events) Create(ctx context.Context, e models.Event) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO events (category_id, image_ref, description, time_label, date_label, max_participants, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.CategoryID, e.ImageRef, e.Description, e.TimeLabel, e.DateLabel, e.MaxParticipants, e.Location,
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// Get returns an event by id, or ErrNotFound.
func (r *Events) Get(ctx context.Context, id int64) (*models.Event, error) {
	var e models.Event
	err := r.db.GetContext(ctx, &e, `
		SELECT id, category_id, image_ref, description, time_label, date_label, max_participants, location
		FROM events WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// ListByCategory returns event cards for a category name, each carrying
// its confirmed registration count.
func (r *Events) ListByCategory(ctx context.Context, categoryName string) ([]models.EventCard, error) {
	var cards []models.EventCard
	err := r.db.SelectContext(ctx, &cards, `
		SELECT e.id, e.category_id, e.image_ref, e.description, e.time_label, e.date_label,
		       e.max_participants, e.location,
		       (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS registered
		FROM events e
		JOIN categories c ON e.category_id = c.id
		WHERE c.name = $1
		ORDER BY e.id`, categoryName)
	if err != nil {
		return nil, fmt.Errorf("list events by category: %w", err)
	}
	return cards, nil
}

// ListAll returns the short form of every event for admin/moderator menus.
func (r *Events) ListAll(ctx context.Context) ([]models.EventListItem, error) {
	var items []models.EventListItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT e.id, c.name AS category_name, e.description
		FROM events e
		JOIN categories c ON e.category_id = c.id
		ORDER BY e.id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

// UpdateField updates exactly one editable column of an event. The field
// name is checked against a whitelist before being interpolated.
func (r *Events) UpdateField(ctx context.Context, id int64, field EventField, value any) error {
	if _, ok := editableFields[field]; !ok {
		return fmt.Errorf("event field %q is not editable", field)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE events SET %s = $1 WHERE id = $2`, field), value, id)
	if err != nil {
		return fmt.Errorf("update event %s: %w", field, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event; its registrations go with it (ON DELETE CASCADE).
func (r *Events) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

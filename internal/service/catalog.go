package service

import (
	"context"
	"log/slog"

	"github.com/avlodventures/eventbot/internal/logger"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
)

// CategoryStore is the persistence surface for categories.
type CategoryStore interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
}

// EventStore is the persistence surface for events.
type EventStore interface {
	Create(ctx context.Context, e models.Event) (int64, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	ListByCategory(ctx context.Context, categoryName string) ([]models.EventCard, error)
	ListAll(ctx context.Context) ([]models.EventListItem, error)
	UpdateField(ctx context.Context, id int64, field repository.EventField, value any) error
	Delete(ctx context.Context, id int64) error
}

// Catalog manages categories and events for both the public browse flow
// and the admin wizards.
type Catalog struct {
	categories CategoryStore
	events     EventStore
}

// NewCatalog constructs the catalog service.
func NewCatalog(categories CategoryStore, events EventStore) *Catalog {
	return &Catalog{categories: categories, events: events}
}

// CreateCategory adds a category; repository.ErrDuplicateCategory passes
// through so the admin wizard can re-prompt.
func (s *Catalog) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	cat, err := s.categories.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "catalog", "category.created",
		slog.Int64("category_id", cat.ID),
		slog.String("name", logger.SanitizeLimit(cat.Name, 64)),
	)
	return cat, nil
}

// Categories lists all categories.
func (s *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// Category returns a category by id.
func (s *Catalog) Category(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// CreateEvent persists a new event assembled by the admin wizard.
func (s *Catalog) CreateEvent(ctx context.Context, e models.Event) (int64, error) {
	id, err := s.events.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "catalog", "event.created",
		slog.Int64("event_id", id),
		slog.Int64("category_id", e.CategoryID),
		slog.Int("max_participants", e.MaxParticipants),
	)
	return id, nil
}

// Event returns an event by id.
func (s *Catalog) Event(ctx context.Context, id int64) (*models.Event, error) {
	return s.events.Get(ctx, id)
}

// EventsInCategory lists event cards for the browse flow.
func (s *Catalog) EventsInCategory(ctx context.Context, categoryName string) ([]models.EventCard, error) {
	return s.events.ListByCategory(ctx, categoryName)
}

// AllEvents lists the short form of every event.
func (s *Catalog) AllEvents(ctx context.Context) ([]models.EventListItem, error) {
	return s.events.ListAll(ctx)
}

// UpdateEventField replaces one editable field of an event.
func (s *Catalog) UpdateEventField(ctx context.Context, id int64, field repository.EventField, value any) error {
	if err := s.events.UpdateField(ctx, id, field, value); err != nil {
		return err
	}
	logger.Info(ctx, "catalog", "event.updated",
		slog.Int64("event_id", id),
		slog.String("field", string(field)),
	)
	return nil
}

// DeleteEvent removes an event and, via cascade, its registrations.
func (s *Catalog) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "catalog", "event.deleted", slog.Int64("event_id", id))
	return nil
}

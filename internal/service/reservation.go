package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/avlodventures/eventbot/internal/logger"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/sheets"
)

// ReservationStore is the persistence surface for seat reservations.
type ReservationStore interface {
	Exists(ctx context.Context, userID, eventID int64) (bool, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	Reserve(ctx context.Context, userID, eventID int64) (*models.Registration, error)
	ListAttendees(ctx context.Context, eventID int64) ([]models.Attendee, error)
}

// EventGetter is the minimal event lookup Reservations needs.
type EventGetter interface {
	Get(ctx context.Context, id int64) (*models.Event, error)
}

// AttendeeExporter receives confirmed registrations, best effort.
// *sheets.Exporter satisfies it; nil disables export.
type AttendeeExporter interface {
	Enabled() bool
	Append(ctx context.Context, eventTitle string, row sheets.Row) error
}

// Reservations implements the two-step booking flow: Begin validates and
// shows the confirmation card, Confirm atomically takes the seat.
type Reservations struct {
	store    ReservationStore
	events   EventGetter
	exporter AttendeeExporter
}

// NewReservations constructs the reservation service. exporter may be nil.
func NewReservations(store ReservationStore, events EventGetter, exporter AttendeeExporter) *Reservations {
	return &Reservations{store: store, events: events, exporter: exporter}
}

// Begin checks that the user can still book the event and returns it for
// the confirmation card. The checks here are advisory; Confirm repeats
// them under a row lock, so a seat taken between the two steps is still
// refused.
func (s *Reservations) Begin(ctx context.Context, userID, eventID int64) (*models.Event, error) {
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrAlreadyRegistered
	}

	if ev.MaxParticipants > 0 {
		taken, err := s.store.CountByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if taken >= ev.MaxParticipants {
			return nil, repository.ErrEventFull
		}
	}

	return ev, nil
}

// Confirm takes the seat. Returns repository.ErrEventFull or
// repository.ErrAlreadyRegistered when the state changed since Begin.
// The spreadsheet export never fails the booking.
func (s *Reservations) Confirm(ctx context.Context, user models.User, eventID int64) (*models.Registration, error) {
	reg, err := s.store.Reserve(ctx, user.ID, eventID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "registrations", "seat.reserved",
		slog.Int64("registration_id", reg.ID),
		slog.Int64("event_id", eventID),
		slog.Int64("user_id", user.ID),
	)

	if s.exporter != nil && s.exporter.Enabled() {
		title := ""
		if ev, evErr := s.events.Get(ctx, eventID); evErr == nil {
			title = ev.Description
		}
		row := sheets.Row{FullName: user.FullName, Phone: user.Phone}
		if expErr := s.exporter.Append(ctx, title, row); expErr != nil {
			logger.Warn(ctx, "registrations", "export.failed",
				slog.Int64("event_id", eventID),
				slog.String("err", logger.SanitizeLimit(expErr.Error(), 256)),
			)
		}
	}

	return reg, nil
}

// Attendees returns everyone registered for an event.
func (s *Reservations) Attendees(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	return s.store.ListAttendees(ctx, eventID)
}

// FindAttendee looks up an attendee of an event by phone number.
// Comparison is on digits only and matches when either number contains
// the other, so a query without the country prefix still hits.
func (s *Reservations) FindAttendee(ctx context.Context, eventID int64, phone string) (*models.Attendee, error) {
	attendees, err := s.store.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	want := NormalizePhone(phone)
	if want == "" {
		return nil, repository.ErrNotFound
	}
	for i := range attendees {
		stored := NormalizePhone(attendees[i].Phone)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, want) || strings.Contains(want, stored) {
			return &attendees[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// NormalizePhone keeps digits only, so "+998 90 123 45 67" and
// "998901234567" compare equal.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

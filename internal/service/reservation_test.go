package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/sheets"
)

type fakeReservationStore struct {
	mu       sync.Mutex
	capacity int
	seats    map[int64]map[int64]int64 // eventID -> userID -> regID
	nextID   int64

	existsErr error
}

func newFakeStore(capacity int) *fakeReservationStore {
	return &fakeReservationStore{
		capacity: capacity,
		seats:    map[int64]map[int64]int64{},
	}
}

func (f *fakeReservationStore) Exists(_ context.Context, userID, eventID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seats[eventID][userID]
	return ok, nil
}

func (f *fakeReservationStore) CountByEvent(_ context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seats[eventID]), nil
}

func (f *fakeReservationStore) Reserve(_ context.Context, userID, eventID int64) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byUser := f.seats[eventID]
	if byUser == nil {
		byUser = map[int64]int64{}
		f.seats[eventID] = byUser
	}
	if _, ok := byUser[userID]; ok {
		return nil, repository.ErrAlreadyRegistered
	}
	if f.capacity > 0 && len(byUser) >= f.capacity {
		return nil, repository.ErrEventFull
	}
	f.nextID++
	byUser[userID] = f.nextID
	return &models.Registration{ID: f.nextID, UserID: userID, EventID: eventID}, nil
}

func (f *fakeReservationStore) ListAttendees(_ context.Context, eventID int64) ([]models.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Attendee
	for userID := range f.seats[eventID] {
		out = append(out, models.Attendee{UserID: userID, FullName: "n", Phone: "+998 90 123 45 67"})
	}
	return out, nil
}

type fakeEventGetter struct {
	event *models.Event
	err   error
}

func (f *fakeEventGetter) Get(context.Context, int64) (*models.Event, error) {
	return f.event, f.err
}

type recordingExporter struct {
	mu   sync.Mutex
	rows []sheets.Row
	err  error
}

func (r *recordingExporter) Enabled() bool { return true }

func (r *recordingExporter) Append(_ context.Context, _ string, row sheets.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, row)
	return r.err
}

func TestBeginRejectsFullEvent(t *testing.T) {
	store := newFakeStore(1)
	if _, err := store.Reserve(context.Background(), 1, 10); err != nil {
		t.Fatalf("seed reserve: %v", err)
	}
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10, MaxParticipants: 1}}, nil)

	_, err := svc.Begin(context.Background(), 2, 10)
	if !errors.Is(err, repository.ErrEventFull) {
		t.Errorf("Begin = %v, want ErrEventFull", err)
	}
}

func TestBeginRejectsDuplicate(t *testing.T) {
	store := newFakeStore(0)
	if _, err := store.Reserve(context.Background(), 1, 10); err != nil {
		t.Fatalf("seed reserve: %v", err)
	}
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10}}, nil)

	_, err := svc.Begin(context.Background(), 1, 10)
	if !errors.Is(err, repository.ErrAlreadyRegistered) {
		t.Errorf("Begin = %v, want ErrAlreadyRegistered", err)
	}
}

func TestBeginUnlimitedCapacity(t *testing.T) {
	store := newFakeStore(0)
	for i := int64(1); i <= 50; i++ {
		if _, err := store.Reserve(context.Background(), i, 10); err != nil {
			t.Fatalf("seed reserve: %v", err)
		}
	}
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10, MaxParticipants: 0}}, nil)

	if _, err := svc.Begin(context.Background(), 99, 10); err != nil {
		t.Errorf("Begin with unlimited capacity: %v", err)
	}
}

func TestConfirmExportsAttendee(t *testing.T) {
	store := newFakeStore(0)
	exp := &recordingExporter{}
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10, Description: "Meetup"}}, exp)

	user := models.User{ID: 1, FullName: "Ada", Phone: "+1 555"}
	reg, err := svc.Confirm(context.Background(), user, 10)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if reg.EventID != 10 || reg.UserID != 1 {
		t.Errorf("registration = %+v", reg)
	}
	if len(exp.rows) != 1 || exp.rows[0].FullName != "Ada" {
		t.Errorf("exported rows = %+v", exp.rows)
	}
}

func TestConfirmSurvivesExportFailure(t *testing.T) {
	store := newFakeStore(0)
	exp := &recordingExporter{err: errors.New("quota exceeded")}
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10}}, exp)

	if _, err := svc.Confirm(context.Background(), models.User{ID: 1}, 10); err != nil {
		t.Errorf("Confirm should not fail on export error: %v", err)
	}
}

func TestConcurrentConfirmSingleSeat(t *testing.T) {
	store := newFakeStore(1)
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10, MaxParticipants: 1}}, nil)

	const users = 20
	var wg sync.WaitGroup
	results := make(chan error, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := svc.Confirm(context.Background(), models.User{ID: userID}, 10)
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	won, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, repository.ErrEventFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 || full != users-1 {
		t.Errorf("won=%d full=%d, want 1/%d", won, full, users-1)
	}
}

func TestFindAttendeeNormalizesPhone(t *testing.T) {
	store := newFakeStore(0)
	if _, err := store.Reserve(context.Background(), 1, 10); err != nil {
		t.Fatalf("seed reserve: %v", err)
	}
	svc := NewReservations(store, &fakeEventGetter{event: &models.Event{ID: 10}}, nil)

	got, err := svc.FindAttendee(context.Background(), 10, "998901234567")
	if err != nil {
		t.Fatalf("FindAttendee: %v", err)
	}
	if got.UserID != 1 {
		t.Errorf("attendee = %+v", got)
	}

	// A query without the country prefix still matches.
	if _, err := svc.FindAttendee(context.Background(), 10, "90 123 45 67"); err != nil {
		t.Errorf("partial match: %v", err)
	}

	if _, err := svc.FindAttendee(context.Background(), 10, "+0 000"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("miss = %v, want ErrNotFound", err)
	}
	if _, err := svc.FindAttendee(context.Background(), 10, " + "); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("empty query = %v, want ErrNotFound", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+998 90 123 45 67": "998901234567",
		"998901234567":      "998901234567",
		"":                  "",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

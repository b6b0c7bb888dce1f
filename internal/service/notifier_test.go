package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/models"
	tgsender "github.com/avlodventures/eventbot/internal/telegram/sender"
)

type fakeUserStore struct {
	users []models.User
	err   error
}

func (f *fakeUserStore) Upsert(context.Context, models.User) error           { return nil }
func (f *fakeUserStore) Get(context.Context, int64) (*models.User, error)    { return nil, nil }
func (f *fakeUserStore) UpdateName(context.Context, int64, string) error     { return nil }
func (f *fakeUserStore) UpdatePhone(context.Context, int64, string) error    { return nil }
func (f *fakeUserStore) UpdateLanguage(context.Context, int64, string) error { return nil }
func (f *fakeUserStore) ListAll(context.Context) ([]models.User, error)      { return f.users, f.err }

type fakeSender struct {
	mu   sync.Mutex
	sent []tele.Recipient
	fail map[int64]bool
}

func (f *fakeSender) Send(to tele.Recipient, _ any, _ ...any) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := to.(tele.ChatID); ok && f.fail[int64(id)] {
		return nil, errors.New("blocked by user")
	}
	f.sent = append(f.sent, to)
	return &tele.Message{}, nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func testDispatcher() *tgsender.Dispatcher {
	return tgsender.NewDispatcher(tgsender.Options{
		QueueSize:    64,
		Workers:      2,
		MaxRetries:   0,
		RetryBackoff: time.Millisecond,
		MaxDuration:  time.Second,
	})
}

func TestBroadcastReachesAllUsers(t *testing.T) {
	users := &fakeUserStore{users: []models.User{
		{ID: 1, Language: "ru"},
		{ID: 2, Language: "uz"},
		{ID: 3, Language: "en"},
	}}
	sender := &fakeSender{}
	d := testDispatcher()
	n := NewNotifier(users, d)
	n.SetSender(sender)

	enqueued, err := n.Broadcast(context.Background(), "event.announce", func(u models.User) (any, []any) {
		return "hello " + u.Language, nil
	})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if enqueued != 3 {
		t.Errorf("enqueued = %d, want 3", enqueued)
	}

	d.Close()
	if got := sender.count(); got != 3 {
		t.Errorf("sent = %d, want 3", got)
	}
}

func TestBroadcastSkipsNilPayload(t *testing.T) {
	users := &fakeUserStore{users: []models.User{{ID: 1}, {ID: 2}}}
	sender := &fakeSender{}
	d := testDispatcher()
	n := NewNotifier(users, d)
	n.SetSender(sender)

	enqueued, err := n.Broadcast(context.Background(), "event.announce", func(u models.User) (any, []any) {
		if u.ID == 2 {
			return nil, nil
		}
		return "hi", nil
	})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if enqueued != 1 {
		t.Errorf("enqueued = %d, want 1", enqueued)
	}
	d.Close()
}

func TestBroadcastIsolatesFailures(t *testing.T) {
	users := &fakeUserStore{users: []models.User{{ID: 1}, {ID: 2}, {ID: 3}}}
	sender := &fakeSender{fail: map[int64]bool{2: true}}
	d := testDispatcher()
	n := NewNotifier(users, d)
	n.SetSender(sender)

	if _, err := n.Broadcast(context.Background(), "event.announce", func(models.User) (any, []any) {
		return "hi", nil
	}); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	d.Close()

	if got := sender.count(); got != 2 {
		t.Errorf("sent = %d, want 2", got)
	}
	if d.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", d.ErrorCount())
	}
}

func TestBroadcastStoreError(t *testing.T) {
	users := &fakeUserStore{err: errors.New("db down")}
	d := testDispatcher()
	defer d.Close()
	n := NewNotifier(users, d)
	n.SetSender(&fakeSender{})

	if _, err := n.Broadcast(context.Background(), "event.announce", func(models.User) (any, []any) {
		return "hi", nil
	}); err == nil {
		t.Error("expected error when store fails")
	}
}

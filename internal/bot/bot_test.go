package bot

import (
	"context"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/config"
	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/service"
	"github.com/avlodventures/eventbot/internal/session"
)

// testContext implements the handful of tele.Context methods the
// handlers touch; calling anything else panics on the nil embed.
type testContext struct {
	tele.Context

	chat   *tele.Chat
	sender *tele.User
	text   string

	store map[string]any
	sent  []any
	resps []*tele.CallbackResponse
}

func newTestContext(chatID int64, text string) *testContext {
	return &testContext{
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID},
		text:   text,
		store:  make(map[string]any),
	}
}

func (c *testContext) Update() tele.Update { return tele.Update{} }
func (c *testContext) Chat() *tele.Chat    { return c.chat }
func (c *testContext) Sender() *tele.User  { return c.sender }
func (c *testContext) Text() string        { return c.text }

func (c *testContext) Get(key string) any      { return c.store[key] }
func (c *testContext) Set(key string, val any) { c.store[key] = val }

func (c *testContext) Send(what any, _ ...any) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *testContext) Respond(resp ...*tele.CallbackResponse) error {
	c.resps = append(c.resps, resp...)
	return nil
}

type stubUserStore struct {
	user *models.User
}

func (s *stubUserStore) Upsert(context.Context, models.User) error { return nil }
func (s *stubUserStore) Get(context.Context, int64) (*models.User, error) {
	if s.user == nil {
		return nil, repository.ErrNotFound
	}
	return s.user, nil
}
func (s *stubUserStore) UpdateName(context.Context, int64, string) error     { return nil }
func (s *stubUserStore) UpdatePhone(context.Context, int64, string) error    { return nil }
func (s *stubUserStore) UpdateLanguage(context.Context, int64, string) error { return nil }
func (s *stubUserStore) ListAll(context.Context) ([]models.User, error)      { return nil, nil }

type stubCategoryStore struct{}

func (s *stubCategoryStore) Create(_ context.Context, name string) (*models.Category, error) {
	return &models.Category{ID: 1, Name: name}, nil
}
func (s *stubCategoryStore) List(context.Context) ([]models.Category, error) { return nil, nil }
func (s *stubCategoryStore) GetByID(_ context.Context, id int64) (*models.Category, error) {
	return &models.Category{ID: id, Name: "Online"}, nil
}

type stubEventStore struct {
	events map[int64]*models.Event
	items  []models.EventListItem
}

func (s *stubEventStore) Create(context.Context, models.Event) (int64, error) { return 1, nil }
func (s *stubEventStore) Get(_ context.Context, id int64) (*models.Event, error) {
	if ev, ok := s.events[id]; ok {
		return ev, nil
	}
	return nil, repository.ErrNotFound
}
func (s *stubEventStore) ListByCategory(context.Context, string) ([]models.EventCard, error) {
	return nil, nil
}
func (s *stubEventStore) ListAll(context.Context) ([]models.EventListItem, error) {
	return s.items, nil
}
func (s *stubEventStore) UpdateField(context.Context, int64, repository.EventField, any) error {
	return nil
}
func (s *stubEventStore) Delete(context.Context, int64) error { return nil }

func newTestBot(users *stubUserStore, events *stubEventStore) (*Bot, session.Manager) {
	cfg := &config.Config{}
	cfg.Access.AdminPassword = "sesame"
	cfg.Access.ModeratorPassword = "m0der"

	if events == nil {
		events = &stubEventStore{}
	}
	sessions := session.NewMemory()
	b := New(cfg,
		service.NewUsers(users),
		service.NewCatalog(&stubCategoryStore{}, events),
		nil, nil, sessions)
	return b, sessions
}

func TestWrongAdminPasswordEndsFlow(t *testing.T) {
	b, sessions := newTestBot(&stubUserStore{}, nil)
	const chat = int64(11)
	sessions.SetState(chat, StateAdminPassword)

	c := newTestContext(chat, "guess")
	if err := b.OnText(c); err != nil {
		t.Fatalf("OnText: %v", err)
	}

	if got := sessions.GetState(chat); got != session.StateIdle {
		t.Errorf("state after wrong password = %q, want idle", got)
	}
	if len(c.sent) != 1 || c.sent[0] != i18n.T(i18n.RU, "wrong_pass") {
		t.Errorf("sent = %v, want wrong_pass message", c.sent)
	}

	// A second try without /admin must not reach the password check.
	c2 := newTestContext(chat, "sesame")
	if err := b.OnText(c2); err != nil {
		t.Fatalf("OnText retry: %v", err)
	}
	if got := sessions.GetState(chat); got == StateAdminMenu {
		t.Error("retry after wrong password must not open the admin menu")
	}
}

func TestCorrectAdminPasswordOpensMenu(t *testing.T) {
	b, sessions := newTestBot(&stubUserStore{}, nil)
	const chat = int64(12)
	sessions.SetState(chat, StateAdminPassword)

	c := newTestContext(chat, "sesame")
	if err := b.OnText(c); err != nil {
		t.Fatalf("OnText: %v", err)
	}
	if got := sessions.GetState(chat); got != StateAdminMenu {
		t.Errorf("state = %q, want %q", got, StateAdminMenu)
	}
}

func TestWrongModeratorPasswordEndsFlow(t *testing.T) {
	b, sessions := newTestBot(&stubUserStore{}, nil)
	const chat = int64(13)
	sessions.SetState(chat, StateModerPassword)

	c := newTestContext(chat, "guess")
	if err := b.OnText(c); err != nil {
		t.Fatalf("OnText: %v", err)
	}
	if got := sessions.GetState(chat); got != session.StateIdle {
		t.Errorf("state after wrong password = %q, want idle", got)
	}
	if len(c.sent) != 1 || c.sent[0] != i18n.T(i18n.RU, "wrong_pass") {
		t.Errorf("sent = %v, want wrong_pass message", c.sent)
	}
}

func TestEditBackFromValuePrompt(t *testing.T) {
	b, sessions := newTestBot(&stubUserStore{}, nil)
	const chat = int64(21)
	sessions.SetState(chat, StateAdminEditValue)
	sessions.Set(chat, keyEditEventID, int64(5))
	sessions.Set(chat, keyEditField, "description")

	c := newTestContext(chat, "")
	if err := b.OnEditBackTap(c); err != nil {
		t.Fatalf("OnEditBackTap: %v", err)
	}

	if got := sessions.GetState(chat); got != StateAdminEditMenu {
		t.Errorf("state = %q, want %q", got, StateAdminEditMenu)
	}
	if _, ok := sessions.String(chat, keyEditField); ok {
		t.Error("field choice must be dropped on back")
	}
	if id, ok := sessions.Int64(chat, keyEditEventID); !ok || id != 5 {
		t.Errorf("edited event id = %d, %v; must survive back to the field menu", id, ok)
	}
	if len(c.sent) != 1 || c.sent[0] != i18n.T(i18n.RU, "edit_field_menu") {
		t.Errorf("sent = %v, want the field menu", c.sent)
	}
}

func TestEditBackFromFieldMenu(t *testing.T) {
	events := &stubEventStore{items: []models.EventListItem{
		{ID: 5, CategoryName: "Online", Description: "Go meetup"},
	}}
	b, sessions := newTestBot(&stubUserStore{}, events)
	const chat = int64(22)
	sessions.SetState(chat, StateAdminEditMenu)
	sessions.Set(chat, keyEditEventID, int64(5))

	c := newTestContext(chat, "")
	if err := b.OnEditBackTap(c); err != nil {
		t.Fatalf("OnEditBackTap: %v", err)
	}

	if got := sessions.GetState(chat); got != StateAdminEditPick {
		t.Errorf("state = %q, want %q", got, StateAdminEditPick)
	}
	if _, ok := sessions.Int64(chat, keyEditEventID); ok {
		t.Error("event choice must be dropped when returning to the picker")
	}
	if len(c.sent) != 1 || c.sent[0] != i18n.T(i18n.RU, "pick_event") {
		t.Errorf("sent = %v, want the event picker", c.sent)
	}
}

func TestConfirmCardForDeletedEvent(t *testing.T) {
	user := &models.User{ID: 31, FullName: "Ada", Phone: "+1 555", Language: "en"}
	b, sessions := newTestBot(&stubUserStore{user: user}, &stubEventStore{})
	const chat = int64(31)
	sessions.Set(chat, keyPendingEventID, int64(9))

	c := newTestContext(chat, "")
	if err := b.showConfirmCard(c, 9); err != nil {
		t.Fatalf("showConfirmCard: %v", err)
	}

	if _, ok := sessions.Int64(chat, keyPendingEventID); ok {
		t.Error("stale pending event id must be dropped")
	}
	if len(c.sent) != 1 || c.sent[0] != i18n.T(i18n.EN, "no_events") {
		t.Errorf("sent = %v, want no_events message", c.sent)
	}
}

func TestConfirmCardForLiveEvent(t *testing.T) {
	user := &models.User{ID: 32, FullName: "Ada", Phone: "+1 555", Language: "en"}
	events := &stubEventStore{events: map[int64]*models.Event{9: {ID: 9}}}
	b, sessions := newTestBot(&stubUserStore{user: user}, events)
	const chat = int64(32)

	c := newTestContext(chat, "")
	if err := b.showConfirmCard(c, 9); err != nil {
		t.Fatalf("showConfirmCard: %v", err)
	}

	if id, ok := sessions.Int64(chat, keyPendingEventID); !ok || id != 9 {
		t.Errorf("pending event id = %d, %v, want 9", id, ok)
	}
	if len(c.sent) != 1 || c.sent[0] != ConfirmCaption(i18n.EN, *user) {
		t.Errorf("sent = %v, want the confirmation card", c.sent)
	}
}

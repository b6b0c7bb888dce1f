package session

import (
	"fmt"
	"sync"
	"testing"
)

func TestLifecycle(t *testing.T) {
	m := NewMemory()
	const chat = int64(42)

	if m.GetState(chat) != StateIdle {
		t.Fatal("fresh chat must be idle")
	}
	if m.InProgress(chat) {
		t.Fatal("fresh chat must not be in progress")
	}

	m.SetState(chat, State("reg_name"))
	m.Set(chat, "language", "en")

	if !m.InProgress(chat) {
		t.Fatal("chat with a state must be in progress")
	}
	if got := m.GetState(chat); got != State("reg_name") {
		t.Errorf("state = %q", got)
	}
	if lang, ok := m.String(chat, "language"); !ok || lang != "en" {
		t.Errorf("language = %q, %v", lang, ok)
	}

	// Draft data survives transitions until Clear.
	m.SetState(chat, State("reg_phone"))
	if lang, ok := m.String(chat, "language"); !ok || lang != "en" {
		t.Errorf("language after transition = %q, %v", lang, ok)
	}

	m.Clear(chat)
	if m.GetState(chat) != StateIdle {
		t.Error("cleared chat must be idle")
	}
	if _, ok := m.Value(chat, "language"); ok {
		t.Error("cleared chat must have no draft data")
	}
}

func TestPendingEventStash(t *testing.T) {
	m := NewMemory()
	const chat = int64(7)

	m.Set(chat, "pending_event_id", int64(99))
	if id, ok := m.Int64(chat, "pending_event_id"); !ok || id != 99 {
		t.Fatalf("pending_event_id = %d, %v", id, ok)
	}

	// A profile-edit sub-flow may change state; the stash must survive.
	m.SetState(chat, State("profile_name"))
	if id, ok := m.Int64(chat, "pending_event_id"); !ok || id != 99 {
		t.Fatalf("pending_event_id after state change = %d, %v", id, ok)
	}

	m.Delete(chat, "pending_event_id")
	if _, ok := m.Int64(chat, "pending_event_id"); ok {
		t.Error("deleted key must be gone")
	}
}

func TestInt64AcceptsInt(t *testing.T) {
	m := NewMemory()
	m.Set(1, "capacity", 5)
	if n, ok := m.Int64(1, "capacity"); !ok || n != 5 {
		t.Errorf("Int64 from int = %d, %v", n, ok)
	}
	if n, ok := m.Int(1, "capacity"); !ok || n != 5 {
		t.Errorf("Int from int = %d, %v", n, ok)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := NewMemory()
	m.SetState(3, State("admin_menu"))
	m.Set(3, "k", "v")

	snap := m.Get(3)
	snap.Data["k"] = "mutated"

	if v, _ := m.String(3, "k"); v != "v" {
		t.Errorf("mutating a snapshot must not affect the stored session, got %q", v)
	}
}

func TestConcurrentChatsAreIndependent(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			st := State(fmt.Sprintf("state_%d", id))
			m.SetState(id, st)
			m.Set(id, "chat", id)
			if got := m.GetState(id); got != st {
				t.Errorf("chat %d state = %q, want %q", id, got, st)
			}
		}(int64(i))
	}
	wg.Wait()
	for i := int64(0); i < 32; i++ {
		if v, ok := m.Int64(i, "chat"); !ok || v != i {
			t.Errorf("chat %d data = %d, %v", i, v, ok)
		}
	}
}

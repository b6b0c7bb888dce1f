package bot

import (
	"database/sql"
	"testing"

	"github.com/avlodventures/eventbot/internal/models"
)

func TestEventCardButtons(t *testing.T) {
	online := models.EventCard{Event: models.Event{ID: 7}}
	mk := eventCardButtons("ru", online)
	if len(mk.InlineKeyboard) != 1 {
		t.Fatalf("online card rows = %d, want 1", len(mk.InlineKeyboard))
	}
	btn := mk.InlineKeyboard[0][0]
	if btn.Unique != cbRegister || btn.Data != "7" {
		t.Errorf("register button = %q|%q", btn.Unique, btn.Data)
	}

	offline := models.EventCard{Event: models.Event{
		ID:       8,
		Location: sql.NullString{String: "https://maps.google.com/?q=1,2", Valid: true},
	}}
	mk = eventCardButtons("ru", offline)
	if len(mk.InlineKeyboard) != 2 {
		t.Fatalf("offline card rows = %d, want 2", len(mk.InlineKeyboard))
	}
	if url := mk.InlineKeyboard[1][0].URL; url != offline.Location.String {
		t.Errorf("location url = %q", url)
	}
}

func TestConfirmButtonsLayout(t *testing.T) {
	mk := confirmButtons("en", 42)
	if len(mk.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(mk.InlineKeyboard))
	}
	if got := mk.InlineKeyboard[0][0]; got.Unique != cbConfirm || got.Data != "42" {
		t.Errorf("confirm button = %q|%q", got.Unique, got.Data)
	}
	edits := mk.InlineKeyboard[1]
	if len(edits) != 2 {
		t.Fatalf("edit row buttons = %d, want 2", len(edits))
	}
	if edits[0].Unique != cbEditName || edits[1].Unique != cbEditPhone {
		t.Errorf("edit row = %q, %q", edits[0].Unique, edits[1].Unique)
	}
}

func TestEventPickButtons(t *testing.T) {
	items := []models.EventListItem{
		{ID: 1, CategoryName: "Online", Description: "Go meetup"},
		{ID: 2, CategoryName: "Offline", Description: "Hiking trip"},
	}
	mk := eventPickButtons(items, cbModerPick)
	if len(mk.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(mk.InlineKeyboard))
	}
	for i, row := range mk.InlineKeyboard {
		if row[0].Unique != cbModerPick {
			t.Errorf("row %d unique = %q", i, row[0].Unique)
		}
	}
	if mk.InlineKeyboard[1][0].Data != "2" {
		t.Errorf("second row data = %q", mk.InlineKeyboard[1][0].Data)
	}
}

func TestEditFieldButtonsCoverEveryField(t *testing.T) {
	mk := editFieldButtons("ru")

	fields := map[string]bool{}
	var sawDelete, sawBack bool
	for _, row := range mk.InlineKeyboard {
		for _, btn := range row {
			switch btn.Unique {
			case cbEditField:
				fields[btn.Data] = true
			case cbEditDelete:
				sawDelete = true
			case cbEditBack:
				sawBack = true
			}
		}
	}

	for _, f := range []string{"image", "description", "time", "date", "capacity", "location"} {
		if !fields[f] {
			t.Errorf("field %q missing from edit menu", f)
		}
		if _, ok := editableField(f); !ok {
			t.Errorf("field %q has no column mapping", f)
		}
	}
	if !sawDelete || !sawBack {
		t.Errorf("delete=%v back=%v, want both", sawDelete, sawBack)
	}
}

func TestAboutButtonsSorted(t *testing.T) {
	mk := aboutButtons(map[string]string{
		"Telegram":  "https://t.me/x",
		"Instagram": "https://instagram.com/x",
	})
	if len(mk.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(mk.InlineKeyboard))
	}
	if mk.InlineKeyboard[0][0].Text != "Instagram" || mk.InlineKeyboard[1][0].Text != "Telegram" {
		t.Errorf("order = %q, %q", mk.InlineKeyboard[0][0].Text, mk.InlineKeyboard[1][0].Text)
	}
}

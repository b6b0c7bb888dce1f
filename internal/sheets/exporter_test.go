package sheets

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/avlodventures/eventbot/internal/config"
)

func TestNewDisabledWithoutCredentials(t *testing.T) {
	exp, err := New(context.Background(), config.SheetsConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if exp.Enabled() {
		t.Error("exporter should be disabled without credentials")
	}
	if err := exp.Append(context.Background(), "Event", Row{FullName: "A", Phone: "+1"}); err != nil {
		t.Errorf("Append on disabled exporter: %v", err)
	}
}

func TestWorksheetTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "Event"},
		{"  Go Meetup  ", "Go Meetup"},
		{"A/B:C", "A B C"},
		{"List [1]", "List (1)"},
	}
	for _, tc := range cases {
		if got := worksheetTitle(tc.in); got != tc.want {
			t.Errorf("worksheetTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := worksheetTitle(strings.Repeat("x", 200))
	if len(long) != 100 {
		t.Errorf("long title capped at %d, want 100", len(long))
	}

	// Cyrillic titles must be cut on rune boundaries, not bytes.
	cyr := worksheetTitle(strings.Repeat("я", 200))
	if !utf8.ValidString(cyr) {
		t.Error("truncated title is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(cyr); n != 100 {
		t.Errorf("long cyrillic title capped at %d runes, want 100", n)
	}
}

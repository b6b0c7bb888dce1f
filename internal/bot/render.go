package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/models"
)

// phoneRe accepts an optional leading plus followed by 10-15 digits,
// spaces allowed.
var phoneRe = regexp.MustCompile(`^\+?[\d\s]{10,15}$`)

// ValidPhone reports whether a manually typed phone number is acceptable.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// ParseCapacity parses the seat limit entered by an admin. Zero means
// unlimited; negative numbers and non-numbers are rejected.
func ParseCapacity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("capacity must be a number")
	}
	if n < 0 {
		return 0, fmt.Errorf("capacity must be non-negative")
	}
	return n, nil
}

// MapsLink builds a Google Maps URL from a Telegram location attachment.
func MapsLink(lat, lon float32) string {
	return fmt.Sprintf("https://maps.google.com/?q=%f,%f", lat, lon)
}

// EventCaption renders the photo caption of an event card.
func EventCaption(lang i18n.Lang, card models.EventCard) string {
	var b strings.Builder
	b.WriteString(card.Description)
	b.WriteString("\n\n")
	b.WriteString("📅 " + card.DateLabel + "\n")
	b.WriteString("🕒 " + card.TimeLabel + "\n")
	if card.MaxParticipants > 0 {
		b.WriteString(i18n.Tf(lang, "spots", card.Registered, card.MaxParticipants))
	} else {
		b.WriteString(i18n.T(lang, "spots_unlimited"))
	}
	return b.String()
}

// ConfirmCaption renders the reservation confirmation prompt.
func ConfirmCaption(lang i18n.Lang, u models.User) string {
	return i18n.Tf(lang, "confirm_reg", u.FullName, u.Phone)
}

// ProfileCaption renders the settings screen header.
func ProfileCaption(lang i18n.Lang, u models.User) string {
	return i18n.Tf(lang, "curr_profile", u.FullName, u.Phone, i18n.DisplayName(i18n.Normalize(u.Language)))
}

// EventListLine renders one short event line for admin/moderator pickers.
func EventListLine(item models.EventListItem) string {
	desc := item.Description
	if r := []rune(desc); len(r) > 32 {
		desc = string(r[:32]) + "…"
	}
	return fmt.Sprintf("#%d %s — %s", item.ID, item.CategoryName, desc)
}

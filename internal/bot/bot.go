package bot

import (
	"context"

	"github.com/avlodventures/eventbot/internal/config"
	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/service"
	"github.com/avlodventures/eventbot/internal/session"
)

// Bot holds the services behind the conversation handlers.
type Bot struct {
	cfg      *config.Config
	users    *service.Users
	catalog  *service.Catalog
	resv     *service.Reservations
	notifier *service.Notifier
	sessions session.Manager
}

// New wires the bot handlers to their services.
func New(
	cfg *config.Config,
	users *service.Users,
	catalog *service.Catalog,
	resv *service.Reservations,
	notifier *service.Notifier,
	sessions session.Manager,
) *Bot {
	return &Bot{
		cfg:      cfg,
		users:    users,
		catalog:  catalog,
		resv:     resv,
		notifier: notifier,
		sessions: sessions,
	}
}

// langFor resolves the interface language: the in-progress registration
// choice wins, then the stored profile, then Russian.
func (b *Bot) langFor(ctx context.Context, chatID, userID int64) i18n.Lang {
	if code, ok := b.sessions.String(chatID, keyLanguage); ok {
		return i18n.Normalize(code)
	}
	if u, err := b.users.Profile(ctx, userID); err == nil {
		return i18n.Normalize(u.Language)
	}
	return i18n.RU
}

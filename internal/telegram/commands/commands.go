// Package commands defines metadata for slash commands shown in the
// Telegram command menu.
package commands

import tele "gopkg.in/telebot.v4"

// Command couples a handler with menu metadata. Hidden commands are
// registered but never advertised (password-gated entry points).
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Aliases     []string
	Hidden      bool
}

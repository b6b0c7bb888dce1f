// Package middleware provides the shared handler middleware chain:
// panic recovery, per-update logging, and per-user rate limiting.
package middleware

import (
	"log/slog"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/logger"
)

// Recover catches panics in handlers so one chat's bad input never
// crashes the bot.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}

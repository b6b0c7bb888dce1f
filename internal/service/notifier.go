package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/logger"
	"github.com/avlodventures/eventbot/internal/models"
	tgsender "github.com/avlodventures/eventbot/internal/telegram/sender"
)

// MessageSender sends a message to a chat. *tele.Bot satisfies it.
type MessageSender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

// Notifier fans messages out to every registered user through the async
// dispatcher. One broken recipient never stops the broadcast.
type Notifier struct {
	users      UserStore
	dispatcher *tgsender.Dispatcher

	mu     sync.RWMutex
	sender MessageSender
}

// NewNotifier constructs the notifier. The sender is attached later,
// once the bot instance exists.
func NewNotifier(users UserStore, dispatcher *tgsender.Dispatcher) *Notifier {
	return &Notifier{users: users, dispatcher: dispatcher}
}

// SetSender attaches the outbound transport.
func (n *Notifier) SetSender(s MessageSender) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sender = s
}

func (n *Notifier) getSender() MessageSender {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sender
}

// Broadcast enqueues one message per registered user. compose builds the
// payload per recipient (language-specific text, photo, keyboard);
// returning nil skips the recipient. Returns the number of enqueued sends.
func (n *Notifier) Broadcast(ctx context.Context, action string, compose func(u models.User) (any, []any)) (int, error) {
	sender := n.getSender()
	if sender == nil {
		return 0, errors.New("notifier: sender not attached")
	}

	users, err := n.users.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	enqueued, skipped := 0, 0
	for _, u := range users {
		what, opts := compose(u)
		if what == nil {
			skipped++
			continue
		}
		chatID := tele.ChatID(u.ID)
		if err := n.dispatcher.Enqueue(ctx, action, func() error {
			_, sendErr := sender.Send(chatID, what, opts...)
			return sendErr
		}); err != nil {
			skipped++
			logger.Warn(ctx, "notify", "broadcast.enqueue_failed",
				slog.Int64("user_id", u.ID),
				slog.String("err", err.Error()),
			)
			continue
		}
		enqueued++
	}

	logger.Info(ctx, "notify", "broadcast.enqueued",
		slog.String("action", action),
		slog.Int("recipients", enqueued),
		slog.Int("skipped", skipped),
	)
	return enqueued, nil
}

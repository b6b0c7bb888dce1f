package bot

import (
	"errors"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/session"
	"github.com/avlodventures/eventbot/internal/telegram/callbacks"
	"github.com/avlodventures/eventbot/internal/telegram/helpers"
	"github.com/avlodventures/eventbot/internal/telegram/keyboard"
)

// HandleModer gates the attendee lookup behind the moderator password.
// Invoking /moder mid-session exits the lookup loop.
func (b *Bot) HandleModer(c tele.Context) error {
	ctx := helpers.WithHandler(c, "moder")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	if b.sessions.GetState(chatID) == StateModerCheckPhone {
		b.sessions.Clear(chatID)
		return b.sendMainMenu(c, lang)
	}

	b.sessions.Clear(chatID)
	b.sessions.SetState(chatID, StateModerPassword)
	return c.Send(i18n.T(lang, "moder_pass"), keyboard.RemoveKeyboard())
}

// moderText routes text while the moderator flow is active.
func (b *Bot) moderText(c tele.Context, state session.State) error {
	ctx := helpers.WithHandler(c, "moder")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)
	text := strings.TrimSpace(c.Text())

	switch state {
	case StateModerPassword:
		if !passwordsEqual(text, b.cfg.Access.ModeratorPassword) {
			// One attempt per /moder; a wrong password ends the flow.
			b.sessions.Clear(chatID)
			return c.Send(i18n.T(lang, "wrong_pass"))
		}
		items, err := b.catalog.AllEvents(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			b.sessions.Clear(chatID)
			return c.Send(i18n.T(lang, "no_events"))
		}
		b.sessions.SetState(chatID, StateModerPickEvent)
		return c.Send(i18n.T(lang, "pick_event"), eventPickButtons(items, cbModerPick))

	case StateModerCheckPhone:
		eventID, ok := b.sessions.Int64(chatID, keyModerEventID)
		if !ok {
			b.sessions.Clear(chatID)
			return b.sendMainMenu(c, lang)
		}

		attendee, err := b.resv.FindAttendee(ctx, eventID, text)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if err := c.Send(i18n.Tf(lang, "participant_not_found", text)); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := c.Send(i18n.Tf(lang, "participant_found", attendee.FullName, attendee.Phone)); err != nil {
				return err
			}
		}
		return c.Send(i18n.T(lang, "check_another"))
	}
	return nil
}

// OnModerPickTap selects the event whose attendees get checked.
func (b *Bot) OnModerPickTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "moder.pick")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	if b.sessions.GetState(chatID) != StateModerPickEvent {
		return c.Respond(&tele.CallbackResponse{})
	}
	eventID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "use_buttons")})
	}

	b.sessions.Set(chatID, keyModerEventID, eventID)
	b.sessions.SetState(chatID, StateModerCheckPhone)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(i18n.T(lang, "check_phone"))
}

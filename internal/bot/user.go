package bot

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/logger"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/session"
	"github.com/avlodventures/eventbot/internal/telegram/callbacks"
	"github.com/avlodventures/eventbot/internal/telegram/helpers"
	"github.com/avlodventures/eventbot/internal/telegram/keyboard"
	"github.com/avlodventures/eventbot/internal/ticket"
)

// HandleStart greets the user: registered users land in the main menu,
// everyone else starts the registration form.
func (b *Bot) HandleStart(c tele.Context) error {
	ctx := helpers.WithHandler(c, "start")
	chatID, userID := c.Chat().ID, c.Sender().ID

	// /start aborts whatever form was in progress, but a stashed event
	// reservation survives so the flow can resume after registration.
	pending, hadPending := b.sessions.Int64(chatID, keyPendingEventID)
	b.sessions.Clear(chatID)
	if hadPending {
		b.sessions.Set(chatID, keyPendingEventID, pending)
	}

	registered, err := b.users.IsRegistered(ctx, userID)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if registered {
		return b.sendMainMenu(c, b.langFor(ctx, chatID, userID))
	}
	return b.beginRegistration(c)
}

func (b *Bot) beginRegistration(c tele.Context) error {
	b.sessions.SetState(c.Chat().ID, StateRegLanguage)
	return c.Send(i18n.T(i18n.RU, "choose_lang"), languageKeyboard())
}

func (b *Bot) sendMainMenu(c tele.Context, lang i18n.Lang) error {
	return c.Send(i18n.T(lang, "main_menu"), mainMenuKeyboard(lang))
}

// OnText routes a text message to the active conversation step.
func (b *Bot) OnText(c tele.Context) error {
	ctx := helpers.WithHandler(c, "text")
	chatID, userID := c.Chat().ID, c.Sender().ID
	state := b.sessions.GetState(chatID)
	lang := b.langFor(ctx, chatID, userID)
	text := strings.TrimSpace(c.Text())

	switch state {
	case StateRegLanguage, StateProfileLanguage:
		picked, ok := i18n.FromButton(text)
		if !ok {
			return c.Send(i18n.T(lang, "use_buttons"), languageKeyboard())
		}
		if state == StateProfileLanguage {
			if err := b.users.ChangeLanguage(ctx, userID, string(picked)); err != nil {
				return err
			}
			b.sessions.Clear(chatID)
			return b.sendMainMenu(c, picked)
		}
		b.sessions.Set(chatID, keyLanguage, string(picked))
		b.sessions.SetState(chatID, StateRegName)
		return c.Send(i18n.T(picked, "get_name"), keyboard.RemoveKeyboard())

	case StateRegName:
		b.sessions.Set(chatID, keyDraftName, text)
		b.sessions.SetState(chatID, StateRegPhone)
		return c.Send(i18n.T(lang, "get_phone"), phoneKeyboard(lang))

	case StateRegPhone:
		if !ValidPhone(text) {
			return c.Send(i18n.T(lang, "phone_invalid"), phoneKeyboard(lang))
		}
		return b.finishRegistration(c, text)

	case StateProfileName:
		if err := b.users.Rename(ctx, userID, text); err != nil {
			return err
		}
		return b.afterProfileEdit(c, lang, "name_changed")

	case StateProfilePhone:
		if !ValidPhone(text) {
			return c.Send(i18n.T(lang, "phone_invalid"), phoneKeyboard(lang))
		}
		if err := b.users.ChangePhone(ctx, userID, text); err != nil {
			return err
		}
		return b.afterProfileEdit(c, lang, "phone_changed")

	case StateAdminPassword, StateAdminMenu, StateAdminNewCategory,
		StateAdminEventImage, StateAdminEventDescription, StateAdminEventTime,
		StateAdminEventDate, StateAdminEventCapacity, StateAdminEventLocation,
		StateAdminEditValue:
		return b.adminText(c, state)

	case StateModerPassword, StateModerCheckPhone:
		return b.moderText(c, state)
	}

	return b.menuText(c, lang, text)
}

// menuText handles reply-keyboard presses outside any form.
func (b *Bot) menuText(c tele.Context, lang i18n.Lang, text string) error {
	ctx := helpers.BuildContext(c)
	chatID, userID := c.Chat().ID, c.Sender().ID

	switch {
	case i18n.MatchCaption(text, "online_events"):
		return b.listEvents(c, lang, "Online")
	case i18n.MatchCaption(text, "offline_events"):
		return b.listEvents(c, lang, "Offline")
	case i18n.MatchCaption(text, "about_us"):
		return c.Send(i18n.T(lang, "about_text"), aboutButtons(b.cfg.Social))
	case i18n.MatchCaption(text, "settings"):
		u, err := b.users.Profile(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return b.beginRegistration(c)
			}
			return err
		}
		return c.Send(ProfileCaption(lang, *u), settingsKeyboard(lang))
	case i18n.MatchCaption(text, "change_name"):
		b.sessions.SetState(chatID, StateProfileName)
		return c.Send(i18n.T(lang, "get_name"), keyboard.RemoveKeyboard())
	case i18n.MatchCaption(text, "change_phone"):
		b.sessions.SetState(chatID, StateProfilePhone)
		return c.Send(i18n.T(lang, "get_phone"), phoneKeyboard(lang))
	case i18n.MatchCaption(text, "change_lang"):
		b.sessions.SetState(chatID, StateProfileLanguage)
		return c.Send(i18n.T(lang, "choose_lang"), languageKeyboard())
	case i18n.MatchCaption(text, "main_menu_btn"):
		return b.sendMainMenu(c, lang)
	}

	return c.Send(i18n.T(lang, "use_buttons"), mainMenuKeyboard(lang))
}

// OnContact accepts the shared contact for the phone steps.
func (b *Bot) OnContact(c tele.Context) error {
	ctx := helpers.WithHandler(c, "contact")
	chatID, userID := c.Chat().ID, c.Sender().ID
	contact := c.Message().Contact
	if contact == nil {
		return nil
	}
	phone := contact.PhoneNumber
	if phone != "" && !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	switch b.sessions.GetState(chatID) {
	case StateRegPhone:
		return b.finishRegistration(c, phone)
	case StateProfilePhone:
		if err := b.users.ChangePhone(ctx, userID, phone); err != nil {
			return err
		}
		return b.afterProfileEdit(c, b.langFor(ctx, chatID, userID), "phone_changed")
	}
	return nil
}

func (b *Bot) finishRegistration(c tele.Context, phone string) error {
	ctx := helpers.BuildContext(c)
	chatID, userID := c.Chat().ID, c.Sender().ID

	name, _ := b.sessions.String(chatID, keyDraftName)
	code, _ := b.sessions.String(chatID, keyLanguage)
	lang := i18n.Normalize(code)

	err := b.users.Register(ctx, models.User{
		ID:       userID,
		FullName: name,
		Phone:    phone,
		Language: string(lang),
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	pending, hadPending := b.sessions.Int64(chatID, keyPendingEventID)
	b.sessions.Clear(chatID)

	if err := b.sendMainMenu(c, lang); err != nil {
		return err
	}
	if hadPending {
		return b.showConfirmCard(c, pending)
	}
	return nil
}

// afterProfileEdit returns either to the reservation confirmation the
// edit was started from, or to the main menu.
func (b *Bot) afterProfileEdit(c tele.Context, lang i18n.Lang, ackKey string) error {
	chatID := c.Chat().ID
	_, toConfirm := b.sessions.Value(chatID, keyReturnToConfirm)
	pending, hasPending := b.sessions.Int64(chatID, keyPendingEventID)

	b.sessions.SetState(chatID, session.StateIdle)
	b.sessions.Delete(chatID, keyReturnToConfirm)

	if err := c.Send(i18n.T(lang, ackKey), mainMenuKeyboard(lang)); err != nil {
		return err
	}
	if toConfirm && hasPending {
		return b.showConfirmCard(c, pending)
	}
	return nil
}

func (b *Bot) listEvents(c tele.Context, lang i18n.Lang, categoryName string) error {
	ctx := helpers.BuildContext(c)
	cards, err := b.catalog.EventsInCategory(ctx, categoryName)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	if len(cards) == 0 {
		return c.Send(i18n.T(lang, "no_events"))
	}

	for _, card := range cards {
		caption := EventCaption(lang, card)
		markup := eventCardButtons(lang, card)
		if card.ImageRef != "" {
			photo := &tele.Photo{File: tele.File{FileID: card.ImageRef}, Caption: caption}
			if err := c.Send(photo, markup); err != nil {
				logger.Warn(ctx, "bot", "event.card.send_failed",
					slog.Int64("event_id", card.ID),
					slog.String("err", err.Error()),
				)
			}
			continue
		}
		if err := c.Send(caption, markup); err != nil {
			logger.Warn(ctx, "bot", "event.card.send_failed",
				slog.Int64("event_id", card.ID),
				slog.String("err", err.Error()),
			)
		}
	}
	return nil
}

// OnRegisterTap starts the booking: unregistered users detour through the
// registration form first, everyone else gets the confirmation card.
func (b *Bot) OnRegisterTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "reserve.begin")
	chatID, userID := c.Chat().ID, c.Sender().ID
	lang := b.langFor(ctx, chatID, userID)

	eventID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "use_buttons")})
	}

	registered, err := b.users.IsRegistered(ctx, userID)
	if err != nil {
		return err
	}
	if !registered {
		b.sessions.Set(chatID, keyPendingEventID, eventID)
		if err := c.Respond(&tele.CallbackResponse{}); err != nil {
			return err
		}
		return b.beginRegistration(c)
	}

	_, err = b.resv.Begin(ctx, userID, eventID)
	switch {
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "already_reg"), ShowAlert: true})
	case errors.Is(err, repository.ErrEventFull):
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "event_full"), ShowAlert: true})
	case errors.Is(err, repository.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "no_events"), ShowAlert: true})
	case err != nil:
		return err
	}

	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return b.showConfirmCard(c, eventID)
}

func (b *Bot) showConfirmCard(c tele.Context, eventID int64) error {
	ctx := helpers.BuildContext(c)
	chatID, userID := c.Chat().ID, c.Sender().ID
	lang := b.langFor(ctx, chatID, userID)

	// The detour through registration or a profile edit takes a while;
	// the event may be gone by the time the card is due.
	if _, err := b.catalog.Event(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			b.sessions.Delete(chatID, keyPendingEventID)
			return c.Send(i18n.T(lang, "no_events"), mainMenuKeyboard(lang))
		}
		return fmt.Errorf("confirm card: %w", err)
	}

	u, err := b.users.Profile(ctx, userID)
	if err != nil {
		return fmt.Errorf("confirm card: %w", err)
	}

	b.sessions.Set(chatID, keyPendingEventID, eventID)
	return c.Send(ConfirmCaption(lang, *u), confirmButtons(lang, eventID))
}

// OnConfirmTap atomically takes the seat and sends the QR ticket.
func (b *Bot) OnConfirmTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "reserve.confirm")
	chatID, userID := c.Chat().ID, c.Sender().ID
	lang := b.langFor(ctx, chatID, userID)

	eventID, err := callbacks.PayloadInt64(c)
	if err != nil {
		var ok bool
		if eventID, ok = b.sessions.Int64(chatID, keyPendingEventID); !ok {
			return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "use_buttons")})
		}
	}

	u, err := b.users.Profile(ctx, userID)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}

	reg, err := b.resv.Confirm(ctx, *u, eventID)
	switch {
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "already_reg"), ShowAlert: true})
	case errors.Is(err, repository.ErrEventFull):
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "event_full"), ShowAlert: true})
	case errors.Is(err, repository.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "no_events"), ShowAlert: true})
	case err != nil:
		return err
	}

	b.sessions.Delete(chatID, keyPendingEventID)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	if err := c.Send(i18n.T(lang, "reg_success"), mainMenuKeyboard(lang)); err != nil {
		return err
	}

	png, err := ticket.PNG(ticket.Payload{
		RegistrationID: reg.ID,
		EventID:        eventID,
		UserID:         userID,
	})
	if err != nil {
		logger.Warn(ctx, "bot", "ticket.render_failed",
			slog.Int64("registration_id", reg.ID),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return c.Send(&tele.Photo{File: tele.FromReader(bytes.NewReader(png))})
}

// OnEditNameTap lets the user fix their name before confirming.
func (b *Bot) OnEditNameTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "reserve.edit_name")
	chatID, userID := c.Chat().ID, c.Sender().ID
	lang := b.langFor(ctx, chatID, userID)

	if eventID, err := callbacks.PayloadInt64(c); err == nil {
		b.sessions.Set(chatID, keyPendingEventID, eventID)
	}
	b.sessions.Set(chatID, keyReturnToConfirm, true)
	b.sessions.SetState(chatID, StateProfileName)

	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(i18n.T(lang, "get_name"), keyboard.RemoveKeyboard())
}

// OnEditPhoneTap lets the user fix their phone before confirming.
func (b *Bot) OnEditPhoneTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "reserve.edit_phone")
	chatID, userID := c.Chat().ID, c.Sender().ID
	lang := b.langFor(ctx, chatID, userID)

	if eventID, err := callbacks.PayloadInt64(c); err == nil {
		b.sessions.Set(chatID, keyPendingEventID, eventID)
	}
	b.sessions.Set(chatID, keyReturnToConfirm, true)
	b.sessions.SetState(chatID, StateProfilePhone)

	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(i18n.T(lang, "get_phone"), phoneKeyboard(lang))
}

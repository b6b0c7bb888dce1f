package bot

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/repository"
	"github.com/avlodventures/eventbot/internal/session"
	"github.com/avlodventures/eventbot/internal/telegram/callbacks"
	"github.com/avlodventures/eventbot/internal/telegram/helpers"
	"github.com/avlodventures/eventbot/internal/telegram/keyboard"
)

// HandleAdmin gates the admin menu behind the configured password.
func (b *Bot) HandleAdmin(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	b.sessions.Clear(chatID)
	b.sessions.SetState(chatID, StateAdminPassword)
	return c.Send(i18n.T(lang, "admin_pass"), keyboard.RemoveKeyboard())
}

func passwordsEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// adminText routes text messages while an admin form is active.
func (b *Bot) adminText(c tele.Context, state session.State) error {
	ctx := helpers.WithHandler(c, "admin")
	chatID, userID := c.Chat().ID, c.Sender().ID
	lang := b.langFor(ctx, chatID, userID)
	text := strings.TrimSpace(c.Text())

	switch state {
	case StateAdminPassword:
		if !passwordsEqual(text, b.cfg.Access.AdminPassword) {
			// One attempt per /admin; a wrong password ends the flow.
			b.sessions.Clear(chatID)
			return c.Send(i18n.T(lang, "wrong_pass"))
		}
		return b.sendAdminMenu(c, lang)

	case StateAdminMenu:
		return b.adminMenuText(c, lang, text)

	case StateAdminNewCategory:
		_, err := b.catalog.CreateCategory(ctx, text)
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return c.Send(i18n.T(lang, "cat_duplicate"))
		}
		if err != nil {
			return err
		}
		if err := c.Send(i18n.T(lang, "cat_saved")); err != nil {
			return err
		}
		return b.sendAdminMenu(c, lang)

	case StateAdminEventImage:
		// Wizard expects a photo here.
		return c.Send(i18n.T(lang, "img_invalid"))

	case StateAdminEventDescription:
		b.sessions.Set(chatID, keyDraftDescription, text)
		b.sessions.SetState(chatID, StateAdminEventTime)
		return c.Send(i18n.T(lang, "send_time"))

	case StateAdminEventTime:
		b.sessions.Set(chatID, keyDraftTime, text)
		b.sessions.SetState(chatID, StateAdminEventDate)
		return c.Send(i18n.T(lang, "send_date"))

	case StateAdminEventDate:
		b.sessions.Set(chatID, keyDraftDate, text)
		b.sessions.SetState(chatID, StateAdminEventCapacity)
		return c.Send(i18n.T(lang, "send_capacity"))

	case StateAdminEventCapacity:
		capacity, err := ParseCapacity(text)
		if err != nil {
			return c.Send(i18n.T(lang, "capacity_invalid"))
		}
		b.sessions.Set(chatID, keyDraftCapacity, capacity)

		offline, err := b.draftCategoryIsOffline(c)
		if err != nil {
			return err
		}
		if offline {
			b.sessions.SetState(chatID, StateAdminEventLocation)
			return c.Send(i18n.T(lang, "send_location"))
		}
		return b.commitEvent(c, lang, "")

	case StateAdminEventLocation:
		// Wizard expects a location attachment here.
		return c.Send(i18n.T(lang, "location_invalid"))

	case StateAdminEditValue:
		return b.adminEditValueText(c, lang, text)
	}
	return nil
}

func (b *Bot) sendAdminMenu(c tele.Context, lang i18n.Lang) error {
	b.sessions.SetState(c.Chat().ID, StateAdminMenu)
	return c.Send(i18n.T(lang, "admin_menu"), adminMenuKeyboard(lang))
}

func (b *Bot) adminMenuText(c tele.Context, lang i18n.Lang, text string) error {
	ctx := helpers.BuildContext(c)
	chatID := c.Chat().ID

	switch {
	case i18n.MatchCaption(text, "active_events"):
		items, err := b.catalog.AllEvents(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return c.Send(i18n.T(lang, "no_events"))
		}
		lines := make([]string, 0, len(items))
		for _, it := range items {
			lines = append(lines, EventListLine(it))
		}
		return c.Send(strings.Join(lines, "\n"))

	case i18n.MatchCaption(text, "create_cat"):
		b.sessions.SetState(chatID, StateAdminNewCategory)
		return c.Send(i18n.T(lang, "cat_name"))

	case i18n.MatchCaption(text, "add_event"):
		cats, err := b.catalog.Categories(ctx)
		if err != nil {
			return err
		}
		b.sessions.SetState(chatID, StateAdminEventCategory)
		return c.Send(i18n.T(lang, "choose_cat"), categoryButtons(cats))

	case i18n.MatchCaption(text, "edit_event"):
		items, err := b.catalog.AllEvents(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return c.Send(i18n.T(lang, "no_events"))
		}
		b.sessions.SetState(chatID, StateAdminEditPick)
		return c.Send(i18n.T(lang, "pick_event"), eventPickButtons(items, cbEditPick))

	case i18n.MatchCaption(text, "exit_admin"):
		b.sessions.Clear(chatID)
		return b.sendMainMenu(c, lang)
	}

	return c.Send(i18n.T(lang, "use_buttons"), adminMenuKeyboard(lang))
}

// OnWizardCategoryTap records the category and starts the event form.
func (b *Bot) OnWizardCategoryTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.event_category")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	if b.sessions.GetState(chatID) != StateAdminEventCategory {
		return c.Respond(&tele.CallbackResponse{})
	}
	catID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "use_buttons")})
	}

	b.sessions.Set(chatID, keyDraftCategoryID, catID)
	b.sessions.SetState(chatID, StateAdminEventImage)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(i18n.T(lang, "send_img"))
}

// OnPhoto stores the event image during the wizard or the edit flow.
func (b *Bot) OnPhoto(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.photo")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	photo := c.Message().Photo
	if photo == nil {
		return nil
	}

	switch b.sessions.GetState(chatID) {
	case StateAdminEventImage:
		b.sessions.Set(chatID, keyDraftImage, photo.FileID)
		b.sessions.SetState(chatID, StateAdminEventDescription)
		return c.Send(i18n.T(lang, "send_desc"))

	case StateAdminEditValue:
		if field, _ := b.sessions.String(chatID, keyEditField); field == "image" {
			return b.applyEventEdit(c, lang, repository.FieldImage, photo.FileID)
		}
	}
	return nil
}

// OnLocation accepts the venue location for offline events.
func (b *Bot) OnLocation(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.location")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	loc := c.Message().Location
	if loc == nil {
		return nil
	}
	link := MapsLink(loc.Lat, loc.Lng)

	switch b.sessions.GetState(chatID) {
	case StateAdminEventLocation:
		return b.commitEvent(c, lang, link)

	case StateAdminEditValue:
		if field, _ := b.sessions.String(chatID, keyEditField); field == "location" {
			return b.applyEventEdit(c, lang, repository.FieldLocation, link)
		}
	}
	return nil
}

func (b *Bot) draftCategoryIsOffline(c tele.Context) (bool, error) {
	ctx := helpers.BuildContext(c)
	catID, ok := b.sessions.Int64(c.Chat().ID, keyDraftCategoryID)
	if !ok {
		return false, fmt.Errorf("event wizard: category missing from session")
	}
	cat, err := b.catalog.Category(ctx, catID)
	if err != nil {
		return false, err
	}
	return cat.Name == "Offline", nil
}

// commitEvent persists the assembled draft and fans out the announcement.
func (b *Bot) commitEvent(c tele.Context, lang i18n.Lang, location string) error {
	ctx := helpers.BuildContext(c)
	chatID := c.Chat().ID

	catID, _ := b.sessions.Int64(chatID, keyDraftCategoryID)
	image, _ := b.sessions.String(chatID, keyDraftImage)
	desc, _ := b.sessions.String(chatID, keyDraftDescription)
	timeLabel, _ := b.sessions.String(chatID, keyDraftTime)
	dateLabel, _ := b.sessions.String(chatID, keyDraftDate)
	capacity, _ := b.sessions.Int(chatID, keyDraftCapacity)

	ev := models.Event{
		CategoryID:      catID,
		ImageRef:        image,
		Description:     desc,
		TimeLabel:       timeLabel,
		DateLabel:       dateLabel,
		MaxParticipants: capacity,
	}
	if location != "" {
		ev.Location.String = location
		ev.Location.Valid = true
	}

	if _, err := b.catalog.CreateEvent(ctx, ev); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	if err := c.Send(i18n.T(lang, "event_saved")); err != nil {
		return err
	}

	if _, err := b.notifier.Broadcast(ctx, "event.announce", func(u models.User) (any, []any) {
		return i18n.T(i18n.Normalize(u.Language), "new_event_notify"), nil
	}); err != nil {
		return err
	}

	return b.sendAdminMenu(c, lang)
}

// OnEditPickTap shows the field menu for the chosen event.
func (b *Bot) OnEditPickTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.edit_pick")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	if b.sessions.GetState(chatID) != StateAdminEditPick {
		return c.Respond(&tele.CallbackResponse{})
	}
	eventID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "use_buttons")})
	}

	b.sessions.Set(chatID, keyEditEventID, eventID)
	b.sessions.SetState(chatID, StateAdminEditMenu)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	return c.Send(i18n.T(lang, "edit_field_menu"), editFieldButtons(lang))
}

// editableField maps a callback payload to the repository field.
func editableField(name string) (repository.EventField, bool) {
	switch name {
	case "image":
		return repository.FieldImage, true
	case "description":
		return repository.FieldDescription, true
	case "time":
		return repository.FieldTime, true
	case "date":
		return repository.FieldDate, true
	case "capacity":
		return repository.FieldCapacity, true
	case "location":
		return repository.FieldLocation, true
	}
	return "", false
}

// OnEditFieldTap asks for the new value of the chosen field.
func (b *Bot) OnEditFieldTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.edit_field")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	if b.sessions.GetState(chatID) != StateAdminEditMenu {
		return c.Respond(&tele.CallbackResponse{})
	}
	field := callbacks.Payload(c)
	if _, ok := editableField(field); !ok {
		return c.Respond(&tele.CallbackResponse{Text: i18n.T(lang, "use_buttons")})
	}

	b.sessions.Set(chatID, keyEditField, field)
	b.sessions.SetState(chatID, StateAdminEditValue)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}

	switch field {
	case "image":
		return c.Send(i18n.T(lang, "send_img"))
	case "location":
		return c.Send(i18n.T(lang, "send_location"))
	}
	return c.Send(i18n.T(lang, "send_new_value"))
}

// adminEditValueText applies a text value to the field being edited.
func (b *Bot) adminEditValueText(c tele.Context, lang i18n.Lang, text string) error {
	chatID := c.Chat().ID
	name, _ := b.sessions.String(chatID, keyEditField)
	field, ok := editableField(name)
	if !ok {
		return b.sendAdminMenu(c, lang)
	}

	switch field {
	case repository.FieldImage:
		return c.Send(i18n.T(lang, "img_invalid"))
	case repository.FieldLocation:
		return c.Send(i18n.T(lang, "location_invalid"))
	case repository.FieldCapacity:
		capacity, err := ParseCapacity(text)
		if err != nil {
			return c.Send(i18n.T(lang, "capacity_invalid"))
		}
		return b.applyEventEdit(c, lang, field, capacity)
	}
	return b.applyEventEdit(c, lang, field, text)
}

// applyEventEdit commits the change and returns to the field menu.
func (b *Bot) applyEventEdit(c tele.Context, lang i18n.Lang, field repository.EventField, value any) error {
	ctx := helpers.BuildContext(c)
	chatID := c.Chat().ID

	eventID, ok := b.sessions.Int64(chatID, keyEditEventID)
	if !ok {
		return b.sendAdminMenu(c, lang)
	}
	if err := b.catalog.UpdateEventField(ctx, eventID, field, value); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return b.sendAdminMenu(c, lang)
		}
		return err
	}

	b.sessions.Delete(chatID, keyEditField)
	b.sessions.SetState(chatID, StateAdminEditMenu)
	if err := c.Send(i18n.T(lang, "event_updated")); err != nil {
		return err
	}
	return c.Send(i18n.T(lang, "edit_field_menu"), editFieldButtons(lang))
}

// OnEditDeleteTap removes the event being edited.
func (b *Bot) OnEditDeleteTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.edit_delete")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	if b.sessions.GetState(chatID) != StateAdminEditMenu {
		return c.Respond(&tele.CallbackResponse{})
	}
	eventID, ok := b.sessions.Int64(chatID, keyEditEventID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{})
	}

	if err := b.catalog.DeleteEvent(ctx, eventID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	b.sessions.Delete(chatID, keyEditEventID)
	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		return err
	}
	if err := c.Send(i18n.T(lang, "event_deleted")); err != nil {
		return err
	}
	return b.sendAdminMenu(c, lang)
}

// OnEditBackTap steps one level up: from the value prompt back to the
// field menu, or from the field menu back to the event picker.
func (b *Bot) OnEditBackTap(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin.edit_back")
	chatID := c.Chat().ID
	lang := b.langFor(ctx, chatID, c.Sender().ID)

	switch b.sessions.GetState(chatID) {
	case StateAdminEditValue:
		b.sessions.Delete(chatID, keyEditField)
		b.sessions.SetState(chatID, StateAdminEditMenu)
		if err := c.Respond(&tele.CallbackResponse{}); err != nil {
			return err
		}
		return c.Send(i18n.T(lang, "edit_field_menu"), editFieldButtons(lang))

	case StateAdminEditMenu:
		items, err := b.catalog.AllEvents(ctx)
		if err != nil {
			return err
		}
		b.sessions.Delete(chatID, keyEditEventID)
		b.sessions.SetState(chatID, StateAdminEditPick)
		if err := c.Respond(&tele.CallbackResponse{}); err != nil {
			return err
		}
		return c.Send(i18n.T(lang, "pick_event"), eventPickButtons(items, cbEditPick))
	}
	return c.Respond(&tele.CallbackResponse{})
}

package bot

import (
	"fmt"
	"sort"

	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/i18n"
	"github.com/avlodventures/eventbot/internal/models"
	"github.com/avlodventures/eventbot/internal/telegram/keyboard"
)

func languageKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtonsOnce([]string{"RU", "UZ", "EN"})
}

func phoneKeyboard(lang i18n.Lang) *tele.ReplyMarkup {
	return keyboard.ContactButton(i18n.T(lang, "share_phone"))
}

func mainMenuKeyboard(lang i18n.Lang) *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{i18n.T(lang, "online_events"), i18n.T(lang, "offline_events")},
		[]string{i18n.T(lang, "about_us"), i18n.T(lang, "settings")},
	)
}

func settingsKeyboard(lang i18n.Lang) *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{i18n.T(lang, "change_name"), i18n.T(lang, "change_phone")},
		[]string{i18n.T(lang, "change_lang")},
		[]string{i18n.T(lang, "main_menu_btn")},
	)
}

func adminMenuKeyboard(lang i18n.Lang) *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{i18n.T(lang, "active_events")},
		[]string{i18n.T(lang, "create_cat"), i18n.T(lang, "add_event")},
		[]string{i18n.T(lang, "edit_event")},
		[]string{i18n.T(lang, "exit_admin")},
	)
}

// eventCardButtons builds the register button plus a map link for
// offline events that carry a location.
func eventCardButtons(lang i18n.Lang, card models.EventCard) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{{Text: i18n.T(lang, "register_btn"), Unique: cbRegister, Data: fmt.Sprintf("%d", card.ID)}},
	}
	if card.Location.Valid && card.Location.String != "" {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: i18n.T(lang, "location_label"), URL: card.Location.String},
		})
	}
	return keyboard.InlineButtonsRows(rows...)
}

func confirmButtons(lang i18n.Lang, eventID int64) *tele.ReplyMarkup {
	payload := fmt.Sprintf("%d", eventID)
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: i18n.T(lang, "confirm_btn"), Unique: cbConfirm, Data: payload}},
		[]keyboard.InlineBtn{
			{Text: i18n.T(lang, "edit_name_btn"), Unique: cbEditName, Data: payload},
			{Text: i18n.T(lang, "edit_phone_btn"), Unique: cbEditPhone, Data: payload},
		},
	)
}

func categoryButtons(cats []models.Category) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(cats))
	for _, c := range cats {
		btns = append(btns, keyboard.InlineBtn{Text: c.Name, Unique: cbWizardCat, Data: fmt.Sprintf("%d", c.ID)})
	}
	return keyboard.InlineButtons(btns)
}

func eventPickButtons(items []models.EventListItem, unique string) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(items))
	for _, it := range items {
		btns = append(btns, keyboard.InlineBtn{Text: EventListLine(it), Unique: unique, Data: fmt.Sprintf("%d", it.ID)})
	}
	return keyboard.InlineButtons(btns)
}

// editFieldButtons lists every editable event field plus delete and back.
func editFieldButtons(lang i18n.Lang) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: i18n.T(lang, "field_image"), Unique: cbEditField, Data: "image"},
			{Text: i18n.T(lang, "field_desc"), Unique: cbEditField, Data: "description"},
		},
		[]keyboard.InlineBtn{
			{Text: i18n.T(lang, "field_time"), Unique: cbEditField, Data: "time"},
			{Text: i18n.T(lang, "field_date"), Unique: cbEditField, Data: "date"},
		},
		[]keyboard.InlineBtn{
			{Text: i18n.T(lang, "field_capacity"), Unique: cbEditField, Data: "capacity"},
			{Text: i18n.T(lang, "field_location"), Unique: cbEditField, Data: "location"},
		},
		[]keyboard.InlineBtn{{Text: i18n.T(lang, "delete_btn"), Unique: cbEditDelete, Data: ""}},
		[]keyboard.InlineBtn{{Text: i18n.T(lang, "back_btn"), Unique: cbEditBack, Data: ""}},
	)
}

// aboutButtons renders the configured social links in stable order.
func aboutButtons(social map[string]string) *tele.ReplyMarkup {
	names := make([]string, 0, len(social))
	for name := range social {
		names = append(names, name)
	}
	sort.Strings(names)

	btns := make([]keyboard.InlineBtn, 0, len(names))
	for _, name := range names {
		btns = append(btns, keyboard.InlineBtn{Text: name, URL: social[name]})
	}
	return keyboard.InlineButtons(btns)
}

package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/avlodventures/eventbot/internal/telegram"
	"github.com/avlodventures/eventbot/internal/telegram/callbacks"
	"github.com/avlodventures/eventbot/internal/telegram/commands"
)

// Wiring builds the command registry and update routes for telegram.Run.
func (b *Bot) Wiring() (*telegram.Registry, []telegram.Route) {
	reg := telegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.HandleStart,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     b.HandleAdmin,
		Description: "Admin menu",
		Hidden:      true,
	})
	reg.RegisterCommand("/moder", commands.Command{
		Handler:     b.HandleModer,
		Description: "Attendee lookup",
		Hidden:      true,
	})

	for key, h := range map[string]tele.HandlerFunc{
		cbRegister:   b.OnRegisterTap,
		cbConfirm:    b.OnConfirmTap,
		cbEditName:   b.OnEditNameTap,
		cbEditPhone:  b.OnEditPhoneTap,
		cbWizardCat:  b.OnWizardCategoryTap,
		cbEditPick:   b.OnEditPickTap,
		cbEditField:  b.OnEditFieldTap,
		cbEditDelete: b.OnEditDeleteTap,
		cbEditBack:   b.OnEditBackTap,
		cbModerPick:  b.OnModerPickTap,
	} {
		_ = reg.RegisterCallback(key, h)
	}

	routes := []telegram.Route{
		{Endpoint: tele.OnText, Handler: b.OnText},
		{Endpoint: tele.OnContact, Handler: b.OnContact},
		{Endpoint: tele.OnPhoto, Handler: b.OnPhoto},
		{Endpoint: tele.OnLocation, Handler: b.OnLocation},
		{Endpoint: tele.OnCallback, Handler: dispatchCallback(reg)},
	}
	return reg, routes
}

// dispatchCallback routes inline button taps by their callback key.
func dispatchCallback(reg *telegram.Registry) tele.HandlerFunc {
	return func(c tele.Context) error {
		if h, ok := reg.GetCallback(callbacks.Key(c)); ok {
			return h(c)
		}
		return reg.CallbackNotFound()(c)
	}
}

// Package bot implements the Telegram conversation flows: user
// registration and event booking, admin wizards, and moderator lookups.
package bot

import "github.com/avlodventures/eventbot/internal/session"

// Conversation states. One multi-step form is active per chat at a time.
const (
	StateRegLanguage session.State = "reg_language"
	StateRegName     session.State = "reg_name"
	StateRegPhone    session.State = "reg_phone"

	StateProfileName     session.State = "profile_name"
	StateProfilePhone    session.State = "profile_phone"
	StateProfileLanguage session.State = "profile_language"

	StateAdminPassword         session.State = "admin_password"
	StateAdminMenu             session.State = "admin_menu"
	StateAdminNewCategory      session.State = "admin_new_category"
	StateAdminEventCategory    session.State = "admin_event_category"
	StateAdminEventImage       session.State = "admin_event_image"
	StateAdminEventDescription session.State = "admin_event_description"
	StateAdminEventTime        session.State = "admin_event_time"
	StateAdminEventDate        session.State = "admin_event_date"
	StateAdminEventCapacity    session.State = "admin_event_capacity"
	StateAdminEventLocation    session.State = "admin_event_location"
	StateAdminEditPick         session.State = "admin_edit_pick"
	StateAdminEditMenu         session.State = "admin_edit_menu"
	StateAdminEditValue        session.State = "admin_edit_value"

	StateModerPassword   session.State = "moder_password"
	StateModerPickEvent  session.State = "moder_pick_event"
	StateModerCheckPhone session.State = "moder_check_phone"
)

// Session data keys. pending_event_id survives the profile-edit detour
// taken from the reservation confirmation card.
const (
	keyLanguage        = "language"
	keyDraftName       = "draft_name"
	keyPendingEventID  = "pending_event_id"
	keyReturnToConfirm = "return_to_confirm"

	keyDraftCategoryID  = "draft_category_id"
	keyDraftImage       = "draft_image"
	keyDraftDescription = "draft_description"
	keyDraftTime        = "draft_time"
	keyDraftDate        = "draft_date"
	keyDraftCapacity    = "draft_capacity"

	keyEditEventID  = "edit_event_id"
	keyEditField    = "edit_field"
	keyModerEventID = "moder_event_id"
)

// Callback keys for inline buttons.
const (
	cbRegister   = "evreg"
	cbConfirm    = "evconfirm"
	cbEditName   = "evname"
	cbEditPhone  = "evphone"
	cbWizardCat  = "admcat"
	cbEditPick   = "edpick"
	cbEditField  = "edfield"
	cbEditDelete = "eddel"
	cbEditBack   = "edback"
	cbModerPick  = "modpick"
)

// Package models defines the persisted entities of the event bot.
package models

import "database/sql"

// User is a registered bot user. The primary key is the Telegram user id.
type User struct {
	ID       int64  `db:"user_id"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
	Language string `db:"language"`
}

// Category groups events; "Online" and "Offline" are seeded by migration.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Event is a promoted event. MaxParticipants of 0 means unlimited seats.
// Location holds a map link for offline events and is NULL otherwise.
type Event struct {
	ID              int64          `db:"id"`
	CategoryID      int64          `db:"category_id"`
	ImageRef        string         `db:"image_ref"`
	Description     string         `db:"description"`
	TimeLabel       string         `db:"time_label"`
	DateLabel       string         `db:"date_label"`
	MaxParticipants int            `db:"max_participants"`
	Location        sql.NullString `db:"location"`
}

// EventCard is an event joined with its confirmed registration count,
// used when rendering the browse list.
type EventCard struct {
	Event
	Registered int `db:"registered"`
}

// EventListItem is the short form shown in admin and moderator menus.
type EventListItem struct {
	ID           int64  `db:"id"`
	CategoryName string `db:"category_name"`
	Description  string `db:"description"`
}

// Registration records one reserved seat for a (user, event) pair.
type Registration struct {
	ID      int64 `db:"id"`
	UserID  int64 `db:"user_id"`
	EventID int64 `db:"event_id"`
}

// Attendee is a registration joined with user contact data for
// moderator lookups and spreadsheet export.
type Attendee struct {
	UserID   int64  `db:"user_id"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
}

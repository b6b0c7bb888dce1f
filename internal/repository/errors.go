// Package repository implements PostgreSQL persistence for users,
// categories, events, and registrations using sqlx.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEventFull is returned when an event has no remaining seats.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyRegistered is returned on a duplicate (user, event) reservation.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrDuplicateCategory is returned when a category name already exists.
	ErrDuplicateCategory = errors.New("category already exists")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

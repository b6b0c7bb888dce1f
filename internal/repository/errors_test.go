package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	uv := &pq.Error{Code: "23505", Constraint: "registrations_user_id_event_id_key"}
	if !isUniqueViolation(uv) {
		t.Error("23505 must be detected as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", uv)) {
		t.Error("wrapped 23505 must be detected")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("plain")) {
		t.Error("plain errors are not unique violations")
	}
}

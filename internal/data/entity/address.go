package entity

import (
	"github.com/google/uuid"
)

// Address belongs to one user; at most one per user carries the default
// flag, enforced by clearing the others in the same transaction that sets
// it.
type Address struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	Name       string    `db:"name"`
	Line1      string    `db:"line1"`
	Line2      *string   `db:"line2"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	PostalCode string    `db:"postal_code"`
	Country    string    `db:"country"`
	IsDefault  bool      `db:"is_default"`
}

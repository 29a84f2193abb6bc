package entity

import "time"

// PendingRegistration carries the emailed 6-digit code between signup and
// verification. Rows expire after a day or are deleted on success.
type PendingRegistration struct {
	BaseSimple
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	Name         string    `db:"name"`
	Code         string    `db:"code"`
	ExpiresAt    time.Time `db:"expires_at"`
}

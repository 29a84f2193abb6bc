package entity

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User rows are never hard-deleted. PasswordHash is nil for accounts
// created through an external identity provider.
type User struct {
	Base
	Email         string     `db:"email"`
	Name          string     `db:"name"`
	PasswordHash  *string    `db:"password"`
	Role          UserRole   `db:"role"`
	EmailVerified bool       `db:"email_verified"`
	LastActiveAt  *time.Time `db:"last_active_at"`
}

package entity

import (
	"github.com/google/uuid"
)

// WishlistItem is unique per (user, product); duplicate adds are no-ops.
type WishlistItem struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	ProductID uuid.UUID `db:"product_id"`
}

package entity

import (
	"github.com/google/uuid"
)

// Product owns ordered images, an unordered tag set and a list of variants.
// Product-level stock is authoritative for the order flow; variant stock is
// tracked independently in the schema.
type Product struct {
	BaseNoDelete
	Slug           string    `db:"slug"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Price          float64   `db:"price"`
	CompareAtPrice *float64  `db:"compare_at_price"`
	CategoryID     uuid.UUID `db:"category_id"`
	Featured       bool      `db:"featured"`
	Rating         float64   `db:"rating"`
	ReviewCount    int       `db:"review_count"`
	Stock          int       `db:"stock"`
}

type ProductImage struct {
	ID        uuid.UUID `db:"id"`
	ProductID uuid.UUID `db:"product_id"`
	URL       string    `db:"url"`
	SortOrder int       `db:"sort_order"`
}

type ProductVariant struct {
	ID        uuid.UUID `db:"id"`
	ProductID uuid.UUID `db:"product_id"`
	SKU       string    `db:"sku"`
	Price     float64   `db:"price"`
	Stock     int       `db:"stock"`
	Available bool      `db:"available"`
}

package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanTransition reports whether an order may move from one status to
// another. Progression is strictly forward; cancellation is only reachable
// while the order has not shipped.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

// Order keeps a denormalized shipping address snapshot; later edits to the
// user's address book never change a placed order.
type Order struct {
	Base
	OrderNumber    string      `db:"order_number"`
	UserID         uuid.UUID   `db:"user_id"`
	Subtotal       float64     `db:"subtotal"`
	Shipping       float64     `db:"shipping"`
	Tax            float64     `db:"tax"`
	Total          float64     `db:"total"`
	Status         OrderStatus `db:"status"`
	ShipName       string      `db:"ship_name"`
	ShipLine1      string      `db:"ship_line1"`
	ShipLine2      *string     `db:"ship_line2"`
	ShipCity       string      `db:"ship_city"`
	ShipState      string      `db:"ship_state"`
	ShipPostalCode string      `db:"ship_postal_code"`
	ShipCountry    string      `db:"ship_country"`
}

type OrderItem struct {
	ID        uuid.UUID  `db:"id"`
	OrderID   uuid.UUID  `db:"order_id"`
	ProductID uuid.UUID  `db:"product_id"`
	VariantID *uuid.UUID `db:"variant_id"`
	Quantity  int        `db:"quantity"`
	UnitPrice float64    `db:"unit_price"`
}

package response

import (
	"time"

	"storefront/internal/data/entity"
)

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type ShippingAddressResponse struct {
	Name       string  `json:"name"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

type OrderResponse struct {
	ID          string             `json:"id"`
	OrderNumber string             `json:"order_number"`
	Subtotal    float64            `json:"subtotal"`
	Shipping    float64            `json:"shipping"`
	Tax         float64            `json:"tax"`
	Total       float64            `json:"total"`
	Status      entity.OrderStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items           []OrderItemResponse     `json:"items"`
	ShippingAddress ShippingAddressResponse `json:"shipping_address"`
}

// Helper converters
func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Subtotal:    order.Subtotal,
		Shipping:    order.Shipping,
		Tax:         order.Tax,
		Total:       order.Total,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToResponse(order))
	}
	return result
}

func OrderDetailToResponse(order *entity.Order, items []*entity.OrderItem) OrderDetailResponse {
	detail := OrderDetailResponse{
		OrderResponse: OrderToResponse(order),
		Items:         make([]OrderItemResponse, 0, len(items)),
		ShippingAddress: ShippingAddressResponse{
			Name:       order.ShipName,
			Line1:      order.ShipLine1,
			Line2:      order.ShipLine2,
			City:       order.ShipCity,
			State:      order.ShipState,
			PostalCode: order.ShipPostalCode,
			Country:    order.ShipCountry,
		},
	}
	for _, item := range items {
		itemResp := OrderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if item.VariantID != nil {
			variantID := item.VariantID.String()
			itemResp.VariantID = &variantID
		}
		detail.Items = append(detail.Items, itemResp)
	}
	return detail
}

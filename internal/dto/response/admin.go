package response

import (
	"time"

	"storefront/internal/data/entity"
)

type CustomerResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

type AdminOrderResponse struct {
	OrderResponse
	UserID string `json:"user_id"`
}

type StatsResponse struct {
	TotalRevenue   float64           `json:"total_revenue"`
	TotalOrders    int64             `json:"total_orders"`
	TotalCustomers int64             `json:"total_customers"`
	TotalProducts  int64             `json:"total_products"`
	LowStock       []ProductResponse `json:"low_stock"`
}

type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// Helper converters
func CustomerToResponse(user *entity.User) CustomerResponse {
	return CustomerResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Name:         user.Name,
		CreatedAt:    user.CreatedAt,
		LastActiveAt: user.LastActiveAt,
	}
}

func CustomersToResponse(users []*entity.User) []CustomerResponse {
	result := make([]CustomerResponse, 0, len(users))
	for _, user := range users {
		result = append(result, CustomerToResponse(user))
	}
	return result
}

func AdminOrderToResponse(order *entity.Order) AdminOrderResponse {
	return AdminOrderResponse{
		OrderResponse: OrderToResponse(order),
		UserID:        order.UserID.String(),
	}
}

func AdminOrdersToResponse(orders []*entity.Order) []AdminOrderResponse {
	result := make([]AdminOrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, AdminOrderToResponse(order))
	}
	return result
}

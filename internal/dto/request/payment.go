package request

type CreateIntentRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	OrderID *string `json:"order_id,omitempty"`
}

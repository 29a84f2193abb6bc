package request

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

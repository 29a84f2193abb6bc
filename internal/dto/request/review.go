package request

type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type AddWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
}

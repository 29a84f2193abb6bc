package response

import (
	"time"

	"storefront/internal/data/entity"
)

type CategoryResponse struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type ProductResponse struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price,omitempty"`
	CategoryID     string   `json:"category_id"`
	Featured       bool     `json:"featured"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"review_count"`
	Stock          int      `json:"stock"`
	InStock        bool     `json:"in_stock"`
}

type ProductImageResponse struct {
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

type ProductVariantResponse struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Available bool    `json:"available"`
}

type ProductDetailResponse struct {
	ProductResponse
	Images   []ProductImageResponse   `json:"images"`
	Tags     []string                 `json:"tags"`
	Variants []ProductVariantResponse `json:"variants"`
}

type WishlistItemResponse struct {
	Product ProductResponse `json:"product"`
	AddedAt time.Time       `json:"added_at,omitempty"`
}

// Helper converters
func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Slug:        category.Slug,
		Name:        category.Name,
		Description: category.Description,
		ImageURL:    category.ImageURL,
	}
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID.String(),
		Slug:           product.Slug,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		CompareAtPrice: product.CompareAtPrice,
		CategoryID:     product.CategoryID.String(),
		Featured:       product.Featured,
		Rating:         product.Rating,
		ReviewCount:    product.ReviewCount,
		Stock:          product.Stock,
		InStock:        product.Stock > 0,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		result = append(result, ProductToResponse(product))
	}
	return result
}

func ProductDetailToResponse(product *entity.Product, images []*entity.ProductImage, tags []string, variants []*entity.ProductVariant) ProductDetailResponse {
	detail := ProductDetailResponse{
		ProductResponse: ProductToResponse(product),
		Images:          make([]ProductImageResponse, 0, len(images)),
		Tags:            tags,
		Variants:        make([]ProductVariantResponse, 0, len(variants)),
	}
	if detail.Tags == nil {
		detail.Tags = []string{}
	}
	for _, image := range images {
		detail.Images = append(detail.Images, ProductImageResponse{
			URL:       image.URL,
			SortOrder: image.SortOrder,
		})
	}
	for _, variant := range variants {
		detail.Variants = append(detail.Variants, ProductVariantResponse{
			ID:        variant.ID.String(),
			SKU:       variant.SKU,
			Price:     variant.Price,
			Stock:     variant.Stock,
			Available: variant.Available,
		})
	}
	return detail
}

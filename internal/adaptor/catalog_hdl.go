package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, categories)
}

// GetCategory handles GET /categories/{slug}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, products, err := h.service.GetCategory(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get category")
		return
	}

	utils.ResponseSuccess(w, map[string]any{
		"category": category,
		"products": products,
	})
}

// ListProducts handles GET /products?category=<slug>&page=&per_page=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.URL.Query().Get("category")

	products, err := h.service.ListProducts(r.Context(), categorySlug, paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, products)
}

// ListFeatured handles GET /products/featured
func (h *CatalogHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListFeatured(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list featured products")
		return
	}

	utils.ResponseSuccess(w, products)
}

// GetProduct handles GET /products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.GetProduct(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, product)
}

// ListReviews handles GET /reviews/{productID}
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	reviews, err := h.service.ListReviews(r.Context(), productID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// CreateReview handles POST /reviews/{productID} (protected)
func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID := chi.URLParam(r, "productID")

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID.String(), productID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, review)
}

// GetWishlist handles GET /wishlist (protected)
func (h *CatalogHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	products, err := h.service.GetWishlist(r.Context(), userID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get wishlist")
		return
	}

	if products == nil {
		products = []response.ProductResponse{}
	}
	utils.ResponseSuccess(w, products)
}

// AddToWishlist handles POST /wishlist (protected)
func (h *CatalogHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AddToWishlist(r.Context(), userID.String(), &req); err != nil {
		handleServiceError(w, h.log, err, "add to wishlist")
		return
	}

	utils.ResponseSuccess(w, map[string]string{"message": "Added to wishlist"})
}

// RemoveFromWishlist handles DELETE /wishlist/{productID} (protected)
func (h *CatalogHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID := chi.URLParam(r, "productID")

	if err := h.service.RemoveFromWishlist(r.Context(), userID.String(), productID); err != nil {
		handleServiceError(w, h.log, err, "remove from wishlist")
		return
	}

	utils.ResponseSuccess(w, map[string]string{"message": "Removed from wishlist"})
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const featuredLimit = 8

type CatalogService interface {
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetCategory(ctx context.Context, slug string) (*response.CategoryResponse, []response.ProductResponse, error)
	ListProducts(ctx context.Context, categorySlug string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	ListFeatured(ctx context.Context) ([]response.ProductResponse, error)
	GetProduct(ctx context.Context, slug string) (*response.ProductDetailResponse, error)

	ListReviews(ctx context.Context, productID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	CreateReview(ctx context.Context, userID, productID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)

	GetWishlist(ctx context.Context, userID string) ([]response.ProductResponse, error)
	AddToWishlist(ctx context.Context, userID string, req *request.AddWishlistRequest) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	result := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, response.CategoryToResponse(category))
	}
	return result, nil
}

func (s *catalogService) GetCategory(ctx context.Context, slug string) (*response.CategoryResponse, []response.ProductResponse, error) {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, nil, fmt.Errorf("%w: category not found", ErrNotFound)
	}

	products, err := s.repo.Product.FindAll(ctx, &category.ID, 100, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("list category products: %w", err)
	}

	resp := response.CategoryToResponse(category)
	return &resp, response.ProductsToResponse(products), nil
}

func (s *catalogService) ListProducts(ctx context.Context, categorySlug string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	var categoryID *uuid.UUID
	if categorySlug != "" {
		category, err := s.repo.Category.FindBySlug(ctx, categorySlug)
		if err != nil {
			return nil, fmt.Errorf("find category: %w", err)
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category not found", ErrNotFound)
		}
		categoryID = &category.ID
	}

	products, err := s.repo.Product.FindAll(ctx, categoryID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.repo.Product.CountAll(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	return response.NewPaginatedResponse(response.ProductsToResponse(products), page, req.Limit(), total), nil
}

func (s *catalogService) ListFeatured(ctx context.Context) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}

	return response.ProductsToResponse(products), nil
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (*response.ProductDetailResponse, error) {
	product, err := s.repo.Product.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}

	images, err := s.repo.Product.FindImages(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load product images: %w", err)
	}

	tags, err := s.repo.Product.FindTags(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load product tags: %w", err)
	}

	variants, err := s.repo.Product.FindVariants(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load product variants: %w", err)
	}

	detail := response.ProductDetailToResponse(product, images, tags, variants)
	return &detail, nil
}

func (s *catalogService) ListReviews(ctx context.Context, productID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	pid, err := utils.ParseUUID(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product ID", ErrNotFound)
	}

	reviews, err := s.repo.Review.FindByProductID(ctx, pid, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByProductID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), page, req.Limit(), total), nil
}

func (s *catalogService) CreateReview(ctx context.Context, userID, productID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	pid, err := utils.ParseUUID(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product ID", ErrNotFound)
	}

	product, err := s.repo.Product.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}

	exists, err := s.repo.Review.ExistsByProductAndUser(ctx, pid, uid)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: product already reviewed", ErrConflict)
	}

	user, err := s.repo.User.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		ProductID: pid,
		UserID:    uid,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserName:  user.Name,
	}

	if err := s.repo.Review.CreateAndRecalc(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *catalogService) GetWishlist(ctx context.Context, userID string) ([]response.ProductResponse, error) {
	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	products, err := s.repo.Wishlist.FindByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	return response.ProductsToResponse(products), nil
}

func (s *catalogService) AddToWishlist(ctx context.Context, userID string, req *request.AddWishlistRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	pid, err := utils.ParseUUID(req.ProductID)
	if err != nil {
		return fmt.Errorf("%w: invalid product ID", ErrNotFound)
	}

	product, err := s.repo.Product.FindByID(ctx, pid)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("%w: product not found", ErrNotFound)
	}

	item := &entity.WishlistItem{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:    uid,
		ProductID: pid,
	}

	// Re-adding reports success; the insert is a no-op.
	if err := s.repo.Wishlist.Add(ctx, item); err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

func (s *catalogService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	uid, err := utils.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrNotFound)
	}

	pid, err := utils.ParseUUID(productID)
	if err != nil {
		return fmt.Errorf("%w: invalid product ID", ErrNotFound)
	}

	if err := s.repo.Wishlist.Remove(ctx, uid, pid); err != nil {
		return fmt.Errorf("%w: wishlist item not found", ErrNotFound)
	}

	return nil
}

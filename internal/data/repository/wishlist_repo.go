package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWishlistRepository(db database.PgxIface, log *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "wishlist")),
	}
}

// Add is idempotent: re-adding a wishlisted product is a no-op.
func (r *wishlistRepository) Add(ctx context.Context, item *entity.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, item.ID, item.UserID, item.ProductID)
	if err != nil {
		r.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.slug, p.name, p.description, p.price, p.compare_at_price,
			p.category_id, p.featured, p.rating, p.review_count, p.stock, p.created_at, p.updated_at
		FROM products p
		JOIN wishlist_items w ON w.product_id = p.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to get wishlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find wishlist for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	tag, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		r.log.Error("Failed to remove wishlist item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("remove wishlist item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item for product %s not found", productID.String())
	}

	return nil
}

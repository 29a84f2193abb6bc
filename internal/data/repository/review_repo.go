package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	// CreateAndRecalc inserts the review and refreshes the product's
	// denormalized rating and review_count in the same transaction.
	CreateAndRecalc(ctx context.Context, review *entity.Review) error
	FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	ExistsByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) CreateAndRecalc(ctx context.Context, review *entity.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin review transaction", zap.Error(err))
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err = tx.Exec(ctx, insertQuery,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Comment,
	)
	if err != nil {
		r.log.Error("Failed to insert review",
			zap.Error(err),
			zap.String("product_id", review.ProductID.String()),
		)
		return fmt.Errorf("insert review: %w", err)
	}

	recalcQuery := `
		UPDATE products p
		SET rating = sub.avg_rating, review_count = sub.total, updated_at = NOW()
		FROM (
			SELECT AVG(rating)::NUMERIC(3,2) AS avg_rating, COUNT(*) AS total
			FROM reviews
			WHERE product_id = $1
		) sub
		WHERE p.id = $1
	`
	_, err = tx.Exec(ctx, recalcQuery, review.ProductID)
	if err != nil {
		r.log.Error("Failed to recalculate product rating",
			zap.Error(err),
			zap.String("product_id", review.ProductID.String()),
		)
		return fmt.Errorf("recalculate rating for product %s: %w", review.ProductID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit review transaction", zap.Error(err))
		return fmt.Errorf("commit review transaction: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT rv.id, rv.product_id, rv.user_id, rv.rating, rv.comment, rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		r.log.Error("Failed to get reviews",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find reviews for product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UserName,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, fmt.Errorf("count reviews for product %s: %w", productID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) ExistsByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`

	err := r.db.QueryRow(ctx, query, productID, userID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check review existence",
			zap.Error(err),
			zap.String("product_id", productID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("check review existence: %w", err)
	}

	return exists, nil
}

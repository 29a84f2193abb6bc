package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrProductNotFound distinguishes a zero-row stock update from a failed
// one; nothing is committed in either case.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	FindAll(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context, categoryID *uuid.UUID) (int64, error)
	FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error)
	FindImages(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error)
	FindTags(ctx context.Context, productID uuid.UUID) ([]string, error)
	FindVariants(ctx context.Context, productID uuid.UUID) ([]*entity.ProductVariant, error)

	// AdjustStock applies a read-modify-write inside one transaction and
	// returns the new stock level.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, slug, name, description, price, compare_at_price,
	category_id, featured, rating, review_count, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.Slug,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CompareAtPrice,
		&product.CategoryID,
		&product.Featured,
		&product.Rating,
		&product.ReviewCount,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find product by slug %s: %w", slug, err)
	}

	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}

	if categoryID != nil {
		query += ` WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, *categoryID, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) CountAll(ctx context.Context, categoryID *uuid.UUID) (int64, error) {
	var count int64
	var err error

	if categoryID != nil {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, *categoryID).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	}

	if err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE featured = TRUE ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to get featured products", zap.Error(err))
		return nil, fmt.Errorf("find featured products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) FindImages(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, url, sort_order
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to get product images",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find images for product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var images []*entity.ProductImage
	for rows.Next() {
		var image entity.ProductImage
		if err := rows.Scan(&image.ID, &image.ProductID, &image.URL, &image.SortOrder); err != nil {
			r.log.Error("Failed to scan image row", zap.Error(err))
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images rows: %w", err)
	}

	return images, nil
}

func (r *productRepository) FindTags(ctx context.Context, productID uuid.UUID) ([]string, error) {
	query := `SELECT tag FROM product_tags WHERE product_id = $1`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to get product tags",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find tags for product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			r.log.Error("Failed to scan tag row", zap.Error(err))
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags rows: %w", err)
	}

	return tags, nil
}

func (r *productRepository) FindVariants(ctx context.Context, productID uuid.UUID) ([]*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, sku, price, stock, available
		FROM product_variants
		WHERE product_id = $1
		ORDER BY sku
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to get product variants",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find variants for product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var variants []*entity.ProductVariant
	for rows.Next() {
		var variant entity.ProductVariant
		err := rows.Scan(
			&variant.ID,
			&variant.ProductID,
			&variant.SKU,
			&variant.Price,
			&variant.Stock,
			&variant.Available,
		)
		if err != nil {
			r.log.Error("Failed to scan variant row", zap.Error(err))
			return nil, fmt.Errorf("scan variant row: %w", err)
		}
		variants = append(variants, &variant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants rows: %w", err)
	}

	return variants, nil
}

// AdjustStock holds one connection and one transaction for the whole
// read-modify-write so concurrent adjustments cannot lose updates. A
// missing product rolls back and reports ErrProductNotFound.
func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin stock adjustment", zap.Error(err))
		return 0, fmt.Errorf("begin stock adjustment: %w", err)
	}
	defer tx.Rollback(ctx)

	var stock int
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&stock)
	if err == pgx.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock product row",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return 0, fmt.Errorf("lock product %s: %w", id.String(), err)
	}

	newStock := stock + delta
	_, err = tx.Exec(ctx, `UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1`, id, newStock)
	if err != nil {
		r.log.Error("Failed to update stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("delta", delta),
		)
		return 0, fmt.Errorf("update stock for product %s: %w", id.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit stock adjustment", zap.Error(err))
		return 0, fmt.Errorf("commit stock adjustment: %w", err)
	}

	return newStock, nil
}

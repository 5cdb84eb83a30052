package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// GetProduct returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, productID string) (*Product, error)
	UpdateVariants(ctx context.Context, productID string, variants []Variant) error
	GetApprovedStoreID(ctx context.Context, userID string) (string, error)
	ToggleStock(ctx context.Context, storeID, productID string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", productID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id, p.store_id, p.name, p.price, p.mrp, p.in_stock,
			v.label, v.stock
		FROM products p
		LEFT JOIN product_variants v ON v.product_id = p.id
		WHERE p.id = $1
		ORDER BY v.position
	`, productID)
	if err != nil {
		log.Error("failed to query product", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var p *Product
	for rows.Next() {
		var (
			row   Product
			label sql.NullString
			stock sql.NullInt64
		)
		if err := rows.Scan(
			&row.ID, &row.StoreID, &row.Name, &row.Price, &row.MRP, &row.InStock,
			&label, &stock,
		); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}

		if p == nil {
			p = &row
		}
		if label.Valid {
			p.Variants = append(p.Variants, Variant{Label: label.String, Stock: int(stock.Int64)})
		}
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if p == nil {
		log.Debug("product not found")
	}
	return p, nil
}

// UpdateVariants rewrites the whole variant table, keeping the given order.
func (r *repository) UpdateVariants(ctx context.Context, productID string, variants []Variant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}

	for i, v := range variants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO product_variants (product_id, label, stock, position)
			VALUES ($1, $2, $3, $4)
		`, productID, v.Label, v.Stock, i)
		if err != nil {
			return fmt.Errorf("failed to insert variant %q: %w", v.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetApprovedStoreID returns "" when the user owns no approved store.
func (r *repository) GetApprovedStoreID(ctx context.Context, userID string) (string, error) {
	var storeID string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM stores
		WHERE user_id = $1 AND status = 'approved'
	`, userID).Scan(&storeID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return storeID, nil
}

func (r *repository) ToggleStock(ctx context.Context, storeID, productID string) (bool, error) {
	var inStock bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET in_stock = NOT in_stock, updated_at = NOW()
		WHERE id = $1 AND store_id = $2
		RETURNING in_stock
	`, productID, storeID).Scan(&inStock)

	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrProductNotFound
	}
	if err != nil {
		return false, err
	}
	return inStock, nil
}

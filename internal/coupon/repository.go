package coupon

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// GetByCode returns nil, nil when no coupon has the code.
	GetByCode(ctx context.Context, code string) (*Coupon, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var c Coupon
	err := r.db.QueryRowContext(ctx, `
		SELECT code, description, discount, for_new_user, for_member
		FROM coupons
		WHERE code = $1
	`, code).Scan(&c.Code, &c.Description, &c.Discount, &c.ForNewUser, &c.ForMember)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get coupon",
			zap.String("layer", "repository"),
			zap.String("method", "GetByCode"),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, err
	}
	return &c, nil
}

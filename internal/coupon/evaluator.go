package coupon

import (
	"context"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// OrderHistory tells whether a user has placed any order, in any status.
type OrderHistory interface {
	HasOrders(ctx context.Context, userID string) (bool, error)
}

type Evaluator interface {
	// Evaluate resolves the coupon for one checkout. An empty code yields
	// nil, nil. It reads only and may be called before any stock check.
	Evaluate(ctx context.Context, code, userID string, isMember bool) (*Coupon, error)
}

type evaluator struct {
	repo    Repository
	history OrderHistory
}

func NewEvaluator(repo Repository, history OrderHistory) Evaluator {
	return &evaluator{repo: repo, history: history}
}

func (e *evaluator) Evaluate(ctx context.Context, code, userID string, isMember bool) (*Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Evaluate"),
		zap.String("code", code),
	)

	c, err := e.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		log.Info("coupon not found")
		return nil, ErrCouponNotFound
	}

	if c.ForNewUser {
		hasOrders, err := e.history.HasOrders(ctx, userID)
		if err != nil {
			return nil, err
		}
		if hasOrders {
			log.Info("coupon rejected: user has orders")
			return nil, ErrNotNewUser
		}
	}

	if c.ForMember && !isMember {
		log.Info("coupon rejected: not a member")
		return nil, ErrMembersOnly
	}

	return c, nil
}

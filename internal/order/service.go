package order

import (
	"context"

	"storefront-be/internal/address"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListOrders(ctx context.Context, userID string) ([]*Order, error)
}

type AddressReader interface {
	GetByIDs(ctx context.Context, userID string, ids []string) (map[string]*address.Address, error)
}

type service struct {
	repo      Repository
	addresses AddressReader
}

func NewService(repo Repository, addresses AddressReader) Service {
	return &service{repo: repo, addresses: addresses}
}

// ListOrders returns the user's visible orders, newest first, each with its
// delivery address when one is still on file.
func (s *service) ListOrders(ctx context.Context, userID string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListOrders"),
	)

	if userID == "" {
		return nil, ErrUserRequired
	}

	orders, err := s.repo.ListVisibleOrders(ctx, userID)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	if len(orders) == 0 {
		return []*Order{}, nil
	}

	ids := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.AddressID]; ok {
			continue
		}
		seen[o.AddressID] = struct{}{}
		ids = append(ids, o.AddressID)
	}

	addrs, err := s.addresses.GetByIDs(ctx, userID, ids)
	if err != nil {
		log.Error("failed to load addresses", zap.Error(err))
		return nil, err
	}
	for _, o := range orders {
		o.Address = addrs[o.AddressID]
	}

	return orders, nil
}

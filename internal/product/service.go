package product

import (
	"context"
	"fmt"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Service holds the seller-side catalog operations.
type Service interface {
	ToggleStock(ctx context.Context, userID, productID string) (bool, error)
	UpdateVariants(ctx context.Context, userID, productID string, variants []Variant) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ToggleStock(ctx context.Context, userID, productID string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ToggleStock"),
		zap.String("product_id", productID),
	)

	storeID, err := s.sellerStore(ctx, userID)
	if err != nil {
		return false, err
	}

	inStock, err := s.repo.ToggleStock(ctx, storeID, productID)
	if err != nil {
		log.Warn("failed to toggle stock", zap.Error(err))
		return false, err
	}

	log.Info("stock toggled", zap.Bool("in_stock", inStock))
	return inStock, nil
}

func (s *service) UpdateVariants(ctx context.Context, userID, productID string, variants []Variant) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateVariants"),
		zap.String("product_id", productID),
		zap.Int("variant_count", len(variants)),
	)

	if err := validateVariants(variants); err != nil {
		return err
	}

	storeID, err := s.sellerStore(ctx, userID)
	if err != nil {
		return err
	}

	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || p.StoreID != storeID {
		return ErrProductNotFound
	}

	if err := s.repo.UpdateVariants(ctx, productID, variants); err != nil {
		log.Error("failed to update variants", zap.Error(err))
		return err
	}

	log.Info("variants updated")
	return nil
}

func (s *service) sellerStore(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNotSeller
	}
	storeID, err := s.repo.GetApprovedStoreID(ctx, userID)
	if err != nil {
		return "", err
	}
	if storeID == "" {
		return "", ErrNotSeller
	}
	return storeID, nil
}

func validateVariants(variants []Variant) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if v.Label == "" || v.Stock < 0 {
			return fmt.Errorf("%w: size %q has stock %d", ErrInvalidVariants, v.Label, v.Stock)
		}
		if _, dup := seen[v.Label]; dup {
			return fmt.Errorf("%w: duplicate size %q", ErrInvalidVariants, v.Label)
		}
		seen[v.Label] = struct{}{}
	}
	return nil
}

package cart

import (
	"context"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetCart(ctx context.Context, userID string) (Cart, error)
	SaveCart(ctx context.Context, userID string, c Cart) (Cart, error)
	AddItem(ctx context.Context, params AddItemParams) (Cart, error)
	RemoveItem(ctx context.Context, params RemoveItemParams) (Cart, error)
	DeleteItem(ctx context.Context, params RemoveItemParams) (Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) GetCart(ctx context.Context, userID string) (Cart, error) {
	if userID == "" {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.store.Get(ctx, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get cart",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, ErrFailedGetCart
	}
	return c, nil
}

// SaveCart replaces the stored cart, dropping lines with a non-positive quantity.
func (s *service) SaveCart(ctx context.Context, userID string, c Cart) (Cart, error) {
	if userID == "" {
		return nil, ErrUserNotAuthenticated
	}

	clean := make(Cart, len(c))
	for key, qty := range c {
		if key == "" || qty <= 0 {
			continue
		}
		clean[key] = qty
	}

	if err := s.store.Replace(ctx, userID, clean); err != nil {
		logger.FromCtx(ctx).Error("failed to save cart",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.Int("lines", len(clean)),
			zap.Error(err),
		)
		return nil, ErrFailedSaveCart
	}
	return clean, nil
}

func (s *service) AddItem(ctx context.Context, params AddItemParams) (Cart, error) {
	if params.UserID == "" {
		return nil, ErrUserNotAuthenticated
	}
	if params.ProductID == "" {
		return nil, ErrInvalidProductID
	}

	key := EncodeKey(params.ProductID, params.Variant)
	if _, err := s.store.Increment(ctx, params.UserID, key, 1); err != nil {
		logger.FromCtx(ctx).Error("failed to add cart item",
			zap.String("layer", "service"),
			zap.String("cart_key", key),
			zap.Error(err),
		)
		return nil, ErrFailedSaveCart
	}
	return s.GetCart(ctx, params.UserID)
}

// RemoveItem takes one unit off a line; the line disappears at zero.
func (s *service) RemoveItem(ctx context.Context, params RemoveItemParams) (Cart, error) {
	if params.UserID == "" {
		return nil, ErrUserNotAuthenticated
	}

	current, err := s.GetCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	key := EncodeKey(params.ProductID, params.Variant)
	if _, ok := current[key]; !ok {
		return nil, ErrCartItemNotFound
	}

	if _, err := s.store.Increment(ctx, params.UserID, key, -1); err != nil {
		logger.FromCtx(ctx).Error("failed to remove cart item",
			zap.String("layer", "service"),
			zap.String("cart_key", key),
			zap.Error(err),
		)
		return nil, ErrFailedSaveCart
	}
	return s.GetCart(ctx, params.UserID)
}

// DeleteItem drops a whole line regardless of quantity.
func (s *service) DeleteItem(ctx context.Context, params RemoveItemParams) (Cart, error) {
	if params.UserID == "" {
		return nil, ErrUserNotAuthenticated
	}

	key := EncodeKey(params.ProductID, params.Variant)
	if err := s.store.Remove(ctx, params.UserID, key); err != nil {
		if errors.Is(err, ErrCartItemNotFound) {
			return nil, err
		}
		logger.FromCtx(ctx).Error("failed to delete cart item",
			zap.String("layer", "service"),
			zap.String("cart_key", key),
			zap.Error(err),
		)
		return nil, ErrFailedSaveCart
	}
	return s.GetCart(ctx, params.UserID)
}

// ClearCart empties the cart; checkout calls it once orders are committed.
func (s *service) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUserNotAuthenticated
	}

	if err := s.store.Clear(ctx, userID); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return ErrFailedClearCart
	}
	return nil
}

package handler

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/order"
	"storefront-be/internal/product"

	"github.com/stretchr/testify/mock"
)

type MockCheckoutService struct{ mock.Mock }

func (m *MockCheckoutService) Checkout(ctx context.Context, req checkout.Request) (*checkout.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Result), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) ListOrders(ctx context.Context, userID string) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) cartResult(args mock.Arguments) (cart.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cart.Cart), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (cart.Cart, error) {
	return m.cartResult(m.Called(ctx, userID))
}

func (m *MockCartService) SaveCart(ctx context.Context, userID string, c cart.Cart) (cart.Cart, error) {
	return m.cartResult(m.Called(ctx, userID, c))
}

func (m *MockCartService) AddItem(ctx context.Context, params cart.AddItemParams) (cart.Cart, error) {
	return m.cartResult(m.Called(ctx, params))
}

func (m *MockCartService) RemoveItem(ctx context.Context, params cart.RemoveItemParams) (cart.Cart, error) {
	return m.cartResult(m.Called(ctx, params))
}

func (m *MockCartService) DeleteItem(ctx context.Context, params cart.RemoveItemParams) (cart.Cart, error) {
	return m.cartResult(m.Called(ctx, params))
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) ToggleStock(ctx context.Context, userID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductService) UpdateVariants(ctx context.Context, userID, productID string, variants []product.Variant) error {
	return m.Called(ctx, userID, productID, variants).Error(0)
}

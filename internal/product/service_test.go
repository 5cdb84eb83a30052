package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) UpdateVariants(ctx context.Context, productID string, variants []Variant) error {
	args := m.Called(ctx, productID, variants)
	return args.Error(0)
}

func (m *MockRepository) GetApprovedStoreID(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) ToggleStock(ctx context.Context, storeID, productID string) (bool, error) {
	args := m.Called(ctx, storeID, productID)
	return args.Bool(0), args.Error(1)
}

func TestService_ToggleStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Not a seller", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetApprovedStoreID", ctx, "u1").Return("", nil)

		_, err := NewService(repo).ToggleStock(ctx, "u1", "p1")
		assert.ErrorIs(t, err, ErrNotSeller)
		repo.AssertNotCalled(t, "ToggleStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Anonymous", func(t *testing.T) {
		_, err := NewService(new(MockRepository)).ToggleStock(ctx, "", "p1")
		assert.ErrorIs(t, err, ErrNotSeller)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetApprovedStoreID", ctx, "u1").Return("s1", nil)
		repo.On("ToggleStock", ctx, "s1", "p1").Return(true, nil)

		inStock, err := NewService(repo).ToggleStock(ctx, "u1", "p1")
		assert.NoError(t, err)
		assert.True(t, inStock)
	})
}

func TestService_UpdateVariants(t *testing.T) {
	ctx := context.Background()
	variants := []Variant{{Label: "S", Stock: 2}, {Label: "M", Stock: 0}}

	t.Run("Rejects negative stock", func(t *testing.T) {
		err := NewService(new(MockRepository)).UpdateVariants(ctx, "u1", "p1", []Variant{{Label: "S", Stock: -1}})
		assert.ErrorIs(t, err, ErrInvalidVariants)
	})

	t.Run("Rejects duplicate labels", func(t *testing.T) {
		err := NewService(new(MockRepository)).UpdateVariants(ctx, "u1", "p1", []Variant{{"S", 1}, {"S", 2}})
		assert.ErrorIs(t, err, ErrInvalidVariants)
	})

	t.Run("Product of another store", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetApprovedStoreID", ctx, "u1").Return("s1", nil)
		repo.On("GetProduct", ctx, "p1").Return(&Product{ID: "p1", StoreID: "s2"}, nil)

		err := NewService(repo).UpdateVariants(ctx, "u1", "p1", variants)
		assert.ErrorIs(t, err, ErrProductNotFound)
		repo.AssertNotCalled(t, "UpdateVariants", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetApprovedStoreID", ctx, "u1").Return("s1", nil)
		repo.On("GetProduct", ctx, "p1").Return(&Product{ID: "p1", StoreID: "s1"}, nil)
		repo.On("UpdateVariants", ctx, "p1", variants).Return(nil)

		assert.NoError(t, NewService(repo).UpdateVariants(ctx, "u1", "p1", variants))
		repo.AssertExpectations(t)
	})
}

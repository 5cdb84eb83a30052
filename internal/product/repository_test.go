package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "store_id", "name", "price", "mrp", "in_stock", "label", "stock"}

func TestRepository_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("With variants in position order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(productColumns).
			AddRow("p1", "s1", "Shirt", "1000.00", "1200.00", true, "S", 4).
			AddRow("p1", "s1", "Shirt", "1000.00", "1200.00", true, "M", 0)

		mock.ExpectQuery(`(?s)SELECT .* FROM products p LEFT JOIN product_variants v .* WHERE p.id = \$1`).
			WithArgs("p1").
			WillReturnRows(rows)

		p, err := NewRepository(db).GetProduct(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "s1", p.StoreID)
		assert.Equal(t, "1000", p.Price.String())
		assert.Equal(t, []Variant{{Label: "S", Stock: 4}, {Label: "M", Stock: 0}}, p.Variants)
		assert.True(t, p.TracksStock())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Without variants", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(productColumns).
			AddRow("p2", "s1", "Poster", "250.50", "300.00", true, nil, nil)
		mock.ExpectQuery(`SELECT`).WithArgs("p2").WillReturnRows(rows)

		p, err := NewRepository(db).GetProduct(ctx, "p2")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Empty(t, p.Variants)
		assert.False(t, p.TracksStock())
	})

	t.Run("Not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(productColumns))

		p, err := NewRepository(db).GetProduct(ctx, "nope")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("Query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db error"))

		_, err = NewRepository(db).GetProduct(ctx, "p1")
		assert.Error(t, err)
	})
}

func TestRepository_UpdateVariants(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM product_variants WHERE product_id = \$1`).
			WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO product_variants`).
			WithArgs("p1", "S", 3, 0).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO product_variants`).
			WithArgs("p1", "M", 1, 1).WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		err = NewRepository(db).UpdateVariants(ctx, "p1", []Variant{{"S", 3}, {"M", 1}})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM product_variants`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO product_variants`).WillReturnError(errors.New("unique violation"))
		mock.ExpectRollback()

		err = NewRepository(db).UpdateVariants(ctx, "p1", []Variant{{"S", 3}})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetApprovedStoreID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id FROM stores`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))
	id, err := repo.GetApprovedStoreID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "s1", id)

	mock.ExpectQuery(`SELECT id FROM stores`).WithArgs("u2").WillReturnError(sql.ErrNoRows)
	id, err = repo.GetApprovedStoreID(ctx, "u2")
	assert.NoError(t, err)
	assert.Empty(t, id)
}

func TestRepository_ToggleStock(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`UPDATE products SET in_stock = NOT in_stock`).
		WithArgs("p1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"in_stock"}).AddRow(false))
	inStock, err := repo.ToggleStock(ctx, "s1", "p1")
	assert.NoError(t, err)
	assert.False(t, inStock)

	mock.ExpectQuery(`UPDATE products`).WithArgs("p9", "s1").WillReturnError(sql.ErrNoRows)
	_, err = repo.ToggleStock(ctx, "s1", "p9")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

package order

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
	"storefront-be/internal/logger"
	"storefront-be/internal/outbox"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	HasOrders(ctx context.Context, userID string) (bool, error)
	ListVisibleOrders(ctx context.Context, userID string) ([]*Order, error)

	// PlaceCheckout writes the checkout, its orders and items, decrements
	// tracked stock and records the outbox event in one transaction.
	PlaceCheckout(ctx context.Context, c *Checkout) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) HasOrders(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE user_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to check order history",
			zap.String("layer", "repository"),
			zap.String("method", "HasOrders"),
			zap.Error(err),
		)
		return false, err
	}
	return exists, nil
}

// maxPlaceAttempts bounds how often a checkout transaction is replayed after
// Postgres aborts it with a deadlock or serialization failure.
const maxPlaceAttempts = 3

func (r *repository) PlaceCheckout(ctx context.Context, c *Checkout) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "PlaceCheckout"),
		zap.String("checkout_id", c.ID.String()),
		zap.Int("orders", len(c.Orders)),
	)

	if len(c.Orders) == 0 {
		return ErrEmptyCheckout
	}

	var err error
	for attempt := 1; attempt <= maxPlaceAttempts; attempt++ {
		err = r.placeCheckout(ctx, log, c)
		if err == nil || !isTxConflict(err) || ctx.Err() != nil {
			break
		}
		log.Warn("checkout transaction aborted, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
	if err != nil {
		return err
	}

	c.Status = CheckoutCompleted
	return nil
}

func (r *repository) placeCheckout(ctx context.Context, log *zap.Logger, c *Checkout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Checkout intent
	_, err = tx.ExecContext(ctx, `
		INSERT INTO checkouts (id, user_id, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.UserID, c.Total, CheckoutPending, c.CreatedAt)
	if err != nil {
		log.Error("failed to insert checkout", zap.Error(err))
		return fmt.Errorf("failed to insert checkout: %w", err)
	}

	// 2. Orders and items
	orderIDs := make([]string, 0, len(c.Orders))
	for _, o := range c.Orders {
		if err := insertOrder(ctx, tx, o); err != nil {
			log.Warn("failed to insert order", zap.String("store_id", o.StoreID), zap.Error(err))
			return err
		}
		orderIDs = append(orderIDs, o.ID.String())
	}

	// 3. Stock, in a fixed row order so concurrent checkouts lock variants
	// the same way round.
	for _, d := range stockDecrements(c) {
		if err := decrementStock(ctx, tx, d.productID, d.label, d.quantity); err != nil {
			log.Warn("failed to decrement stock", zap.String("product_id", d.productID), zap.Error(err))
			return err
		}
	}

	// 4. Outbox
	event, err := outbox.NewEvent(c.ID.String(), outbox.EventCheckoutCompleted, CheckoutCompletedEvent{
		CheckoutID: c.ID.String(),
		UserID:     c.UserID,
		OrderIDs:   orderIDs,
		Total:      c.Total,
		CreatedAt:  c.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to build checkout event: %w", err)
	}
	if err := outbox.Insert(ctx, tx, event); err != nil {
		log.Error("failed to write outbox", zap.Error(err))
		return err
	}

	// 5. Complete
	_, err = tx.ExecContext(ctx,
		`UPDATE checkouts SET status = $1 WHERE id = $2`,
		CheckoutCompleted, c.ID,
	)
	if err != nil {
		log.Error("failed to complete checkout", zap.Error(err))
		return fmt.Errorf("failed to complete checkout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout", zap.Error(err))
		return fmt.Errorf("failed to commit checkout: %w", err)
	}

	log.Info("checkout persisted", zap.Strings("order_ids", orderIDs))
	return nil
}

// isTxConflict reports a deadlock (40P01) or serialization failure (40001).
func isTxConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40P01" || pqErr.Code == "40001"
}

func insertOrder(ctx context.Context, tx *sql.Tx, o *Order) error {
	snapshot, err := marshalCoupon(o.Coupon)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, checkout_id, user_id, store_id, address_id, total,
			payment_method, is_paid, is_coupon_used, coupon, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		o.ID, o.CheckoutID, o.UserID, o.StoreID, o.AddressID, o.Total,
		o.PaymentMethod, o.IsPaid, o.IsCouponUsed, snapshot, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range o.Items {
		var variant sql.NullString
		if label, ok := item.Variant.Label(); ok {
			variant = sql.NullString{String: label, Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, variant, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, item.ProductID, variant, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

type stockDecrement struct {
	productID string
	label     string
	quantity  int
}

// stockDecrements sums the tracked lines of a checkout per variant, sorted
// by product id then label.
func stockDecrements(c *Checkout) []stockDecrement {
	var out []stockDecrement
	index := map[[2]string]int{}

	for _, o := range c.Orders {
		for _, item := range o.Items {
			label, ok := item.Variant.Label()
			if !item.DecrementStock || !ok {
				continue
			}
			k := [2]string{item.ProductID, label}
			if i, seen := index[k]; seen {
				out[i].quantity += item.Quantity
				continue
			}
			index[k] = len(out)
			out = append(out, stockDecrement{productID: item.ProductID, label: label, quantity: item.Quantity})
		}
	}

	slices.SortFunc(out, func(a, b stockDecrement) int {
		if c := cmp.Compare(a.productID, b.productID); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})
	return out
}

// decrementStock only succeeds while enough stock remains, so two checkouts
// racing for the last units cannot both commit.
func decrementStock(ctx context.Context, tx *sql.Tx, productID, label string, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE product_variants
		SET stock = stock - $1
		WHERE product_id = $2 AND label = $3 AND stock >= $1
	`, qty, productID, label)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrProductVanished, productID)
	}
	return fmt.Errorf("%w: product %s in size %s", ErrInsufficientStock, productID, label)
}

func marshalCoupon(s *coupon.Snapshot) ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coupon snapshot: %w", err)
	}
	return b, nil
}

// ListVisibleOrders returns the user's COD orders and paid STRIPE orders,
// newest first, with their items.
func (r *repository) ListVisibleOrders(ctx context.Context, userID string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListVisibleOrders"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, checkout_id, user_id, store_id, address_id, total,
			payment_method, is_paid, is_coupon_used, coupon, created_at
		FROM orders
		WHERE user_id = $1
		  AND (payment_method = $2 OR (payment_method = $3 AND is_paid))
		ORDER BY created_at DESC
	`, userID, PaymentCOD, PaymentStripe)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var (
		orders []*Order
		ids    []string
		byID   = map[uuid.UUID]*Order{}
	)
	for rows.Next() {
		var (
			o       Order
			snap    []byte
			payment string
		)
		if err := rows.Scan(
			&o.ID, &o.CheckoutID, &o.UserID, &o.StoreID, &o.AddressID, &o.Total,
			&payment, &o.IsPaid, &o.IsCouponUsed, &snap, &o.CreatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		o.PaymentMethod = PaymentMethod(payment)
		o.Coupon = unmarshalCoupon(snap)

		orders = append(orders, &o)
		ids = append(ids, o.ID.String())
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT
			i.order_id, i.product_id, i.variant, i.quantity, i.price,
			p.name, p.price, p.mrp
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::uuid[])
		ORDER BY i.id
	`, pq.Array(ids))
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID    uuid.UUID
			item       OrderItem
			variant    sql.NullString
			name       sql.NullString
			price, mrp decimal.NullDecimal
		)
		if err := itemRows.Scan(
			&orderID, &item.ProductID, &variant, &item.Quantity, &item.Price,
			&name, &price, &mrp,
		); err != nil {
			log.Error("failed to scan order item", zap.Error(err))
			return nil, err
		}
		if variant.Valid {
			item.Variant = cart.VariantOf(variant.String)
		}
		// A deleted product leaves the item without catalog details.
		if name.Valid {
			item.Product = &ItemProduct{
				ID:    item.ProductID,
				Name:  name.String,
				Price: price.Decimal,
				MRP:   mrp.Decimal,
			}
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders listed", zap.Int("count", len(orders)))
	return orders, nil
}

func unmarshalCoupon(b []byte) *coupon.Snapshot {
	if len(b) == 0 {
		return nil
	}
	var s coupon.Snapshot
	if err := json.Unmarshal(b, &s); err != nil || s.Code == "" {
		return nil
	}
	return &s
}

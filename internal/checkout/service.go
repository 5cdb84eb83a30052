package checkout

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
	"storefront-be/internal/identity"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*product.Product, error)
}

type OrderPlacer interface {
	PlaceCheckout(ctx context.Context, c *order.Checkout) error
}

type CartResetter interface {
	ClearCart(ctx context.Context, userID string) error
}

type Config struct {
	ShippingFee decimal.Decimal
	MemberPlan  string
}

type Service interface {
	// Checkout turns the submitted cart lines into one order per store.
	// Returned errors are always *Error.
	Checkout(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	products     ProductReader
	coupons      coupon.Evaluator
	orders       OrderPlacer
	carts        CartResetter
	entitlements identity.Entitlements
	cfg          Config

	newID func() uuid.UUID
	now   func() time.Time
}

func NewService(
	products ProductReader,
	coupons coupon.Evaluator,
	orders OrderPlacer,
	carts CartResetter,
	entitlements identity.Entitlements,
	cfg Config,
) Service {
	return &service{
		products:     products,
		coupons:      coupons,
		orders:       orders,
		carts:        carts,
		entitlements: entitlements,
		cfg:          cfg,
		newID:        uuid.New,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Checkout(ctx context.Context, req Request) (*Result, error) {
	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("user_id", req.UserID),
		zap.Int("lines", len(req.Items)),
	)

	res, err := s.checkout(ctx, log, req)
	timer.ObserveDuration(metrics.CheckoutDuration)

	if err != nil {
		ce := classify(err)
		metrics.CheckoutsTotal.WithLabelValues(ce.Code).Inc()
		if ce.Kind == KindPersistence {
			log.Error("checkout failed", zap.String("code", ce.Code), zap.Error(err))
		} else {
			log.Info("checkout rejected", zap.String("code", ce.Code), zap.Error(err))
		}
		return nil, ce
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	metrics.OrdersCreatedTotal.Add(float64(len(res.OrderIDs)))
	log.Info("checkout completed",
		zap.Strings("order_ids", res.OrderIDs),
		zap.String("total", res.Total.StringFixed(2)),
	)
	return res, nil
}

func (s *service) checkout(ctx context.Context, log *zap.Logger, req Request) (*Result, error) {
	// 1. Request shape
	if req.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	isMember := s.isMember(ctx, log, req.UserID)

	// 2. Coupon, once, before any product is read
	cp, err := s.coupons.Evaluate(ctx, req.CouponCode, req.UserID, isMember)
	if err != nil {
		return nil, err
	}

	// 3. Lines
	lines, err := s.validateLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// 4. Groups and prices
	groups := Partition(lines)
	in := PricingInput{
		ShippingFee:    s.cfg.ShippingFee,
		ChargeShipping: !isMember,
	}
	if cp != nil {
		in.DiscountPercent = cp.Discount
	}
	quotes, total := Price(groups, in)

	// 5. Persist
	c := s.buildCheckout(req, cp, groups, quotes, total)
	if err := s.orders.PlaceCheckout(ctx, c); err != nil {
		return nil, err
	}

	// 6. Cart reset. Orders are durable at this point.
	if err := s.carts.ClearCart(ctx, req.UserID); err != nil {
		log.Warn("failed to clear cart after checkout",
			zap.String("checkout_id", c.ID.String()),
			zap.Error(err),
		)
	}

	orderIDs := make([]string, 0, len(c.Orders))
	for _, o := range c.Orders {
		orderIDs = append(orderIDs, o.ID.String())
	}
	return &Result{OrderIDs: orderIDs, Total: total}, nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.AddressID) == "" || !req.PaymentMethod.Valid() || len(req.Items) == 0 {
		return ErrMissingOrderDetails
	}
	for _, it := range req.Items {
		if it.CartKey == "" || it.Quantity <= 0 {
			return ErrMissingOrderDetails
		}
	}
	return nil
}

func (s *service) isMember(ctx context.Context, log *zap.Logger, userID string) bool {
	ok, err := s.entitlements.HasPlan(ctx, userID, s.cfg.MemberPlan)
	if err != nil {
		log.Warn("membership lookup failed, treating as non-member", zap.Error(err))
		return false
	}
	return ok
}

func (s *service) validateLines(ctx context.Context, items []Item) ([]Line, error) {
	seen := make(map[string]*product.Product)
	lines := make([]Line, 0, len(items))

	for _, it := range items {
		productID, variant := cart.DecodeKey(it.CartKey)

		p, ok := seen[productID]
		if !ok {
			var err error
			p, err = s.products.GetProduct(ctx, productID)
			if err != nil {
				return nil, err
			}
			seen[productID] = p
		}

		if err := product.ValidateLine(p, productID, variant, it.Quantity); err != nil {
			return nil, err
		}

		lines = append(lines, Line{
			ProductID:   productID,
			StoreID:     p.StoreID,
			Variant:     variant,
			Quantity:    it.Quantity,
			UnitPrice:   p.Price,
			TracksStock: p.TracksStock() && variant.IsSet(),
		})
	}
	return lines, nil
}

func (s *service) buildCheckout(req Request, cp *coupon.Coupon, groups []Group, quotes []Quote, total decimal.Decimal) *order.Checkout {
	now := s.now()
	c := &order.Checkout{
		ID:        s.newID(),
		UserID:    req.UserID,
		Total:     total,
		Status:    order.CheckoutPending,
		CreatedAt: now,
	}

	for i, g := range groups {
		o := &order.Order{
			ID:            s.newID(),
			CheckoutID:    c.ID,
			UserID:        req.UserID,
			StoreID:       g.StoreID,
			AddressID:     req.AddressID,
			Total:         quotes[i].Total,
			PaymentMethod: req.PaymentMethod,
			IsCouponUsed:  cp != nil,
			Coupon:        cp.Snapshot(),
			CreatedAt:     now,
		}
		for _, l := range g.Lines {
			o.Items = append(o.Items, order.OrderItem{
				ProductID:      l.ProductID,
				Variant:        l.Variant,
				Quantity:       l.Quantity,
				Price:          l.UnitPrice,
				DecrementStock: l.TracksStock,
			})
		}
		c.Orders = append(c.Orders, o)
	}
	return c
}

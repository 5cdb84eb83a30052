package order

import (
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentStripe PaymentMethod = "STRIPE"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentStripe
}

type CheckoutStatus string

const (
	CheckoutPending   CheckoutStatus = "PENDING"
	CheckoutCompleted CheckoutStatus = "COMPLETED"
)

// Checkout links every order created by one buyer submission.
type Checkout struct {
	ID        uuid.UUID
	UserID    string
	Total     decimal.Decimal
	Status    CheckoutStatus
	CreatedAt time.Time
	Orders    []*Order
}

type Order struct {
	ID            uuid.UUID
	CheckoutID    uuid.UUID
	UserID        string
	StoreID       string
	AddressID     string
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	IsPaid        bool
	IsCouponUsed  bool
	Coupon        *coupon.Snapshot
	CreatedAt     time.Time
	Items         []OrderItem

	// Address is filled in when orders are listed.
	Address *address.Address
}

type OrderItem struct {
	ProductID string
	Variant   cart.Variant
	Quantity  int
	Price     decimal.Decimal

	// Product holds current catalog details when orders are listed.
	Product *ItemProduct

	// DecrementStock marks lines whose product keeps per-variant stock.
	DecrementStock bool
}

type ItemProduct struct {
	ID    string
	Name  string
	Price decimal.Decimal
	MRP   decimal.Decimal
}

// CheckoutCompletedEvent is the outbox payload written with every checkout.
type CheckoutCompletedEvent struct {
	CheckoutID string          `json:"checkout_id"`
	UserID     string          `json:"user_id"`
	OrderIDs   []string        `json:"order_ids"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

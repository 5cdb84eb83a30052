package checkout

import (
	"storefront-be/internal/cart"
	"storefront-be/internal/order"

	"github.com/shopspring/decimal"
)

type Item struct {
	CartKey  string `json:"id"`
	Quantity int    `json:"quantity"`
}

type Request struct {
	UserID        string              `json:"-"`
	AddressID     string              `json:"addressId"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	Items         []Item              `json:"items"`
	CouponCode    string              `json:"couponCode,omitempty"`
}

type Result struct {
	OrderIDs []string        `json:"orderIds"`
	Total    decimal.Decimal `json:"total"`
}

// Line is a validated cart line with the product data pricing needs.
type Line struct {
	ProductID   string
	StoreID     string
	Variant     cart.Variant
	Quantity    int
	UnitPrice   decimal.Decimal
	TracksStock bool
}

// Group holds the lines sold by one store.
type Group struct {
	StoreID string
	Lines   []Line
}

package checkout

import (
	"errors"
	"fmt"
	"net/http"

	"storefront-be/internal/coupon"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindIneligible
	KindStock
	KindPersistence
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindIneligible:
		return "ineligible"
	case KindStock:
		return "stock"
	case KindPersistence:
		return "persistence"
	case KindUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindIneligible:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStock:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

const (
	CodeUnauthenticated     = "unauthenticated"
	CodeMissingOrderDetails = "missing_order_details"
	CodeProductNotFound     = "product_not_found"
	CodeVariantNotFound     = "variant_not_found"
	CodeCouponNotFound      = "coupon_not_found"
	CodeCouponNotNewUser    = "coupon_not_new_user"
	CodeCouponMembersOnly   = "coupon_members_only"
	CodeInsufficientStock   = "insufficient_stock"
	CodeProductVanished     = "product_vanished"
	CodePersistenceFailed   = "persistence_failed"
)

var (
	ErrNotAuthenticated    = errors.New("not authorized")
	ErrMissingOrderDetails = errors.New("missing order details")
)

// Error is what a failed checkout returns. Message is safe to show to the
// buyer; Err keeps the cause for logs.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: cause}
}

// classify maps package errors onto the checkout taxonomy. Anything it does
// not recognise is a persistence failure with a coarse message.
func classify(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	var lineErr *product.LineError
	if errors.As(err, &lineErr) {
		switch lineErr.Err {
		case product.ErrProductNotFound:
			return newError(KindNotFound, CodeProductNotFound,
				fmt.Sprintf("Product %s not found", lineErr.ProductID), err)
		case product.ErrVariantNotFound:
			return newError(KindNotFound, CodeVariantNotFound,
				fmt.Sprintf("Size %s not found for %s", lineErr.Size, lineErr.Name), err)
		case product.ErrInsufficientStock:
			return newError(KindStock, CodeInsufficientStock,
				fmt.Sprintf("Only %d items available for %s in size %s", lineErr.Available, lineErr.Name, lineErr.Size), err)
		}
	}

	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return newError(KindUnauthenticated, CodeUnauthenticated, "not authorized", err)
	case errors.Is(err, ErrMissingOrderDetails), errors.Is(err, product.ErrInvalidQuantity):
		return newError(KindValidation, CodeMissingOrderDetails, "missing order details", err)
	case errors.Is(err, coupon.ErrCouponNotFound):
		return newError(KindNotFound, CodeCouponNotFound, "Coupon not found", err)
	case errors.Is(err, coupon.ErrNotNewUser):
		return newError(KindIneligible, CodeCouponNotNewUser, "Coupon valid for new users", err)
	case errors.Is(err, coupon.ErrMembersOnly):
		return newError(KindIneligible, CodeCouponMembersOnly, "Coupon valid for members only", err)
	case errors.Is(err, order.ErrInsufficientStock):
		return newError(KindStock, CodeInsufficientStock, "Some items are no longer available in the requested quantity", err)
	case errors.Is(err, order.ErrProductVanished):
		return newError(KindNotFound, CodeProductVanished, "A product in your cart is no longer available", err)
	}

	return newError(KindPersistence, CodePersistenceFailed, "failed to place order", err)
}

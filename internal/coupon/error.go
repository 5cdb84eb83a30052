package coupon

import "errors"

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrNotNewUser     = errors.New("coupon valid for new users")
	ErrMembersOnly    = errors.New("coupon valid for members only")
)

package coupon

import "github.com/shopspring/decimal"

type Coupon struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount"` // percent, 0-100
	ForNewUser  bool            `json:"forNewUser"`
	ForMember   bool            `json:"forMember"`
}

// Snapshot is the copy of a coupon stored with every order that used it.
type Snapshot struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount"`
	ForNewUser  bool            `json:"forNewUser"`
	ForMember   bool            `json:"forMember"`
}

func (c *Coupon) Snapshot() *Snapshot {
	if c == nil {
		return nil
	}
	s := Snapshot(*c)
	return &s
}

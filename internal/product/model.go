package product

import "github.com/shopspring/decimal"

// Variant is one purchasable form of a product (a size) with its own stock.
type Variant struct {
	Label string `json:"size"`
	Stock int    `json:"stock"`
}

type Product struct {
	ID       string          `json:"id"`
	StoreID  string          `json:"store_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	MRP      decimal.Decimal `json:"mrp"`
	InStock  bool            `json:"in_stock"`
	Variants []Variant       `json:"variants"`
}

// TracksStock reports whether the product keeps per-variant stock.
// Products without variants are sold without a stock check.
func (p *Product) TracksStock() bool {
	return len(p.Variants) > 0
}

// FindVariant returns the index of the variant with the given label, or -1.
func (p *Product) FindVariant(label string) int {
	for i, v := range p.Variants {
		if v.Label == label {
			return i
		}
	}
	return -1
}

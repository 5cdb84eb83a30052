package product

import (
	"fmt"

	"storefront-be/internal/cart"
)

// LineError describes why a cart line cannot be bought.
type LineError struct {
	Err       error
	ProductID string
	Name      string
	Size      string
	Available int
}

func (e *LineError) Error() string {
	switch e.Err {
	case ErrProductNotFound:
		return fmt.Sprintf("%v: %s", e.Err, e.ProductID)
	case ErrVariantNotFound:
		return fmt.Sprintf("%v: size %s for %s", e.Err, e.Size, e.Name)
	case ErrInsufficientStock:
		return fmt.Sprintf("%v: only %d items available for %s in size %s", e.Err, e.Available, e.Name, e.Size)
	}
	return e.Err.Error()
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ValidateLine checks one decoded cart line against the product's variant
// table. It never mutates stock.
func ValidateLine(p *Product, productID string, v cart.Variant, qty int) error {
	if p == nil {
		return &LineError{Err: ErrProductNotFound, ProductID: productID}
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	label, ok := v.Label()
	if !ok || !p.TracksStock() {
		return nil
	}

	idx := p.FindVariant(label)
	if idx < 0 {
		return &LineError{Err: ErrVariantNotFound, ProductID: p.ID, Name: p.Name, Size: label}
	}

	if stock := p.Variants[idx].Stock; stock < qty {
		return &LineError{Err: ErrInsufficientStock, ProductID: p.ID, Name: p.Name, Size: label, Available: stock}
	}
	return nil
}

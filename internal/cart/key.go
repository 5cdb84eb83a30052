package cart

import "strings"

// KeyDelimiter separates the product id from the variant label in a cart key.
const KeyDelimiter = "_"

// NoVariantLabel is the wire form of "no variant" used by clients and legacy carts.
const NoVariantLabel = "N/A"

// Variant is an optional variant label (for example a size). The zero value
// means the product is bought without a variant.
type Variant struct {
	label string
	set   bool
}

// NoVariant is the absent variant.
var NoVariant = Variant{}

func VariantOf(label string) Variant {
	return Variant{label: label, set: true}
}

// ParseVariant maps the "N/A" wire sentinel to NoVariant.
func ParseVariant(label string) Variant {
	if label == NoVariantLabel {
		return NoVariant
	}
	return VariantOf(label)
}

func (v Variant) Label() (string, bool) {
	return v.label, v.set
}

func (v Variant) IsSet() bool {
	return v.set
}

// String returns the label, or "N/A" when there is no variant.
func (v Variant) String() string {
	if !v.set {
		return NoVariantLabel
	}
	return v.label
}

// EncodeKey builds the cart key for a product and optional variant.
func EncodeKey(productID string, v Variant) string {
	if !v.set {
		return productID
	}
	return productID + KeyDelimiter + v.label
}

// DecodeKey splits a cart key on the first delimiter only, so labels that
// contain the delimiter survive intact. A "N/A" label decodes to NoVariant.
func DecodeKey(key string) (string, Variant) {
	productID, label, found := strings.Cut(key, KeyDelimiter)
	if !found {
		return key, NoVariant
	}
	return productID, ParseVariant(label)
}

package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		wantProductID string
		wantVariant   Variant
	}{
		{"no delimiter", "prod-1", "prod-1", NoVariant},
		{"simple size", "prod-1_XL", "prod-1", VariantOf("XL")},
		{"label keeps delimiter", "prod-1_EU_42", "prod-1", VariantOf("EU_42")},
		{"empty label", "prod-1_", "prod-1", VariantOf("")},
		{"N/A sentinel", "prod-1_N/A", "prod-1", NoVariant},
		{"empty key", "", "", NoVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productID, v := DecodeKey(tt.key)
			assert.Equal(t, tt.wantProductID, productID)
			assert.Equal(t, tt.wantVariant, v)
		})
	}
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, "prod-1", EncodeKey("prod-1", NoVariant))
	assert.Equal(t, "prod-1", EncodeKey("prod-1", ParseVariant("N/A")))
	assert.Equal(t, "prod-1_M", EncodeKey("prod-1", VariantOf("M")))
}

func TestKeyRoundTrip(t *testing.T) {
	productIDs := []string{"p1", "clx9abc", "42"}
	variants := []Variant{NoVariant, VariantOf("S"), VariantOf("EU_42"), VariantOf("one size"), VariantOf("")}

	for _, pid := range productIDs {
		for _, v := range variants {
			gotID, gotVariant := DecodeKey(EncodeKey(pid, v))
			assert.Equal(t, pid, gotID)
			assert.Equal(t, v, gotVariant, "variant %q", v.String())
		}
	}
}

func TestVariant(t *testing.T) {
	label, ok := NoVariant.Label()
	assert.False(t, ok)
	assert.Empty(t, label)
	assert.Equal(t, "N/A", NoVariant.String())

	v := ParseVariant("L")
	label, ok = v.Label()
	assert.True(t, ok)
	assert.Equal(t, "L", label)
	assert.True(t, v.IsSet())
	assert.False(t, ParseVariant("N/A").IsSet())
}

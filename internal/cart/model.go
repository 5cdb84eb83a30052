package cart

// Cart maps cart keys to quantities.
type Cart map[string]int

// Total is the number of units in the cart.
func (c Cart) Total() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

type AddItemParams struct {
	UserID    string
	ProductID string
	Variant   Variant
}

type RemoveItemParams struct {
	UserID    string
	ProductID string
	Variant   Variant
}

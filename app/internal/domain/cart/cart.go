package cart

// Entry is one line of the remote cart. Qty is absolute.
type Entry struct {
	ProductID string
	Qty       int64
}

// Item is an Entry joined with its product, ready to render.
type Item struct {
	ProductID string
	Name      string
	Category  string
	Cost      int64
	Rating    float64
	ImageURL  string
	Qty       int64
}

func (i Item) Subtotal() int64 {
	return i.Cost * i.Qty
}

func Total(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func Contains(items []Item, productID string) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

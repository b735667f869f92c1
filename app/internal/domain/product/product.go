package product

type Product struct {
	ID       string
	Name     string
	Category string
	Cost     int64
	Rating   float64
	ImageURL string
}

// Index maps product ids to products. Later duplicates win.
func Index(products []Product) map[string]Product {
	idx := make(map[string]Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

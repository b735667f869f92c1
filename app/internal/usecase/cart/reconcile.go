package cart

import (
	domcart "example.com/storefront/app/internal/domain/cart"
	domproduct "example.com/storefront/app/internal/domain/product"
)

// Reconcile joins the remote cart with the catalog. Entries whose product is
// missing from the catalog, or whose quantity is not positive, are dropped.
// The result keeps the order of remote and is never nil.
func Reconcile(remote []domcart.Entry, catalog []domproduct.Product) []domcart.Item {
	items := make([]domcart.Item, 0, len(remote))
	if len(remote) == 0 {
		return items
	}

	productMap := domproduct.Index(catalog)
	for _, entry := range remote {
		if entry.Qty <= 0 {
			continue
		}
		p, ok := productMap[entry.ProductID]
		if !ok {
			continue
		}
		items = append(items, domcart.Item{
			ProductID: entry.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Cost:      p.Cost,
			Rating:    p.Rating,
			ImageURL:  p.ImageURL,
			Qty:       entry.Qty,
		})
	}
	return items
}

// unknownProducts lists the ids Reconcile would drop for lack of a product.
func unknownProducts(remote []domcart.Entry, catalog []domproduct.Product) []string {
	productMap := domproduct.Index(catalog)
	var ids []string
	for _, entry := range remote {
		if entry.Qty <= 0 {
			continue
		}
		if _, ok := productMap[entry.ProductID]; !ok {
			ids = append(ids, entry.ProductID)
		}
	}
	return ids
}

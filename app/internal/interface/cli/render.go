package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	domcart "example.com/storefront/app/internal/domain/cart"
	domproduct "example.com/storefront/app/internal/domain/product"
)

func renderProducts(w io.Writer, products []domproduct.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No products found"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(headerRow).
		Headers("ID", "NAME", "CATEGORY", "COST", "RATING")
	for _, p := range products {
		t.Row(p.ID, p.Name, p.Category, "$"+strconv.FormatInt(p.Cost, 10), strconv.FormatFloat(p.Rating, 'f', 1, 64))
	}
	fmt.Fprintln(w, t.Render())
}

func renderCart(w io.Writer, items []domcart.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Cart is empty. Add more items to the cart to checkout."))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(headerRow).
		Headers("ID", "NAME", "QTY", "COST", "SUBTOTAL")
	for _, item := range items {
		t.Row(
			item.ProductID,
			item.Name,
			strconv.FormatInt(item.Qty, 10),
			"$"+strconv.FormatInt(item.Cost, 10),
			"$"+strconv.FormatInt(item.Subtotal(), 10),
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Order total: $%d\n", domcart.Total(items))
}

func headerRow(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle.Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domcart "example.com/storefront/app/internal/domain/cart"
	"example.com/storefront/app/internal/domain/notice"
	domproduct "example.com/storefront/app/internal/domain/product"
	"example.com/storefront/app/internal/usecase/search"
	"example.com/storefront/app/internal/usecase/storefront"
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusProducts
	focusCart
)

type (
	viewMsg struct {
		view storefront.View
	}
	searchTextMsg struct {
		text string
	}
	productsMsg struct {
		products []domproduct.Product
	}
	// cartMsg reports that a cart request finished. The cart itself is
	// read back from the app, since responses can arrive in any order.
	cartMsg struct{}
)

// Model is the storefront browser: a search field, the product grid and,
// for logged-in users, the cart sidebar.
type Model struct {
	ctx      context.Context
	app      *storefront.App
	events   chan tea.Msg
	debounce *search.Debouncer

	input    textinput.Model
	lastText string
	focus    focusArea

	view       storefront.View
	productIdx int
	cartIdx    int
	notice     *notice.Notice
	width      int
}

func NewModel(ctx context.Context, app *storefront.App, events chan tea.Msg, debounce *search.Debouncer) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for items/categories"
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	ti.Focus()

	return Model{
		ctx:      ctx,
		app:      app,
		events:   events,
		debounce: debounce,
		input:    ti,
		focus:    focusSearch,
		view:     storefront.View{Loading: true},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load(), waitForEvent(m.events))
}

func waitForEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		view, _ := m.app.Load(m.ctx)
		return viewMsg{view: view}
	}
}

func (m Model) runSearch(text string) tea.Cmd {
	return func() tea.Msg {
		products, _ := m.app.Search(m.ctx, text)
		return productsMsg{products: products}
	}
}

func (m Model) mutateCart(fn func(ctx context.Context) ([]domcart.Item, error)) tea.Cmd {
	return func() tea.Msg {
		_, _ = fn(m.ctx)
		return cartMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width/2, 20)
		return m, nil

	case viewMsg:
		m.view = msg.view
		m.clampCursors()
		return m, nil

	case productsMsg:
		m.view.Products = msg.products
		m.clampCursors()
		return m, nil

	case cartMsg:
		items := m.app.Cart()
		m.view.Cart = items
		m.view.Total = domcart.Total(items)
		m.clampCursors()
		return m, nil

	case searchTextMsg:
		return m, tea.Batch(m.runSearch(msg.text), waitForEvent(m.events))

	case noticeMsg:
		n := msg.notice
		m.notice = &n
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.debounce.Cancel()
		return m, tea.Quit
	case "tab":
		m.cycleFocus()
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if text := m.input.Value(); text != m.lastText {
			m.lastText = text
			m.debounce.Keystroke(text)
		}
		return m, cmd

	case focusProducts:
		switch msg.String() {
		case "q":
			m.debounce.Cancel()
			return m, tea.Quit
		case "up", "k":
			if m.productIdx > 0 {
				m.productIdx--
			}
		case "down", "j":
			if m.productIdx < len(m.view.Products)-1 {
				m.productIdx++
			}
		case "enter", "a":
			if p, ok := m.selectedProduct(); ok {
				return m, m.mutateCart(func(ctx context.Context) ([]domcart.Item, error) {
					return m.app.AddToCart(ctx, p.ID)
				})
			}
		case "r":
			m.view.Loading = true
			return m, m.load()
		}

	case focusCart:
		item, ok := m.selectedItem()
		switch msg.String() {
		case "q":
			m.debounce.Cancel()
			return m, tea.Quit
		case "up", "k":
			if m.cartIdx > 0 {
				m.cartIdx--
			}
		case "down", "j":
			if m.cartIdx < len(m.view.Cart)-1 {
				m.cartIdx++
			}
		case "+", "=":
			if ok {
				return m, m.mutateCart(func(ctx context.Context) ([]domcart.Item, error) {
					return m.app.Increment(ctx, item.ProductID)
				})
			}
		case "-":
			if ok {
				return m, m.mutateCart(func(ctx context.Context) ([]domcart.Item, error) {
					return m.app.Decrement(ctx, item.ProductID)
				})
			}
		case "d", "delete":
			if ok {
				return m, m.mutateCart(func(ctx context.Context) ([]domcart.Item, error) {
					return m.app.Remove(ctx, item.ProductID)
				})
			}
		}
	}
	return m, nil
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusSearch:
		m.focus = focusProducts
		m.input.Blur()
	case focusProducts:
		if m.view.Session.LoggedIn() {
			m.focus = focusCart
		} else {
			m.focus = focusSearch
			m.input.Focus()
		}
	default:
		m.focus = focusSearch
		m.input.Focus()
	}
}

func (m *Model) clampCursors() {
	if m.productIdx >= len(m.view.Products) {
		m.productIdx = max(len(m.view.Products)-1, 0)
	}
	if m.cartIdx >= len(m.view.Cart) {
		m.cartIdx = max(len(m.view.Cart)-1, 0)
	}
}

func (m Model) selectedProduct() (domproduct.Product, bool) {
	if m.productIdx < 0 || m.productIdx >= len(m.view.Products) {
		return domproduct.Product{}, false
	}
	return m.view.Products[m.productIdx], true
}

func (m Model) selectedItem() (domcart.Item, bool) {
	if m.cartIdx < 0 || m.cartIdx >= len(m.view.Cart) {
		return domcart.Item{}, false
	}
	return m.view.Cart[m.cartIdx], true
}

func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("QKart")
	if m.view.Session.LoggedIn() {
		header += "  " + m.view.Session.Username
	} else {
		header += "  " + mutedStyle.Render("not logged in")
	}
	b.WriteString(header + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	products := m.renderProducts()
	if m.view.Session.LoggedIn() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, products, " ", m.renderCart()))
	} else {
		b.WriteString(products)
	}
	b.WriteString("\n")

	if m.notice != nil {
		b.WriteString(noticeStyle(m.notice.Level).Render(m.notice.Message) + "\n")
	}
	b.WriteString(helpStyle.Render("tab: switch pane • enter: add to cart • +/-: quantity • d: remove • r: reload • esc: quit"))
	return b.String()
}

func (m Model) renderProducts() string {
	var lines []string
	switch {
	case m.view.Loading:
		lines = append(lines, "Loading Products…")
	case len(m.view.Products) == 0:
		lines = append(lines, mutedStyle.Render("No products found"))
	default:
		for i, p := range m.view.Products {
			line := fmt.Sprintf("%-28s $%-6d %s  %s", truncate(p.Name, 28), p.Cost, stars(p.Rating), mutedStyle.Render(p.Category))
			if m.focus == focusProducts && i == m.productIdx {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
	}

	style := panelStyle
	if m.focus == focusProducts {
		style = focusedPanelStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCart() string {
	var lines []string
	if len(m.view.Cart) == 0 {
		lines = append(lines, mutedStyle.Render("Cart is empty. Add more items to the cart to checkout."))
	}
	for i, item := range m.view.Cart {
		line := fmt.Sprintf("%-20s x%-3d $%d", truncate(item.Name, 20), item.Qty, item.Subtotal())
		if m.focus == focusCart && i == m.cartIdx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", fmt.Sprintf("Order total: $%d", m.view.Total))

	style := cartPanelStyle
	if m.focus == focusCart {
		style = style.BorderForeground(lipgloss.Color("#00A278"))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// stars renders a 0–5 rating in half-star steps.
func stars(rating float64) string {
	halves := int(rating*2 + 0.5)
	halves = min(max(halves, 0), 10)
	return strings.Repeat("★", halves/2) + strings.Repeat("½", halves%2) + strings.Repeat("☆", 5-halves/2-halves%2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

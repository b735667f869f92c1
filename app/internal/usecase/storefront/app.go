// Package storefront wires the catalog, cart and session use cases into
// the single application context the front ends talk to.
package storefront

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domcart "example.com/storefront/app/internal/domain/cart"
	domproduct "example.com/storefront/app/internal/domain/product"
	domsession "example.com/storefront/app/internal/domain/session"
	authuc "example.com/storefront/app/internal/usecase/auth"
	cartuc "example.com/storefront/app/internal/usecase/cart"
	cataloguc "example.com/storefront/app/internal/usecase/catalog"
)

type App struct {
	catalog *cataloguc.Service
	cart    *cartuc.Service
	auth    *authuc.Service
	logger  *zap.Logger
}

type Dependencies struct {
	CatalogService *cataloguc.Service
	CartService    *cartuc.Service
	AuthService    *authuc.Service
	Logger         *zap.Logger
}

func NewApp(deps Dependencies) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		catalog: deps.CatalogService,
		cart:    deps.CartService,
		auth:    deps.AuthService,
		logger:  logger,
	}
}

// View is everything a front end needs to draw the storefront.
type View struct {
	Products []domproduct.Product
	Cart     []domcart.Item
	Total    int64
	Session  *domsession.Session
	Loading  bool
}

func (a *App) View(ctx context.Context) View {
	items := a.cart.Items()
	sess, err := a.auth.Current(ctx)
	if err != nil {
		a.logger.Warn("reading session", zap.Error(err))
	}
	return View{
		Products: a.catalog.Displayed(),
		Cart:     items,
		Total:    domcart.Total(items),
		Session:  sess,
		Loading:  a.catalog.Loading(),
	}
}

// Load fetches the catalog and the remote cart at the same time and then
// reconciles them. A failed catalog fetch leaves the cart reconciled
// against whatever catalog was already held; a failed cart fetch leaves the
// last applied entries reconciled against the new catalog.
func (a *App) Load(ctx context.Context) (View, error) {
	token := a.auth.Token(ctx)

	var (
		snap       cartuc.Snapshot
		catalogErr error
	)
	// Not errgroup.WithContext: a failed cart fetch must not cancel the catalog.
	var g errgroup.Group
	g.Go(func() error {
		_, catalogErr = a.catalog.FetchCatalog(ctx)
		return nil
	})
	g.Go(func() error {
		var err error
		snap, err = a.cart.Fetch(ctx, token)
		return err
	})
	cartErr := g.Wait()

	switch {
	case cartErr == nil:
		a.cart.Apply(snap, a.catalog.Catalog())
	case catalogErr == nil:
		a.cart.Recompute(a.catalog.Catalog())
	}
	if catalogErr != nil {
		return a.View(ctx), fmt.Errorf("load catalog: %w", catalogErr)
	}
	if cartErr != nil {
		return a.View(ctx), fmt.Errorf("load cart: %w", cartErr)
	}
	return a.View(ctx), nil
}

// ReloadCatalog refetches the catalog and recomputes the cart against it.
func (a *App) ReloadCatalog(ctx context.Context) ([]domproduct.Product, error) {
	products, err := a.catalog.FetchCatalog(ctx)
	if err != nil {
		return a.catalog.Displayed(), err
	}
	a.cart.Recompute(products)
	return products, nil
}

func (a *App) Search(ctx context.Context, text string) ([]domproduct.Product, error) {
	return a.catalog.Search(ctx, text)
}

// AddToCart is the product card button: one unit, refused if the product
// is already in the cart.
func (a *App) AddToCart(ctx context.Context, productID string) ([]domcart.Item, error) {
	return a.updateQuantity(ctx, productID, 1, cartuc.Options{PreventDuplicate: true})
}

// SetQuantity is the cart view control: the quantity is overwritten.
func (a *App) SetQuantity(ctx context.Context, productID string, qty int64) ([]domcart.Item, error) {
	if qty < 0 {
		return a.cart.Items(), domcart.ErrInvalidQty
	}
	return a.updateQuantity(ctx, productID, qty, cartuc.Options{})
}

func (a *App) Remove(ctx context.Context, productID string) ([]domcart.Item, error) {
	return a.updateQuantity(ctx, productID, 0, cartuc.Options{})
}

// Increment and Decrement back the +/- buttons of the cart view. They still
// send the absolute quantity.
func (a *App) Increment(ctx context.Context, productID string) ([]domcart.Item, error) {
	return a.SetQuantity(ctx, productID, a.quantityOf(productID)+1)
}

func (a *App) Decrement(ctx context.Context, productID string) ([]domcart.Item, error) {
	qty := a.quantityOf(productID)
	if qty == 0 {
		return a.cart.Items(), nil
	}
	return a.SetQuantity(ctx, productID, qty-1)
}

func (a *App) Login(ctx context.Context, username, password string) (View, error) {
	if _, err := a.auth.Login(ctx, authuc.LoginInput{Username: username, Password: password}); err != nil {
		return a.View(ctx), err
	}
	if _, err := a.cart.Refresh(ctx, a.auth.Token(ctx), a.catalog.Catalog()); err != nil {
		return a.View(ctx), err
	}
	return a.View(ctx), nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.cart.Reset()
	return nil
}

// Cart is the cart as last applied by the cart service. Responses that
// arrived out of order have already been discarded.
func (a *App) Cart() []domcart.Item {
	return a.cart.Items()
}

func (a *App) Session(ctx context.Context) (*domsession.Session, error) {
	return a.auth.Current(ctx)
}

func (a *App) updateQuantity(ctx context.Context, productID string, qty int64, opts cartuc.Options) ([]domcart.Item, error) {
	token := a.auth.Token(ctx)
	return a.cart.UpdateQuantity(ctx, token, a.cart.Items(), productID, a.catalog.Catalog(), qty, opts)
}

func (a *App) quantityOf(productID string) int64 {
	for _, item := range a.cart.Items() {
		if item.ProductID == productID {
			return item.Qty
		}
	}
	return 0
}

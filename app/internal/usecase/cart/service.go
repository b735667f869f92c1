package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domcart "example.com/storefront/app/internal/domain/cart"
	"example.com/storefront/app/internal/domain/notice"
	domproduct "example.com/storefront/app/internal/domain/product"
)

type Gateway interface {
	domcart.Gateway
}

// Options distinguishes the "add to cart" affordance from the quantity
// controls of the cart view. Both end up in UpdateQuantity.
type Options struct {
	PreventDuplicate bool
}

// Snapshot is a remote cart as returned for one request, tagged with the
// sequence number the request was issued with.
type Snapshot struct {
	Seq     uint64
	Entries []domcart.Entry
}

// Service owns the renderable cart. Every request takes a sequence number
// when issued, and a response only replaces the cart if no later-issued
// request has been applied already.
type Service struct {
	gateway  Gateway
	notifier notice.Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	entries []domcart.Entry
	items   []domcart.Item
}

func NewService(gateway Gateway, notifier notice.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notice.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		items:    []domcart.Item{},
	}
}

// Items returns a copy of the current renderable cart.
func (s *Service) Items() []domcart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domcart.Item(nil), s.items...)
}

// Fetch requests the remote cart without touching the renderable state.
// Without a token no request is made and the snapshot is empty.
func (s *Service) Fetch(ctx context.Context, token string) (Snapshot, error) {
	seq := s.nextSeq()
	if token == "" {
		return Snapshot{Seq: seq}, nil
	}

	entries, err := s.gateway.Fetch(ctx, token)
	if err != nil {
		s.logger.Warn("fetching cart", zap.Uint64("seq", seq), zap.Error(err))
		s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: notice.MsgCartFetch})
		return Snapshot{}, notice.Shown(fmt.Errorf("%w: %w", domcart.ErrFetchFailed, err))
	}
	return Snapshot{Seq: seq, Entries: entries}, nil
}

// Apply reconciles snap against catalog and installs the result unless a
// later request has already been applied. It returns the installed cart.
func (s *Service) Apply(snap Snapshot, catalog []domproduct.Product) []domcart.Item {
	items := Reconcile(snap.Entries, catalog)
	if dropped := unknownProducts(snap.Entries, catalog); len(dropped) > 0 {
		s.logger.Debug("cart references products missing from catalog", zap.Strings("product_ids", dropped))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Seq <= s.applied {
		s.logger.Debug("discarding stale cart response",
			zap.Uint64("seq", snap.Seq),
			zap.Uint64("applied", s.applied),
		)
		return append([]domcart.Item(nil), s.items...)
	}
	s.applied = snap.Seq
	s.entries = append([]domcart.Entry(nil), snap.Entries...)
	s.items = items
	return append([]domcart.Item(nil), items...)
}

// Refresh fetches the remote cart and reconciles it with catalog.
func (s *Service) Refresh(ctx context.Context, token string, catalog []domproduct.Product) ([]domcart.Item, error) {
	snap, err := s.Fetch(ctx, token)
	if err != nil {
		return s.Items(), err
	}
	return s.Apply(snap, catalog), nil
}

// Recompute rebuilds the renderable cart from the last applied remote cart
// and a new catalog.
func (s *Service) Recompute(catalog []domproduct.Product) []domcart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = Reconcile(s.entries, catalog)
	return append([]domcart.Item(nil), s.items...)
}

// Reset forgets the cart, e.g. after logout. Responses still in flight are
// discarded when they arrive.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.issued
	s.entries = nil
	s.items = []domcart.Item{}
}

// UpdateQuantity sets the quantity of productID to qty on the remote cart.
// qty is absolute, never a delta; zero removes the product.
func (s *Service) UpdateQuantity(
	ctx context.Context,
	token string,
	current []domcart.Item,
	productID string,
	catalog []domproduct.Product,
	qty int64,
	opts Options,
) ([]domcart.Item, error) {
	if token == "" {
		s.notifier.Notify(notice.Notice{Level: notice.LevelWarning, Message: notice.MsgLoginRequired})
		return s.Items(), notice.Shown(domcart.ErrNotLoggedIn)
	}
	if opts.PreventDuplicate && domcart.Contains(current, productID) {
		s.notifier.Notify(notice.Notice{Level: notice.LevelWarning, Message: notice.MsgAlreadyInCart})
		return s.Items(), notice.Shown(domcart.ErrAlreadyInCart)
	}

	seq := s.nextSeq()
	s.logger.Info("updating cart quantity",
		zap.String("product_id", productID),
		zap.Int64("qty", qty),
		zap.Uint64("seq", seq),
	)

	entries, err := s.gateway.Update(ctx, token, productID, qty)
	if err != nil {
		s.logger.Warn("updating cart quantity",
			zap.String("product_id", productID),
			zap.Uint64("seq", seq),
			zap.Error(err),
		)
		s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: notice.MsgCartUpdate})
		return s.Items(), notice.Shown(fmt.Errorf("%w: %w", domcart.ErrUpdateFailed, err))
	}

	return s.Apply(Snapshot{Seq: seq, Entries: entries}, catalog), nil
}

func (s *Service) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

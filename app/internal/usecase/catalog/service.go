package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"example.com/storefront/app/internal/domain/backend"
	"example.com/storefront/app/internal/domain/notice"
	domproduct "example.com/storefront/app/internal/domain/product"
)

type Gateway interface {
	domproduct.Gateway
}

// Service holds the full catalog and the subset currently displayed.
// Both are replaced wholesale, never merged.
type Service struct {
	gateway  Gateway
	notifier notice.Notifier
	logger   *zap.Logger

	mu        sync.Mutex
	catalog   []domproduct.Product
	displayed []domproduct.Product
	inflight  int
}

func NewService(gateway Gateway, notifier notice.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notice.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway:   gateway,
		notifier:  notifier,
		logger:    logger,
		catalog:   []domproduct.Product{},
		displayed: []domproduct.Product{},
	}
}

func (s *Service) Catalog() []domproduct.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domproduct.Product(nil), s.catalog...)
}

func (s *Service) Displayed() []domproduct.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domproduct.Product(nil), s.displayed...)
}

// Loading reports whether a catalog fetch is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// FetchCatalog loads every product. On success the result becomes both the
// catalog and the displayed set; on failure neither changes.
func (s *Service) FetchCatalog(ctx context.Context) ([]domproduct.Product, error) {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	products, err := s.gateway.List(ctx)
	if err != nil {
		s.logger.Warn("fetching catalog", zap.Error(err))
		if se, ok := backend.AsServerError(err, http.StatusInternalServerError); ok {
			s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: se.Message})
		} else {
			s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: notice.MsgBackendProblem})
		}
		return nil, notice.Shown(err)
	}
	if products == nil {
		products = []domproduct.Product{}
	}

	s.mu.Lock()
	s.catalog = products
	s.displayed = products
	s.mu.Unlock()

	s.logger.Debug("catalog loaded", zap.Int("products", len(products)))
	return append([]domproduct.Product(nil), products...), nil
}

// Search replaces the displayed set with the products matching text. A 404
// is an empty result. A 500 reverts the displayed set to the full catalog.
func (s *Service) Search(ctx context.Context, text string) ([]domproduct.Product, error) {
	products, err := s.gateway.Search(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, backend.ErrNotFound):
		products = nil
	default:
		s.logger.Warn("searching products", zap.String("text", text), zap.Error(err))
		if se, ok := backend.AsServerError(err, http.StatusInternalServerError); ok {
			s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: se.Message})
			s.mu.Lock()
			s.displayed = s.catalog
			s.mu.Unlock()
		} else {
			s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: notice.MsgBackendProblem})
		}
		return s.Displayed(), notice.Shown(err)
	}
	if products == nil {
		products = []domproduct.Product{}
	}

	s.mu.Lock()
	s.displayed = products
	s.mu.Unlock()

	s.logger.Debug("search results", zap.String("text", text), zap.Int("products", len(products)))
	return append([]domproduct.Product(nil), products...), nil
}

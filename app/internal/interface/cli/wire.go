package cli

import (
	"go.uber.org/zap"

	"example.com/storefront/app/internal/domain/notice"
	domsession "example.com/storefront/app/internal/domain/session"
	"example.com/storefront/app/internal/infra/api"
	"example.com/storefront/app/internal/infra/security"
	"example.com/storefront/app/internal/infra/sessionstore"
	authuc "example.com/storefront/app/internal/usecase/auth"
	cartuc "example.com/storefront/app/internal/usecase/cart"
	cataloguc "example.com/storefront/app/internal/usecase/catalog"
	"example.com/storefront/app/internal/usecase/storefront"
)

// newApp builds the application context. Every use case reports to
// notifier.
func (rt *runtime) newApp(notifier notice.Notifier) (*storefront.App, error) {
	timeout, err := rt.cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	client, err := api.NewClient(rt.cfg.Endpoint, timeout, api.WithLogger(rt.logger))
	if err != nil {
		return nil, err
	}

	var store domsession.Store
	if rt.cfg.Session.File != "" {
		store = sessionstore.NewFileStore(rt.cfg.Session.File)
	} else {
		store = sessionstore.NewMemoryStore()
	}

	rt.logger.Debug("wiring storefront",
		zap.String("endpoint", rt.cfg.Endpoint),
		zap.Duration("timeout", timeout),
		zap.String("session_file", rt.cfg.Session.File),
	)

	return storefront.NewApp(storefront.Dependencies{
		CatalogService: cataloguc.NewService(api.NewProductGateway(client), notifier, rt.logger.Named("catalog")),
		CartService:    cartuc.NewService(api.NewCartGateway(client), notifier, rt.logger.Named("cart")),
		AuthService: authuc.NewService(
			api.NewAuthGateway(client),
			store,
			security.NewJWTInspector(),
			notifier,
			rt.logger.Named("auth"),
		),
		Logger: rt.logger,
	}), nil
}

package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/storefront/app/internal/domain/backend"
	"example.com/storefront/app/internal/domain/notice"
	domproduct "example.com/storefront/app/internal/domain/product"
)

type mockProductGateway struct {
	products  []domproduct.Product
	results   map[string][]domproduct.Product
	listErr   error
	searchErr error
	searches  []string
	// block, when set, holds List until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func (m *mockProductGateway) List(ctx context.Context) ([]domproduct.Product, error) {
	if m.block != nil {
		close(m.entered)
		<-m.block
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domproduct.Product(nil), m.products...), nil
}

func (m *mockProductGateway) Search(ctx context.Context, text string) ([]domproduct.Product, error) {
	m.searches = append(m.searches, text)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	res, ok := m.results[text]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return res, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice.Notice
}

func (r *recordingNotifier) Notify(n notice.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func testProducts() []domproduct.Product {
	return []domproduct.Product{
		{ID: "v4sLtEcMpzabRyfx", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, ImageURL: "https://i.imgur.com/lulqWzW.jpg"},
		{ID: "upLK9JbQ4rMhTwt4", Name: "Basketball", Category: "Sports", Cost: 100, Rating: 5, ImageURL: "https://i.imgur.com/lulqWzW.jpg"},
	}
}

func TestFetchCatalog_Success(t *testing.T) {
	gw := &mockProductGateway{products: testProducts()}
	notes := &recordingNotifier{}
	svc := NewService(gw, notes, nil)

	products, err := svc.FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Equal(t, testProducts(), products)
	require.Equal(t, testProducts(), svc.Catalog())
	require.Equal(t, testProducts(), svc.Displayed())
	require.Empty(t, notes.notices)
	require.False(t, svc.Loading())
}

func TestFetchCatalog_ServerErrorKeepsCatalog(t *testing.T) {
	gw := &mockProductGateway{products: testProducts()}
	notes := &recordingNotifier{}
	svc := NewService(gw, notes, nil)
	_, err := svc.FetchCatalog(context.Background())
	require.NoError(t, err)

	msg := "Something went wrong. Check the backend console for more details"
	gw.listErr = &backend.ServerError{Status: 500, Message: msg}
	_, err = svc.FetchCatalog(context.Background())

	require.Error(t, err)
	require.Equal(t, testProducts(), svc.Catalog())
	require.Equal(t, []notice.Notice{{Level: notice.LevelError, Message: msg}}, notes.notices)
}

func TestFetchCatalog_Unreachable(t *testing.T) {
	gw := &mockProductGateway{listErr: backend.ErrUnreachable}
	notes := &recordingNotifier{}
	svc := NewService(gw, notes, nil)

	_, err := svc.FetchCatalog(context.Background())

	require.ErrorIs(t, err, backend.ErrUnreachable)
	require.True(t, notice.WasShown(err))
	require.Empty(t, svc.Catalog())
	require.Equal(t, []notice.Notice{{Level: notice.LevelError, Message: notice.MsgBackendProblem}}, notes.notices)
}

func TestFetchCatalog_Loading(t *testing.T) {
	gw := &mockProductGateway{
		products: testProducts(),
		block:    make(chan struct{}),
		entered:  make(chan struct{}),
	}
	svc := NewService(gw, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.FetchCatalog(context.Background())
	}()

	<-gw.entered
	require.True(t, svc.Loading())
	close(gw.block)
	<-done
	require.False(t, svc.Loading())
}

func TestSearch_ReplacesDisplayedOnly(t *testing.T) {
	gw := &mockProductGateway{
		products: testProducts(),
		results:  map[string][]domproduct.Product{"ball": testProducts()[1:]},
	}
	svc := NewService(gw, nil, nil)
	_, err := svc.FetchCatalog(context.Background())
	require.NoError(t, err)

	got, err := svc.Search(context.Background(), "ball")

	require.NoError(t, err)
	require.Equal(t, testProducts()[1:], got)
	require.Equal(t, testProducts()[1:], svc.Displayed())
	require.Equal(t, testProducts(), svc.Catalog())
}

func TestSearch_NotFoundIsEmptyResult(t *testing.T) {
	gw := &mockProductGateway{products: testProducts()}
	notes := &recordingNotifier{}
	svc := NewService(gw, notes, nil)
	_, err := svc.FetchCatalog(context.Background())
	require.NoError(t, err)

	got, err := svc.Search(context.Background(), "zzz")

	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Empty(t, svc.Displayed())
	require.Empty(t, notes.notices)
}

func TestSearch_ServerErrorRevertsToCatalog(t *testing.T) {
	gw := &mockProductGateway{
		products: testProducts(),
		results:  map[string][]domproduct.Product{"ball": testProducts()[1:]},
	}
	notes := &recordingNotifier{}
	svc := NewService(gw, notes, nil)
	_, err := svc.FetchCatalog(context.Background())
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "ball")
	require.NoError(t, err)

	gw.searchErr = &backend.ServerError{Status: 500, Message: "search index offline"}
	got, err := svc.Search(context.Background(), "phone")

	require.Error(t, err)
	require.Equal(t, testProducts(), got)
	require.Equal(t, testProducts(), svc.Displayed())
	require.Equal(t, []notice.Notice{{Level: notice.LevelError, Message: "search index offline"}}, notes.notices)
}

func TestSearch_UnreachableKeepsDisplayed(t *testing.T) {
	gw := &mockProductGateway{
		products: testProducts(),
		results:  map[string][]domproduct.Product{"ball": testProducts()[1:]},
	}
	notes := &recordingNotifier{}
	svc := NewService(gw, notes, nil)
	_, err := svc.FetchCatalog(context.Background())
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "ball")
	require.NoError(t, err)

	gw.searchErr = backend.ErrUnreachable
	_, err = svc.Search(context.Background(), "phone")

	require.ErrorIs(t, err, backend.ErrUnreachable)
	require.Equal(t, testProducts()[1:], svc.Displayed())
	require.Equal(t, []notice.Notice{{Level: notice.LevelError, Message: notice.MsgBackendProblem}}, notes.notices)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/storefront/app/internal/domain/backend"
	domcart "example.com/storefront/app/internal/domain/cart"
	domproduct "example.com/storefront/app/internal/domain/product"
)

func TestNewClient_RejectsRelativeEndpoint(t *testing.T) {
	_, err := NewClient("/api/v1", time.Second)
	require.Error(t, err)
}

func TestProductGateway_List(t *testing.T) {
	fb := newFakeBackend()
	gw := NewProductGateway(fb.start(t))

	products, err := gw.List(context.Background())

	require.NoError(t, err)
	require.Equal(t, []domproduct.Product{
		{ID: "v4sLtEcMpzabRyfx", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, ImageURL: "https://i.imgur.com/lulqWzW.jpg"},
		{ID: "upLK9JbQ4rMhTwt4", Name: "Basketball", Category: "Sports", Cost: 100, Rating: 5, ImageURL: "https://i.imgur.com/lulqWzW.jpg"},
	}, products)
	ids := fb.seenRequestIDs()
	require.Len(t, ids, 1)
	_, err = uuid.Parse(ids[0])
	require.NoError(t, err, "every request carries a uuid request id")
}

func TestProductGateway_ListServerError(t *testing.T) {
	fb := newFakeBackend()
	fb.fail("GET /products", http.StatusInternalServerError)
	gw := NewProductGateway(fb.start(t))

	_, err := gw.List(context.Background())

	se, ok := backend.AsServerError(err, http.StatusInternalServerError)
	require.True(t, ok)
	require.Equal(t, "Something went wrong. Check the backend console for more details", se.Message)
}

func TestProductGateway_ListMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Not JSON", body: "<html>oops</html>"},
		{name: "Missing id", body: `[{"name":"iPhone XR","cost":100,"rating":4}]`},
		{name: "Rating out of range", body: `[{"_id":"x","name":"iPhone XR","cost":100,"rating":7}]`},
		{name: "Fractional cost", body: `[{"_id":"x","name":"iPhone XR","cost":10.5,"rating":4}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend()
			fb.respondRaw("GET /products", tt.body)
			gw := NewProductGateway(fb.start(t))

			_, err := gw.List(context.Background())

			require.ErrorIs(t, err, backend.ErrUnreachable)
		})
	}
}

func TestProductGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/api/v1"
	srv.Close()

	client, err := NewClient(endpoint, time.Second)
	require.NoError(t, err)

	_, err = NewProductGateway(client).List(context.Background())

	require.ErrorIs(t, err, backend.ErrUnreachable)
	var se *backend.ServerError
	require.False(t, errors.As(err, &se))
}

func TestProductGateway_Search(t *testing.T) {
	fb := newFakeBackend()
	gw := NewProductGateway(fb.start(t))

	products, err := gw.Search(context.Background(), "sports")

	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Basketball", products[0].Name)
}

func TestProductGateway_SearchEscapesQuery(t *testing.T) {
	fb := newFakeBackend()
	gw := NewProductGateway(fb.start(t))

	products, err := gw.Search(context.Background(), "iphone xr")

	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestProductGateway_SearchNoMatches(t *testing.T) {
	fb := newFakeBackend()
	gw := NewProductGateway(fb.start(t))

	_, err := gw.Search(context.Background(), "zzz")

	require.ErrorIs(t, err, backend.ErrNotFound)
	_, ok := backend.AsServerError(err, http.StatusNotFound)
	require.True(t, ok)
}

func TestCartGateway_FetchAndUpdate(t *testing.T) {
	fb := newFakeBackend()
	gw := NewCartGateway(fb.start(t))
	ctx := context.Background()

	entries, err := gw.Fetch(ctx, "tok")
	require.NoError(t, err)
	require.Empty(t, entries)

	entries, err = gw.Update(ctx, "tok", "upLK9JbQ4rMhTwt4", 2)
	require.NoError(t, err)
	require.Equal(t, []domcart.Entry{{ProductID: "upLK9JbQ4rMhTwt4", Qty: 2}}, entries)

	entries, err = gw.Update(ctx, "tok", "upLK9JbQ4rMhTwt4", 5)
	require.NoError(t, err)
	require.Equal(t, []domcart.Entry{{ProductID: "upLK9JbQ4rMhTwt4", Qty: 5}}, entries)

	entries, err = gw.Update(ctx, "tok", "upLK9JbQ4rMhTwt4", 0)
	require.NoError(t, err)
	require.Empty(t, entries)

	entries, err = gw.Fetch(ctx, "other")
	require.NoError(t, err)
	require.Empty(t, entries, "carts are per token")
}

func TestCartGateway_Errors(t *testing.T) {
	fb := newFakeBackend()
	gw := NewCartGateway(fb.start(t))
	ctx := context.Background()

	_, err := gw.Fetch(ctx, "")
	_, ok := backend.AsServerError(err, http.StatusUnauthorized)
	require.True(t, ok)

	_, err = gw.Update(ctx, "tok", "missing", 1)
	se, ok := backend.AsServerError(err, http.StatusBadRequest)
	require.True(t, ok)
	require.Equal(t, "Product doesn't exist", se.Message)
}

func TestAuthGateway_Login(t *testing.T) {
	fb := newFakeBackend()
	gw := NewAuthGateway(fb.start(t))

	sess, err := gw.Login(context.Background(), "crio.do", "learnbydoing")

	require.NoError(t, err)
	require.Equal(t, "token-crio.do", sess.Token)
	require.Equal(t, "crio.do", sess.Username)
	require.Equal(t, int64(5000), sess.Balance)
}

func TestAuthGateway_LoginRejected(t *testing.T) {
	fb := newFakeBackend()
	gw := NewAuthGateway(fb.start(t))

	_, err := gw.Login(context.Background(), "crio.do", "wrong")

	se, ok := backend.AsServerError(err, http.StatusBadRequest)
	require.True(t, ok)
	require.Equal(t, "Password is incorrect", se.Message)
}

func TestAuthGateway_LoginWithoutToken(t *testing.T) {
	fb := newFakeBackend()
	fb.respondRaw("POST /auth/login", `{"success":true,"username":"crio.do","balance":5000}`)
	gw := NewAuthGateway(fb.start(t))

	_, err := gw.Login(context.Background(), "crio.do", "learnbydoing")

	require.ErrorIs(t, err, backend.ErrUnreachable)
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

// fakeBackend mimics the storefront API closely enough for the client.
type fakeBackend struct {
	mu         sync.Mutex
	products   []map[string]any
	carts      map[string][]cartEntryDTO
	users      map[string]string
	failStatus map[string]int
	requestIDs []string
	rawBody    map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products: []map[string]any{
			{"_id": "v4sLtEcMpzabRyfx", "name": "iPhone XR", "category": "Phones", "cost": 100, "rating": 4, "image": "https://i.imgur.com/lulqWzW.jpg"},
			{"_id": "upLK9JbQ4rMhTwt4", "name": "Basketball", "category": "Sports", "cost": 100, "rating": 5, "image": "https://i.imgur.com/lulqWzW.jpg"},
		},
		carts:      map[string][]cartEntryDTO{},
		users:      map[string]string{"crio.do": "learnbydoing"},
		failStatus: map[string]int{},
		rawBody:    map[string]string{},
	}
}

func (f *fakeBackend) router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(f.recordRequestID)
	r.Use(f.injectFailures)

	r.Get("/api/v1/products", f.handleListProducts)
	r.Get("/api/v1/products/search", f.handleSearch)
	r.Post("/api/v1/auth/login", f.handleLogin)
	r.Group(func(pr chi.Router) {
		pr.Use(f.requireToken)
		pr.Get("/api/v1/cart", f.handleGetCart)
		pr.Post("/api/v1/cart", f.handleUpdateCart)
	})
	return r
}

func (f *fakeBackend) start(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL+"/api/v1", 2*time.Second)
	require.NoError(t, err)
	return client
}

func (f *fakeBackend) fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus[route] = status
}

func (f *fakeBackend) respondRaw(route, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawBody[route] = body
}

func (f *fakeBackend) seenRequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

func (f *fakeBackend) recordRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, r.Header.Get(headerRequestID))
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *fakeBackend) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/v1")
		f.mu.Lock()
		status, failing := f.failStatus[route]
		raw, hasRaw := f.rawBody[route]
		f.mu.Unlock()
		if failing {
			writeJSON(w, status, errorResponse{Success: false, Message: "Something went wrong. Check the backend console for more details"})
			return
		}
		if hasRaw {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(raw))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeBackend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Protected route, Oauth2 Bearer token not found"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeBackend) handleListProducts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.products)
}

func (f *fakeBackend) handleSearch(w http.ResponseWriter, r *http.Request) {
	value := strings.ToLower(r.URL.Query().Get("value"))
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []map[string]any
	for _, p := range f.products {
		name := strings.ToLower(p["name"].(string))
		category := strings.ToLower(p["category"].(string))
		if strings.Contains(name, value) || strings.Contains(category, value) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		writeJSON(w, http.StatusNotFound, []any{})
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (f *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}
	f.mu.Lock()
	password, ok := f.users[req.Username]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Username does not exist"})
		return
	}
	if password != req.Password {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Password is incorrect"})
		return
	}
	writeJSON(w, http.StatusCreated, loginResponse{Success: true, Token: "token-" + req.Username, Username: req.Username, Balance: 5000})
}

func (f *fakeBackend) handleGetCart(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.carts[token]
	if entries == nil {
		entries = []cartEntryDTO{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (f *fakeBackend) handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	var req cartEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	known := false
	for _, p := range f.products {
		if p["_id"] == req.ProductID {
			known = true
		}
	}
	if !known {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Product doesn't exist"})
		return
	}

	next := []cartEntryDTO{}
	found := false
	for _, e := range f.carts[token] {
		if e.ProductID == req.ProductID {
			found = true
			if req.Qty > 0 {
				next = append(next, req)
			}
			continue
		}
		next = append(next, e)
	}
	if !found && req.Qty > 0 {
		next = append(next, req)
	}
	f.carts[token] = next
	writeJSON(w, http.StatusOK, next)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

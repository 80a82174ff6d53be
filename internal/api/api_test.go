// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/faq"
	"github.com/tomtom215/tigana/internal/promo"
	"github.com/tomtom215/tigana/internal/recommend"
	"github.com/tomtom215/tigana/internal/session"
	"github.com/tomtom215/tigana/internal/storage"
	"github.com/tomtom215/tigana/internal/tracker"
)

var issuedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *storage.MemoryStore
}

// unreachableStore fails every call.
type unreachableStore struct{}

func (unreachableStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (unreachableStore) Put(context.Context, string, []byte) error { return errors.New("connection refused") }
func (unreachableStore) Delete(context.Context, string) error      { return errors.New("connection refused") }
func (unreachableStore) Close() error                              { return nil }

func newTestServer(t *testing.T, mwCfg *MiddlewareConfig) *testServer {
	t.Helper()
	return newTestServerWithStore(t, mwCfg, storage.NewMemoryStore())
}

func newTestServerWithStore(t *testing.T, mwCfg *MiddlewareConfig, store storage.Store) *testServer {
	t.Helper()

	products, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	sessions, err := session.NewManager(session.DefaultConfig(), tracker.DefaultConfig(), store, products, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), products, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	book, err := promo.NewBook(promo.DefaultOffers(), issuedAt, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBook() error = %v", err)
	}

	h, err := NewHandler(Dependencies{
		Catalog:  products,
		Sessions: sessions,
		Engine:   engine,
		FAQ:      faq.New(zerolog.Nop()),
		Promos:   book,
		Shipping: cart.DefaultShippingPolicy(),
		Store:    store,
		Clock:    func() time.Time { return issuedAt.Add(time.Hour) },
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	if mwCfg == nil {
		mwCfg = DefaultMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
		mwCfg.TrackingRate = 0
	}
	ts := &testServer{t: t, handler: NewRouter(h, NewMiddleware(mwCfg))}
	if mem, ok := store.(*storage.MemoryStore); ok {
		ts.store = mem
	}
	return ts
}

func (s *testServer) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNoContent && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode envelope: %v (body %q)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
	return v
}

func productIDs(ps []catalog.Product) []string {
	out := make([]string, len(ps))
	for i := range ps {
		out[i] = ps[i].ID
	}
	return out
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Dependencies{}, zerolog.Nop()); err == nil {
		t.Error("NewHandler with no dependencies should fail")
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	for _, path := range []string{"/health", "/api/v1/health"} {
		rec, env := s.do(http.MethodGet, path, "")
		if rec.Code != http.StatusOK || !env.Success {
			t.Fatalf("GET %s = %d %s", path, rec.Code, rec.Body.String())
		}
		status := decodeData[HealthStatus](t, env)
		if status.Status != "ok" || status.Products != 10 || status.Storage != "ok" {
			t.Errorf("GET %s = %+v", path, status)
		}
		if env.Meta == nil || env.Meta.RequestID == "" {
			t.Errorf("GET %s meta missing request id: %+v", path, env.Meta)
		}
	}
}

func TestHealth_DegradedStorage(t *testing.T) {
	t.Parallel()

	s := newTestServerWithStore(t, nil, unreachableStore{})
	rec, env := s.do(http.MethodGet, "/health", "")
	expectError(t, rec, env, http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
	if status := decodeData[HealthStatus](t, env); status.Storage != "unavailable" {
		t.Errorf("storage = %q, want unavailable", status.Storage)
	}
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"all", "", 10, ""},
		{"category", "?category=figs", 2, ""},
		{"price low first", "?sort=price-low", 10, "7"},
		{"price high first", "?sort=price-high", 10, "9"},
		{"price window", "?min_price=18&max_price=20", 3, ""},
		{"search and category", "?q=dates&category=dates", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(http.MethodGet, "/api/v1/products"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
			}
			products := decodeData[[]catalog.Product](t, env)
			if len(products) != tt.wantCount {
				t.Errorf("count = %d (%v), want %d", len(products), productIDs(products), tt.wantCount)
			}
			if env.Meta.Count == nil || *env.Meta.Count != len(products) {
				t.Errorf("meta.count = %v, want %d", env.Meta.Count, len(products))
			}
			if tt.wantFirst != "" && (len(products) == 0 || products[0].ID != tt.wantFirst) {
				t.Errorf("first = %v, want %s", productIDs(products), tt.wantFirst)
			}
		})
	}
}

func TestListProducts_RejectsBadQueries(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	tests := []struct {
		query string
		code  string
	}{
		{"?sort=cheapest", ErrCodeValidationFailed},
		{"?category=nuts", ErrCodeValidationFailed},
		{"?min_price=abc", ErrCodeBadRequest},
		{"?min_price=-1", ErrCodeValidationFailed},
		{"?min_price=30&max_price=10", ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		rec, env := s.do(http.MethodGet, "/api/v1/products"+tt.query, "")
		expectError(t, rec, env, http.StatusBadRequest, tt.code)
	}
}

func TestProductLookups(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, env := s.do(http.MethodGet, "/api/v1/products/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET product 1 = %d", rec.Code)
	}
	if p := decodeData[catalog.Product](t, env); p.Name != "Premium Medjool Dates" {
		t.Errorf("product 1 name = %q", p.Name)
	}

	rec, env = s.do(http.MethodGet, "/api/v1/products/999", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeProductNotFound)

	rec, env = s.do(http.MethodGet, "/api/v1/categories/dates/products", "")
	if rec.Code != http.StatusOK || len(decodeData[[]catalog.Product](t, env)) != 2 {
		t.Errorf("dates category = %d %s", rec.Code, rec.Body.String())
	}

	rec, env = s.do(http.MethodGet, "/api/v1/categories/nuts/products", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeNotFound)

	rec, env = s.do(http.MethodGet, "/api/v1/search?q=MEDJOOL", "")
	if got := productIDs(decodeData[[]catalog.Product](t, env)); rec.Code != http.StatusOK || len(got) == 0 || got[0] != "1" {
		t.Errorf("search medjool = %d %v", rec.Code, got)
	}

	rec, env = s.do(http.MethodGet, "/api/v1/search", "")
	expectError(t, rec, env, http.StatusBadRequest, ErrCodeValidationFailed)

	rec, env = s.do(http.MethodGet, "/api/v1/categories", "")
	if rec.Code != http.StatusOK || len(decodeData[[]string](t, env)) != 5 {
		t.Errorf("categories = %d %s", rec.Code, rec.Body.String())
	}
}

func TestCartLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	const base = "/api/v1/sessions/shopper-1/cart"

	rec, env := s.do(http.MethodPost, base+"/items", `{"product_id":"1","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add = %d %s", rec.Code, rec.Body.String())
	}
	c := decodeData[CartView](t, env)
	if c.TotalItems != 2 || c.TotalPrice != 37.98 || len(c.Items) != 1 {
		t.Errorf("after add: %+v", c)
	}
	if env.Meta.SessionID != "shopper-1" {
		t.Errorf("meta.session_id = %q", env.Meta.SessionID)
	}

	// Same product merges into one line.
	_, env = s.do(http.MethodPost, base+"/items", `{"product_id":"1","quantity":3}`)
	c = decodeData[CartView](t, env)
	if len(c.Items) != 1 || c.Items[0].Quantity != 5 {
		t.Errorf("after merge: %+v", c)
	}

	// Missing quantity means one.
	_, env = s.do(http.MethodPost, base+"/items", `{"product_id":"3"}`)
	c = decodeData[CartView](t, env)
	if len(c.Items) != 2 || c.Items[1].Quantity != 1 || c.TotalItems != 6 {
		t.Errorf("after default quantity: %+v", c)
	}

	_, env = s.do(http.MethodPatch, base+"/items/1", `{"quantity":1}`)
	c = decodeData[CartView](t, env)
	if c.Items[0].Quantity != 1 || c.Items[0].Subtotal != 18.99 {
		t.Errorf("after update: %+v", c)
	}

	// Non-positive quantity removes.
	_, env = s.do(http.MethodPatch, base+"/items/1", `{"quantity":-5}`)
	c = decodeData[CartView](t, env)
	if len(c.Items) != 1 || c.Items[0].Product.ID != "3" {
		t.Errorf("after clamp remove: %+v", c)
	}

	// Absent product removal leaves the cart unchanged.
	rec, env = s.do(http.MethodDelete, base+"/items/42", "")
	c = decodeData[CartView](t, env)
	if rec.Code != http.StatusOK || len(c.Items) != 1 {
		t.Errorf("remove absent: %d %+v", rec.Code, c)
	}

	rec, env = s.do(http.MethodGet, base, "")
	if rec.Code != http.StatusOK || decodeData[CartView](t, env).TotalItems != 1 {
		t.Errorf("get cart: %d %s", rec.Code, rec.Body.String())
	}

	_, env = s.do(http.MethodDelete, base, "")
	if c = decodeData[CartView](t, env); len(c.Items) != 0 || c.TotalPrice != 0 {
		t.Errorf("after clear: %+v", c)
	}

	if _, err := s.store.Get(context.Background(), storage.SessionKey("shopper-1", storage.RecordCart)); err != nil {
		t.Errorf("cart record not persisted: %v", err)
	}
}

func TestCart_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	const base = "/api/v1/sessions/shopper-2/cart"
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown product", http.MethodPost, base + "/items", `{"product_id":"999"}`, http.StatusNotFound, ErrCodeProductNotFound},
		{"missing body", http.MethodPost, base + "/items", "", http.StatusBadRequest, ErrCodeBadRequest},
		{"bad json", http.MethodPost, base + "/items", `{"product_id":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown field", http.MethodPost, base + "/items", `{"product_id":"1","qty":2}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"negative quantity", http.MethodPost, base + "/items", `{"product_id":"1","quantity":-1}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"missing quantity", http.MethodPatch, base + "/items/1", `{}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"invalid session", http.MethodGet, "/api/v1/sessions/a:b/cart", "", http.StatusBadRequest, ErrCodeInvalidSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(tt.method, tt.path, tt.body)
			expectError(t, rec, env, tt.status, tt.code)
		})
	}
}

func TestSummaryAndPromo(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	const base = "/api/v1/sessions/shopper-3/cart"

	s.do(http.MethodPost, base+"/items", `{"product_id":"1","quantity":2}`)

	_, env := s.do(http.MethodGet, base+"/summary", "")
	sum := decodeData[SummaryView](t, env)
	if sum.Subtotal != 37.98 || sum.Shipping != 8.99 || sum.Total != 46.97 || sum.Promo != nil {
		t.Errorf("summary without promo = %+v", sum)
	}

	rec, env := s.do(http.MethodPost, base+"/promo", `{"code":"bogus"}`)
	expectError(t, rec, env, http.StatusNotFound, ErrCodePromoUnknown)

	rec, env = s.do(http.MethodPost, base+"/promo", `{"code":"BULK15"}`)
	expectError(t, rec, env, http.StatusUnprocessableEntity, ErrCodePromoNotEligible)

	rec, env = s.do(http.MethodPost, base+"/promo", `{"code":"welcome20"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("apply WELCOME20 = %d %s", rec.Code, rec.Body.String())
	}
	if d := decodeData[promo.Discount](t, env); d.Code != "WELCOME20" || d.Amount != 7.6 {
		t.Errorf("discount = %+v", d)
	}

	_, env = s.do(http.MethodGet, base+"/summary", "")
	sum = decodeData[SummaryView](t, env)
	if sum.Discount != 7.6 || sum.Total != 39.37 || sum.Promo == nil {
		t.Errorf("summary with promo = %+v", sum)
	}

	rec, _ = s.do(http.MethodDelete, base+"/promo", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("remove promo = %d", rec.Code)
	}
	_, env = s.do(http.MethodGet, base+"/summary", "")
	if sum = decodeData[SummaryView](t, env); sum.Discount != 0 || sum.Promo != nil {
		t.Errorf("summary after removing promo = %+v", sum)
	}
}

func TestTrackingAndPreferences(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	const base = "/api/v1/sessions/shopper-4"

	rec, env := s.do(http.MethodPost, base+"/track/view", `{"product_id":"3"}`)
	if rec.Code != http.StatusOK || decodeData[catalog.Product](t, env).ID != "3" {
		t.Fatalf("track view = %d %s", rec.Code, rec.Body.String())
	}
	if rec, _ = s.do(http.MethodPost, base+"/track/search", `{"query":"dates"}`); rec.Code != http.StatusNoContent {
		t.Errorf("track search = %d", rec.Code)
	}
	if rec, _ = s.do(http.MethodPost, base+"/track/time", `{"product_id":"3","seconds":12.5}`); rec.Code != http.StatusNoContent {
		t.Errorf("track time = %d", rec.Code)
	}
	rec, env = s.do(http.MethodPost, base+"/track/time", `{"product_id":"3","seconds":-1}`)
	expectError(t, rec, env, http.StatusBadRequest, ErrCodeValidationFailed)
	rec, env = s.do(http.MethodPost, base+"/track/view", `{"product_id":"999"}`)
	expectError(t, rec, env, http.StatusNotFound, ErrCodeProductNotFound)

	rec, env = s.do(http.MethodPut, base+"/wishlist/5", "")
	if rec.Code != http.StatusOK || strings.Join(decodeData[[]string](t, env), ",") != "5" {
		t.Errorf("wishlist add = %d %s", rec.Code, rec.Body.String())
	}
	rec, env = s.do(http.MethodPut, base+"/wishlist/999", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeProductNotFound)

	rec, env = s.do(http.MethodPost, base+"/favorites/apricots", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle favorite = %d %s", rec.Code, rec.Body.String())
	}
	rec, env = s.do(http.MethodPost, base+"/favorites/nuts", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeNotFound)

	rec, env = s.do(http.MethodPut, base+"/preferences/price-range", `{"min":10,"max":5}`)
	expectError(t, rec, env, http.StatusBadRequest, ErrCodeValidationFailed)
	rec, _ = s.do(http.MethodPut, base+"/preferences/price-range", `{"min":5,"max":30}`)
	if rec.Code != http.StatusOK {
		t.Errorf("price range = %d %s", rec.Code, rec.Body.String())
	}
	rec, _ = s.do(http.MethodPut, base+"/preferences/dietary", `{"restrictions":["vegan"]}`)
	if rec.Code != http.StatusOK {
		t.Errorf("dietary = %d %s", rec.Code, rec.Body.String())
	}

	_, env = s.do(http.MethodGet, base+"/preferences", "")
	view := decodeData[ProfileView](t, env)
	p := view.Preferences
	if len(p.ViewedProducts) != 1 || p.ViewedProducts[0] != "3" {
		t.Errorf("viewed = %v", p.ViewedProducts)
	}
	if len(p.SearchHistory) != 1 || p.SearchHistory[0] != "dates" {
		t.Errorf("search history = %v", p.SearchHistory)
	}
	if p.PriceRange != (catalog.PriceRange{5, 30}) {
		t.Errorf("price range = %v", p.PriceRange)
	}
	if len(p.DietaryRestrictions) != 1 || p.DietaryRestrictions[0] != "vegan" {
		t.Errorf("dietary = %v", p.DietaryRestrictions)
	}
	if len(p.FavoriteCategories) != 1 || p.FavoriteCategories[0] != catalog.CategoryApricots {
		t.Errorf("explicit favorites = %v", p.FavoriteCategories)
	}
	if len(view.CategoryScores) == 0 || view.CategoryScores[0].Category != catalog.CategoryFigs {
		t.Errorf("category scores = %+v", view.CategoryScores)
	}

	rec, _ = s.do(http.MethodGet, base+"/behavior", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"time_spent_on_products"`) {
		t.Errorf("behavior = %d %s", rec.Code, rec.Body.String())
	}

	rec, env = s.do(http.MethodDelete, base+"/wishlist/5", "")
	if rec.Code != http.StatusOK || len(decodeData[[]string](t, env)) != 0 {
		t.Errorf("wishlist remove = %d %s", rec.Code, rec.Body.String())
	}
}

func TestPurchasesEndFirstOrderPromo(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	const base = "/api/v1/sessions/shopper-5"

	rec, env := s.do(http.MethodPost, base+"/purchases", `{"product_ids":["1","999"]}`)
	expectError(t, rec, env, http.StatusNotFound, ErrCodeProductNotFound)

	rec, _ = s.do(http.MethodPost, base+"/purchases", `{"product_ids":["1"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("purchase = %d %s", rec.Code, rec.Body.String())
	}

	s.do(http.MethodPost, base+"/cart/items", `{"product_id":"1","quantity":2}`)
	rec, env = s.do(http.MethodPost, base+"/cart/promo", `{"code":"WELCOME20"}`)
	expectError(t, rec, env, http.StatusUnprocessableEntity, ErrCodePromoNotEligible)
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	const base = "/api/v1/sessions/shopper-6/recommendations"

	rec, env := s.do(http.MethodGet, base, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("personalized = %d %s", rec.Code, rec.Body.String())
	}
	// Every product sits in the default price window, so the list is full.
	if recs := decodeData[[]recommend.Recommendation](t, env); len(recs) != 8 {
		t.Errorf("personalized count = %d, want 8", len(recs))
	}

	_, env = s.do(http.MethodGet, base+"/explain", "")
	if scored := decodeData[[]recommend.Scored](t, env); len(scored) != 10 {
		t.Errorf("explain count = %d, want 10", len(scored))
	}

	_, env = s.do(http.MethodGet, base+"/similar/1", "")
	similar := productIDs(decodeData[[]catalog.Product](t, env))
	if len(similar) == 0 || len(similar) > 4 {
		t.Errorf("similar = %v", similar)
	}
	for _, id := range similar {
		if id == "1" {
			t.Error("similar list contains the product itself")
		}
	}

	_, env = s.do(http.MethodGet, base+"/similar/999", "")
	if got := decodeData[[]catalog.Product](t, env); len(got) != 0 {
		t.Errorf("similar for unknown id = %v", productIDs(got))
	}

	_, env = s.do(http.MethodGet, base+"/trending", "")
	if got := decodeData[[]catalog.Product](t, env); len(got) == 0 {
		t.Error("trending is empty")
	}

	_, env = s.do(http.MethodGet, base+"/complementary", "")
	if got := decodeData[[]catalog.Product](t, env); len(got) != 0 {
		t.Errorf("complementary for empty cart = %v", productIDs(got))
	}

	_, env = s.do(http.MethodGet, "/api/v1/categories/figs/recommendations", "")
	for _, p := range decodeData[[]catalog.Product](t, env) {
		if p.Category != catalog.CategoryFigs {
			t.Errorf("category recommendations include %s (%s)", p.ID, p.Category)
		}
	}

	rec, env = s.do(http.MethodGet, "/api/v1/categories/nuts/recommendations", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeNotFound)
}

func TestChatAndOffers(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, env := s.do(http.MethodPost, "/api/v1/chat", `{"message":"  Hello "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat = %d %s", rec.Code, rec.Body.String())
	}
	if a := decodeData[faq.Answer](t, env); a.Route != faq.RouteExact || a.Message == "" {
		t.Errorf("chat answer = %+v", a)
	}

	rec, env = s.do(http.MethodPost, "/api/v1/chat", `{"message":""}`)
	expectError(t, rec, env, http.StatusBadRequest, ErrCodeValidationFailed)

	_, env = s.do(http.MethodGet, "/api/v1/offers", "")
	if offers := decodeData[[]promo.Offer](t, env); len(offers) != 4 {
		t.Errorf("offers = %d, want 4", len(offers))
	}
}

func TestResetSession(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	s.do(http.MethodPost, "/api/v1/sessions/shopper-7/cart/items", `{"product_id":"2"}`)
	if s.store.Len() == 0 {
		t.Fatal("nothing persisted")
	}

	rec, _ := s.do(http.MethodDelete, "/api/v1/sessions/shopper-7", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset = %d", rec.Code)
	}
	if s.store.Len() != 0 {
		t.Errorf("store has %d keys after reset", s.store.Len())
	}
	_, env := s.do(http.MethodGet, "/api/v1/sessions/shopper-7/cart", "")
	if c := decodeData[CartView](t, env); len(c.Items) != 0 {
		t.Errorf("cart after reset = %+v", c)
	}
}

func TestTrackingThrottle(t *testing.T) {
	t.Parallel()

	cfg := DefaultMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.TrackingRate = 0.001
	cfg.TrackingBurst = 2
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rec, _ := s.do(http.MethodPost, "/api/v1/sessions/busy/track/search", `{"query":"figs"}`); rec.Code != http.StatusNoContent {
			t.Fatalf("call %d = %d", i, rec.Code)
		}
	}
	rec, env := s.do(http.MethodPost, "/api/v1/sessions/busy/track/search", `{"query":"figs"}`)
	expectError(t, rec, env, http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// Buckets are per session.
	if rec, _ := s.do(http.MethodPost, "/api/v1/sessions/calm/track/search", `{"query":"figs"}`); rec.Code != http.StatusNoContent {
		t.Errorf("other session throttled: %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rec, _ := s.do(http.MethodGet, "/api/v1/offers", ""); rec.Code != http.StatusOK {
			t.Fatalf("call %d = %d", i, rec.Code)
		}
	}
	rec, env := s.do(http.MethodGet, "/api/v1/offers", "")
	expectError(t, rec, env, http.StatusTooManyRequests, ErrCodeTooManyRequests)
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.MaxBodyBytes = 16
	s := newTestServer(t, cfg)

	rec, env := s.do(http.MethodPost, "/api/v1/chat", `{"message":"`+strings.Repeat("a", 64)+`"}`)
	expectError(t, rec, env, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge)
}

func TestRouterMisc(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, env := s.do(http.MethodGet, "/api/v1/nope", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeNotFound)

	rec, _ = s.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("metrics = %d", rec.Code)
	}

	rec, _ = s.do(http.MethodGet, "/api/v1/offers", "")
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id response header")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}

func TestCompression(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	var env envelope
	if err := json.NewDecoder(zr).Decode(&env); err != nil {
		t.Fatalf("decode gzipped envelope: %v", err)
	}
	if products := decodeData[[]catalog.Product](t, env); len(products) != 10 {
		t.Errorf("got %d products, want 10", len(products))
	}
}

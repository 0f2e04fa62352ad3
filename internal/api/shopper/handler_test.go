package shopper_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/api/shopper"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/middleware"
	"sofadeal/internal/service/shopperservice"
)

func newMux() *http.ServeMux {
	log := logger.NewLogger("error")
	svc := shopperservice.NewService(cache.NewMemoryClient(), nil, time.Hour, log)
	h := shopper.NewHandler(svc, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/cart", h.GetCartHandler)
	mux.HandleFunc("POST /v1/cart", h.AddToCartHandler)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCartHandler)
	mux.HandleFunc("DELETE /v1/cart/items/{itemId}", h.RemoveCartItemHandler)
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlistHandler)
	mux.HandleFunc("POST /v1/wishlist", h.AddToWishlistHandler)
	mux.HandleFunc("DELETE /v1/wishlist/{productId}", h.RemoveFromWishlistHandler)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body, session string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCartFlow(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPost, "/v1/cart", `{"productId":"p1","variantId":"v1","quantity":2}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, mux, http.MethodPost, "/v1/cart", `{"productId":"p1","variantId":"v1"}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)

	var cart domain.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Another session sees its own empty cart.
	rec = do(t, mux, http.MethodGet, "/v1/cart", "", "s2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessionId":"session:s2","items":[]}`, rec.Body.String())

	rec = do(t, mux, http.MethodDelete, "/v1/cart/items/"+cart.Items[0].ID, "", "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, mux, http.MethodDelete, "/v1/cart/items/"+cart.Items[0].ID, "", "s1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/v1/cart", "", "s1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAddToCart_Validation(t *testing.T) {
	mux := newMux()

	for _, body := range []string{`{"quantity":1}`, `{"productId":"p1","quantity":99}`, `{`} {
		rec := do(t, mux, http.MethodPost, "/v1/cart", body, "s1")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestWishlistFlow(t *testing.T) {
	mux := newMux()

	do(t, mux, http.MethodPost, "/v1/wishlist", `{"productId":"p1"}`, "s1")
	rec := do(t, mux, http.MethodPost, "/v1/wishlist", `{"productId":"p1"}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)

	var wl domain.Wishlist
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&wl))
	assert.Equal(t, []string{"p1"}, wl.ProductIDs)

	rec = do(t, mux, http.MethodDelete, "/v1/wishlist/p1", "", "s1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/v1/wishlist", "", "s1")
	assert.JSONEq(t, `{"sessionId":"session:s1","productIds":[]}`, rec.Body.String())
}

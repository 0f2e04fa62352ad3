package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"sofadeal/internal/api/contact"
	"sofadeal/internal/api/filters"
	"sofadeal/internal/api/order"
	"sofadeal/internal/api/product"
	"sofadeal/internal/api/searchadmin"
	"sofadeal/internal/api/session"
	"sofadeal/internal/api/shopper"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/middleware"

	_ "sofadeal/docs"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Product     *product.Handler
	Filters     *filters.Handler
	Shopper     *shopper.Handler
	Contact     *contact.Handler
	Order       *order.Handler
	Session     *session.Handler
	SearchAdmin *searchadmin.Handler
}

// RateLimit configures the per-IP limiter. A zero Limit disables it.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// NewRouter builds the HTTP routes of the storefront service.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, cacheClient cache.Client, limit RateLimit, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Storefront
	mux.HandleFunc("GET /v1/products", h.Product.ListProductsHandler)
	mux.HandleFunc("GET /v1/products/{id}", h.Product.GetProductHandler)

	mux.HandleFunc("GET /v1/filters", h.Filters.ResolveHandler)
	mux.HandleFunc("POST /v1/filters", h.Filters.UpdateHandler)
	mux.HandleFunc("POST /v1/filters/category", h.Filters.CategoryHandler)
	mux.HandleFunc("POST /v1/filters/reset", h.Filters.ResetHandler)
	mux.HandleFunc("POST /v1/price", h.Filters.PriceHandler)

	mux.HandleFunc("GET /v1/cart", h.Shopper.GetCartHandler)
	mux.HandleFunc("POST /v1/cart", h.Shopper.AddToCartHandler)
	mux.HandleFunc("DELETE /v1/cart", h.Shopper.ClearCartHandler)
	mux.HandleFunc("DELETE /v1/cart/items/{itemId}", h.Shopper.RemoveCartItemHandler)
	mux.HandleFunc("GET /v1/wishlist", h.Shopper.GetWishlistHandler)
	mux.HandleFunc("POST /v1/wishlist", h.Shopper.AddToWishlistHandler)
	mux.HandleFunc("DELETE /v1/wishlist/{productId}", h.Shopper.RemoveFromWishlistHandler)

	mux.HandleFunc("POST /v1/contact", h.Contact.SubmitHandler)
	mux.HandleFunc("POST /v1/login", h.Session.LoginHandler)

	// Back office
	auth := middleware.NewAuthMiddleware(tokenSvc)
	staff := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleEditor)(next))
	}
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin)(next))
	}

	mux.HandleFunc("GET /v1/admin/contact-messages", staff(h.Contact.ListHandler))
	mux.HandleFunc("GET /v1/admin/contact-messages/{id}", staff(h.Contact.GetHandler))
	mux.HandleFunc("PATCH /v1/admin/contact-messages/{id}", staff(h.Contact.MarkReadHandler))
	mux.HandleFunc("DELETE /v1/admin/contact-messages/{id}", admin(h.Contact.DeleteHandler))

	mux.HandleFunc("GET /v1/admin/orders", staff(h.Order.ListHandler))
	mux.HandleFunc("POST /v1/admin/orders/{id}/cancel", admin(h.Order.CancelHandler))

	mux.HandleFunc("GET /v1/admin/search-index", staff(h.SearchAdmin.StatusHandler))
	mux.HandleFunc("POST /v1/admin/search-index/refresh", admin(h.SearchAdmin.RefreshHandler))

	if limit.Limit <= 0 || cacheClient == nil {
		return mux
	}
	return middleware.RateLimiter(cacheClient, limit.Limit, limit.Window, log)(mux)
}

// PingHandler is the health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

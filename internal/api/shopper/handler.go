package shopper

import (
	"context"
	"net/http"

	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pkg/middleware"
)

// Service is the cart and wishlist store.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	AddToCart(ctx context.Context, sessionID string, item domain.CartItem) (domain.Cart, error)
	RemoveCartItem(ctx context.Context, sessionID, itemID string) (domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
	GetWishlist(ctx context.Context, sessionID string) (domain.Wishlist, error)
	AddToWishlist(ctx context.Context, sessionID, productID string) (domain.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, sessionID, productID string) (domain.Wishlist, error)
}

// Handler serves the cart and wishlist of the requesting shopper.
type Handler struct {
	Service Service
	Logger  logger.Logger
}

func NewHandler(svc Service, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AddToCartRequest is the body of POST /v1/cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// WishlistRequest is the body of POST /v1/wishlist.
type WishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Write(w, r, h.Logger, data, err, successStatus)
}

// GetCartHandler handles GET /v1/cart.
// @Summary Get the cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Shopper session id"
// @Success 200 {object} domain.Cart
// @Router /cart [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Service.GetCart(r.Context(), middleware.ViewerID(r))
	h.handleServiceResponse(w, r, cart, err, http.StatusOK)
}

// AddToCartHandler handles POST /v1/cart.
// @Summary Add a product to the cart
// @Description Adding the same product and variant again raises the quantity of the existing line.
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Shopper session id"
// @Param request body AddToCartRequest true "Product, variant and quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /cart [post]
func (h *Handler) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	cart, err := h.Service.AddToCart(r.Context(), middleware.ViewerID(r), domain.CartItem{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	h.handleServiceResponse(w, r, cart, err, http.StatusOK)
}

// RemoveCartItemHandler handles DELETE /v1/cart/items/{itemId}.
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Shopper session id"
// @Param itemId path string true "Cart line id"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} domain.ErrorResponse
// @Router /cart/items/{itemId} [delete]
func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Service.RemoveCartItem(r.Context(), middleware.ViewerID(r), r.PathValue("itemId"))
	h.handleServiceResponse(w, r, cart, err, http.StatusOK)
}

// ClearCartHandler handles DELETE /v1/cart.
// @Summary Empty the cart
// @Tags cart
// @Param X-Session-ID header string false "Shopper session id"
// @Success 204
// @Router /cart [delete]
func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.ClearCart(r.Context(), middleware.ViewerID(r))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// GetWishlistHandler handles GET /v1/wishlist.
// @Summary Get the wishlist
// @Tags wishlist
// @Produce json
// @Param X-Session-ID header string false "Shopper session id"
// @Success 200 {object} domain.Wishlist
// @Router /wishlist [get]
func (h *Handler) GetWishlistHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetWishlist(r.Context(), middleware.ViewerID(r))
	h.handleServiceResponse(w, r, list, err, http.StatusOK)
}

// AddToWishlistHandler handles POST /v1/wishlist.
// @Summary Save a product
// @Tags wishlist
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Shopper session id"
// @Param request body WishlistRequest true "Product id"
// @Success 200 {object} domain.Wishlist
// @Failure 400 {object} domain.ErrorResponse
// @Router /wishlist [post]
func (h *Handler) AddToWishlistHandler(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	list, err := h.Service.AddToWishlist(r.Context(), middleware.ViewerID(r), req.ProductID)
	h.handleServiceResponse(w, r, list, err, http.StatusOK)
}

// RemoveFromWishlistHandler handles DELETE /v1/wishlist/{productId}.
// @Summary Remove a saved product
// @Tags wishlist
// @Produce json
// @Param X-Session-ID header string false "Shopper session id"
// @Param productId path string true "Product id"
// @Success 200 {object} domain.Wishlist
// @Router /wishlist/{productId} [delete]
func (h *Handler) RemoveFromWishlistHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.RemoveFromWishlist(r.Context(), middleware.ViewerID(r), r.PathValue("productId"))
	h.handleServiceResponse(w, r, list, err, http.StatusOK)
}

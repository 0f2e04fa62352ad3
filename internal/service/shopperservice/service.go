package shopperservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/logger"
)

const (
	cartKey     = "cart:%s"
	wishlistKey = "wishlist:%s"

	// MaxQuantity caps a single cart line.
	MaxQuantity = 20
)

// ProductLookup checks products before they are added to a cart or wishlist.
type ProductLookup interface {
	FindByID(ctx context.Context, id string) (domain.RawProduct, error)
}

// Service stores the cart and wishlist of each shopper session.
type Service struct {
	cache    cache.Client
	products ProductLookup
	ttl      time.Duration
	logger   logger.Logger
}

// NewService creates the shopper store. products may be nil to skip catalog checks.
func NewService(cacheClient cache.Client, products ProductLookup, ttl time.Duration, log logger.Logger) *Service {
	return &Service{cache: cacheClient, products: products, ttl: ttl, logger: log}
}

// GetCart returns the cart of a session. A session without a cart gets an empty one.
func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	cart := domain.Cart{SessionID: sessionID, Items: []domain.CartItem{}}
	if err := s.load(ctx, fmt.Sprintf(cartKey, sessionID), &cart); err != nil {
		return domain.Cart{}, err
	}
	cart.SessionID = sessionID
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

// AddToCart adds quantity of a product (variant) to the cart, merging with an
// existing line for the same product and variant.
func (s *Service) AddToCart(ctx context.Context, sessionID string, item domain.CartItem) (domain.Cart, error) {
	item.ProductID = strings.TrimSpace(item.ProductID)
	item.VariantID = strings.TrimSpace(item.VariantID)
	if item.ProductID == "" {
		return domain.Cart{}, apperror.NewValidationError("productId is required")
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 0 || item.Quantity > MaxQuantity {
		return domain.Cart{}, apperror.NewValidationError(fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity))
	}
	if err := s.checkProduct(ctx, item.ProductID, item.VariantID); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	merged := false
	for i := range cart.Items {
		line := &cart.Items[i]
		if line.ProductID == item.ProductID && line.VariantID == item.VariantID {
			line.Quantity += item.Quantity
			if line.Quantity > MaxQuantity {
				line.Quantity = MaxQuantity
			}
			merged = true
			break
		}
	}
	if !merged {
		item.ID = uuid.NewString()
		item.AddedAt = time.Now().UTC()
		cart.Items = append(cart.Items, item)
	}

	if err := s.store(ctx, fmt.Sprintf(cartKey, sessionID), cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// RemoveCartItem deletes one cart line.
func (s *Service) RemoveCartItem(ctx context.Context, sessionID, itemID string) (domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	kept := cart.Items[:0]
	found := false
	for _, line := range cart.Items {
		if line.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return domain.Cart{}, apperror.NewNotFoundError(fmt.Sprintf("cart item %s not found", itemID))
	}
	cart.Items = kept

	if err := s.store(ctx, fmt.Sprintf(cartKey, sessionID), cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// ClearCart empties the cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, fmt.Sprintf(cartKey, sessionID)); err != nil {
		return apperror.NewInternalError("failed to clear cart", err)
	}
	return nil
}

// GetWishlist returns the wishlist of a session, empty when none was saved.
func (s *Service) GetWishlist(ctx context.Context, sessionID string) (domain.Wishlist, error) {
	wl := domain.Wishlist{SessionID: sessionID, ProductIDs: []string{}}
	if err := s.load(ctx, fmt.Sprintf(wishlistKey, sessionID), &wl); err != nil {
		return domain.Wishlist{}, err
	}
	wl.SessionID = sessionID
	if wl.ProductIDs == nil {
		wl.ProductIDs = []string{}
	}
	return wl, nil
}

// AddToWishlist saves a product. Adding a saved product again is a no-op.
func (s *Service) AddToWishlist(ctx context.Context, sessionID, productID string) (domain.Wishlist, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Wishlist{}, apperror.NewValidationError("productId is required")
	}

	wl, err := s.GetWishlist(ctx, sessionID)
	if err != nil {
		return domain.Wishlist{}, err
	}
	if wl.Contains(productID) {
		return wl, nil
	}
	if err := s.checkProduct(ctx, productID, ""); err != nil {
		return domain.Wishlist{}, err
	}

	wl.ProductIDs = append(wl.ProductIDs, productID)
	if err := s.store(ctx, fmt.Sprintf(wishlistKey, sessionID), wl); err != nil {
		return domain.Wishlist{}, err
	}
	return wl, nil
}

// RemoveFromWishlist drops a product. Removing an unsaved product is a no-op.
func (s *Service) RemoveFromWishlist(ctx context.Context, sessionID, productID string) (domain.Wishlist, error) {
	wl, err := s.GetWishlist(ctx, sessionID)
	if err != nil {
		return domain.Wishlist{}, err
	}
	if !wl.Contains(productID) {
		return wl, nil
	}

	kept := make([]string, 0, len(wl.ProductIDs))
	for _, id := range wl.ProductIDs {
		if id != productID {
			kept = append(kept, id)
		}
	}
	wl.ProductIDs = kept

	if err := s.store(ctx, fmt.Sprintf(wishlistKey, sessionID), wl); err != nil {
		return domain.Wishlist{}, err
	}
	return wl, nil
}

func (s *Service) checkProduct(ctx context.Context, productID, variantID string) error {
	if s.products == nil {
		return nil
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return apperror.NewValidationError(fmt.Sprintf("product %s does not exist", productID))
		}
		return err
	}
	if variantID == "" {
		return nil
	}
	for _, v := range p.Variants {
		if v.ID == variantID {
			return nil
		}
	}
	return apperror.NewValidationError(fmt.Sprintf("variant %s does not belong to product %s", variantID, productID))
}

func (s *Service) load(ctx context.Context, key string, into interface{}) error {
	raw, err := s.cache.Get(ctx, key)
	if cache.IsMiss(err) {
		return nil
	}
	if err != nil {
		return apperror.NewInternalError("failed to read shopper data", err)
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		s.logger.Warn("Discarding undecodable shopper data.", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return nil
}

func (s *Service) store(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return apperror.NewInternalError("failed to encode shopper data", err)
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		return apperror.NewInternalError("failed to save shopper data", err)
	}
	return nil
}

package domain

import (
	"strings"
	"time"
)

const sessionViewerPrefix = "session:"

// SessionViewer is the viewer id of a shopper session.
func SessionViewer(sessionID string) string {
	return sessionViewerPrefix + sessionID
}

// IsSessionViewer reports whether viewer names a shopper session rather than
// a client address shared by many shoppers.
func IsSessionViewer(viewer string) bool {
	return strings.HasPrefix(viewer, sessionViewerPrefix) && len(viewer) > len(sessionViewerPrefix)
}

// CartItem is one line of a shopper cart.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	VariantID string    `json:"variantId,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart is the transient cart of a shopper session.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
}

// Wishlist is the set of products saved by a shopper session.
type Wishlist struct {
	SessionID  string   `json:"sessionId"`
	ProductIDs []string `json:"productIds"`
}

// Contains reports whether productID is in the wishlist.
func (w Wishlist) Contains(productID string) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

package domain

import "time"

// SelectedVariant is the part of the chosen variant the listing card needs.
type SelectedVariant struct {
	ID              string  `json:"id"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	Stock           int     `json:"stock"`
	AssembleCharges float64 `json:"assembleCharges"`
}

// ProductViewModel is the flattened, display-ready projection of a product,
// its selected variant and its selected image. It is recomputed on every request.
type ProductViewModel struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	DeliveryInfo    string           `json:"deliveryInfo"`
	Price           float64          `json:"price"`
	OriginalPrice   *float64         `json:"originalPrice,omitempty"`
	Installment     float64          `json:"installment"`
	DiscountPercent float64          `json:"discountPercent,omitempty"`
	CategoryID      string           `json:"categoryId,omitempty"`
	CategoryName    string           `json:"category"`
	Rating          float64          `json:"rating"`
	InStock         bool             `json:"inStock"`
	Image           string           `json:"image"`
	SelectedVariant *SelectedVariant `json:"selectedVariant,omitempty"`
	InWishlist      bool             `json:"inWishlist"`
	CreatedAt       time.Time        `json:"-"`
}

// Listing modes.
const (
	ModeCatalog = "catalog"
	ModeSearch  = "search"
)

// Listing is the result of the catalog data adapter for one filter state.
type Listing struct {
	Items      []ProductViewModel `json:"items"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	TotalItems int                `json:"totalItems"`
	Mode       string             `json:"mode"`
	Filters    FilterState        `json:"filters"`
}

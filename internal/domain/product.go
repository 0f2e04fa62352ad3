package domain

import (
	"time"
)

// ImageType classifies a product image.
type ImageType string

const (
	ImageMain    ImageType = "main"
	ImageGallery ImageType = "gallery"
	Image360     ImageType = "360"
)

// Valid reports whether t is one of the known image types.
func (t ImageType) Valid() bool {
	switch t {
	case ImageMain, ImageGallery, Image360:
		return true
	}
	return false
}

// Category is the catalog category a product belongs to.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Variant is a purchasable SKU of a product (size/colour/material/stock/price combination).
type Variant struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"product_id"`
	SKU              string  `json:"sku"`
	Price            float64 `json:"price"` // 0 means "use the product base price"
	Size             string  `json:"size"`
	Color            string  `json:"color"`
	Material         string  `json:"material"`
	Stock            int     `json:"stock"`
	Featured         bool    `json:"featured"`
	DeliveryTimeDays string  `json:"delivery_time_days"`
	AssembleCharges  float64 `json:"assemble_charges"`
}

// Image is a product picture. An empty VariantID means the image belongs to the product itself.
type Image struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Type      ImageType `json:"type"`
	Order     int       `json:"order"`
	VariantID string    `json:"variant_id,omitempty"`
}

// RawProduct is a product as returned by the remote catalog API, after boundary validation.
type RawProduct struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	BasePrice     float64   `json:"base_price"`
	DiscountOffer float64   `json:"discount_offer"` // percentage, 0-100
	DeliveryInfo  string    `json:"delivery_info,omitempty"`
	Category      *Category `json:"category,omitempty"`
	Variants      []Variant `json:"variants,omitempty"`
	Images        []Image   `json:"images,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CategoryID returns the product category id, or "" when the product has none.
func (p RawProduct) CategoryID() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.ID
}

// PageMeta is the pagination block of the remote catalog search response.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// CatalogPage is one page of the remote catalog search.
type CatalogPage struct {
	Items []RawProduct `json:"items"`
	Meta  PageMeta     `json:"meta"`
}

// Package projector turns raw catalog products into display-ready view models.
// Everything here is pure: no I/O, no shared state, no panics on partial records.
package projector

import (
	"fmt"
	"sort"
	"strings"

	"sofadeal/internal/domain"
	"sofadeal/internal/pricing"
)

const (
	// PlaceholderImage is used when a product has no image at all.
	PlaceholderImage = "/images/placeholder.webp"
	// DefaultDeliveryInfo is used when neither the variant nor the product has delivery data.
	DefaultDeliveryInfo = "Delivery in 3-5 working days"
	// DefaultRating is shown until reviews exist.
	DefaultRating = 4.5
)

// Project maps a raw product into its view model for the given filters.
func Project(p domain.RawProduct, filters domain.FilterState) domain.ProductViewModel {
	variant := SelectVariant(p.Variants, filters)

	variantPrice := 0.0
	if variant != nil {
		variantPrice = variant.Price
	}
	price := pricing.ComputeDisplayPrice(pricing.EffectivePrice(p.BasePrice, variantPrice), p.DiscountOffer)

	vm := domain.ProductViewModel{
		ID:            p.ID,
		Name:          p.Name,
		DeliveryInfo:  DeliveryInfo(p, variant),
		Price:         price.DisplayPrice,
		OriginalPrice: price.OriginalPrice,
		Installment:   price.Installment,
		Rating:        DefaultRating,
		InStock:       true,
		Image:         SelectImage(p.Images, variant),
		CreatedAt:     p.CreatedAt,
	}
	if price.Discounted() {
		vm.DiscountPercent = p.DiscountOffer
	}
	if p.Category != nil {
		vm.CategoryID = p.Category.ID
		vm.CategoryName = p.Category.Name
	}
	if variant != nil {
		vm.InStock = variant.Stock > 0
		vm.SelectedVariant = &domain.SelectedVariant{
			ID:              variant.ID,
			Size:            variant.Size,
			Color:           variant.Color,
			Stock:           variant.Stock,
			AssembleCharges: variant.AssembleCharges,
		}
	}
	return vm
}

// ProjectAll projects every product, keeping order.
func ProjectAll(products []domain.RawProduct, filters domain.FilterState) []domain.ProductViewModel {
	out := make([]domain.ProductViewModel, 0, len(products))
	for _, p := range products {
		out = append(out, Project(p, filters))
	}
	return out
}

// SelectVariant picks the variant to display. First match wins:
// size filter match, material filter match, first featured, first in stock, first.
// It returns nil when there are no variants.
func SelectVariant(variants []domain.Variant, filters domain.FilterState) *domain.Variant {
	if len(variants) == 0 {
		return nil
	}

	if size := strings.TrimSpace(filters.Size); size != "" {
		for i := range variants {
			if strings.EqualFold(strings.TrimSpace(variants[i].Size), size) {
				return &variants[i]
			}
		}
	}
	if material := strings.TrimSpace(filters.Material); material != "" {
		for i := range variants {
			if strings.EqualFold(strings.TrimSpace(variants[i].Material), material) {
				return &variants[i]
			}
		}
	}
	for i := range variants {
		if variants[i].Featured {
			return &variants[i]
		}
	}
	for i := range variants {
		if variants[i].Stock > 0 {
			return &variants[i]
		}
	}
	return &variants[0]
}

// SelectImage picks the image URL to display. First match wins:
// lowest-order image of the selected variant, first "main" image, first image,
// placeholder. Images with an empty URL are ignored.
func SelectImage(images []domain.Image, variant *domain.Variant) string {
	usable := make([]domain.Image, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img.URL) != "" {
			usable = append(usable, img)
		}
	}

	if variant != nil && variant.ID != "" {
		var own []domain.Image
		for _, img := range usable {
			if img.VariantID == variant.ID {
				own = append(own, img)
			}
		}
		if len(own) > 0 {
			sort.SliceStable(own, func(i, j int) bool { return own[i].Order < own[j].Order })
			return own[0].URL
		}
	}

	for _, img := range usable {
		if img.Type == domain.ImageMain {
			return img.URL
		}
	}
	if len(usable) > 0 {
		return usable[0].URL
	}
	return PlaceholderImage
}

// DeliveryInfo resolves the delivery text: variant delivery days, then product
// delivery text, then the default.
func DeliveryInfo(p domain.RawProduct, variant *domain.Variant) string {
	if variant != nil {
		if days := strings.TrimSpace(variant.DeliveryTimeDays); days != "" {
			return fmt.Sprintf("Delivery in %s days", days)
		}
	}
	if info := strings.TrimSpace(p.DeliveryInfo); info != "" {
		return info
	}
	return DefaultDeliveryInfo
}

package catalogapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sofadeal/internal/domain"
)

// Wire types mirror the remote payloads loosely: numbers may arrive as JSON
// numbers or numeric strings, arrays may be missing. toDomain turns them into
// the strict domain shape or reports why the record is invalid.

type wirePage struct {
	Items []wireProduct `json:"items"`
	Meta  wireMeta      `json:"meta"`
}

type wireMeta struct {
	Page       flexInt `json:"page"`
	Limit      flexInt `json:"limit"`
	TotalItems flexInt `json:"totalItems"`
	TotalPages flexInt `json:"totalPages"`
}

func (m wireMeta) toDomain() domain.PageMeta {
	return domain.PageMeta{
		Page:       m.Page.orZero(),
		Limit:      m.Limit.orZero(),
		TotalItems: m.TotalItems.orZero(),
		TotalPages: m.TotalPages.orZero(),
	}
}

type wireProduct struct {
	ID            flexString    `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	BasePrice     flexFloat     `json:"base_price"`
	DiscountOffer flexFloat     `json:"discount_offer"`
	DeliveryInfo  string        `json:"delivery_info"`
	Category      *wireCategory `json:"category"`
	Variants      []wireVariant `json:"variants"`
	Images        []wireImage   `json:"images"`
	CreatedAt     string        `json:"created_at"`
}

type wireCategory struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
}

type wireVariant struct {
	ID               flexString `json:"id"`
	ProductID        flexString `json:"product_id"`
	SKU              string     `json:"sku"`
	Price            flexFloat  `json:"price"`
	Size             string     `json:"size"`
	Color            string     `json:"color"`
	Material         string     `json:"material"`
	Stock            flexInt    `json:"stock"`
	Featured         bool       `json:"featured"`
	DeliveryTimeDays flexString `json:"delivery_time_days"`
	AssembleCharges  flexFloat  `json:"assemble_charges"`
}

type wireImage struct {
	ID        flexString `json:"id"`
	URL       string     `json:"url"`
	Type      string     `json:"type"`
	Order     flexInt    `json:"order"`
	VariantID flexString `json:"variant_id"`
}

var (
	errMissingID   = errors.New("missing id")
	errMissingName = errors.New("missing name")
)

func (w wireProduct) toDomain() (domain.RawProduct, error) {
	id := strings.TrimSpace(w.ID.value)
	if id == "" {
		return domain.RawProduct{}, errMissingID
	}
	if strings.TrimSpace(w.Name) == "" {
		return domain.RawProduct{}, fmt.Errorf("product %s: %w", id, errMissingName)
	}

	basePrice, err := w.BasePrice.amount("base_price")
	if err != nil {
		return domain.RawProduct{}, fmt.Errorf("product %s: %w", id, err)
	}
	discount, err := w.DiscountOffer.amount("discount_offer")
	if err != nil {
		return domain.RawProduct{}, fmt.Errorf("product %s: %w", id, err)
	}
	if discount > 100 {
		return domain.RawProduct{}, fmt.Errorf("product %s: discount_offer %v is above 100", id, discount)
	}

	p := domain.RawProduct{
		ID:            id,
		Name:          strings.TrimSpace(w.Name),
		Description:   w.Description,
		BasePrice:     basePrice,
		DiscountOffer: discount,
		DeliveryInfo:  strings.TrimSpace(w.DeliveryInfo),
	}

	if w.Category != nil && strings.TrimSpace(w.Category.ID.value) != "" {
		p.Category = &domain.Category{ID: strings.TrimSpace(w.Category.ID.value), Name: w.Category.Name}
	}

	if w.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return domain.RawProduct{}, fmt.Errorf("product %s: invalid created_at: %w", id, err)
		}
		p.CreatedAt = created
	}

	for i, wv := range w.Variants {
		v, err := wv.toDomain(id)
		if err != nil {
			return domain.RawProduct{}, fmt.Errorf("product %s: variant %d: %w", id, i, err)
		}
		p.Variants = append(p.Variants, v)
	}
	for i, wi := range w.Images {
		img, err := wi.toDomain()
		if err != nil {
			return domain.RawProduct{}, fmt.Errorf("product %s: image %d: %w", id, i, err)
		}
		p.Images = append(p.Images, img)
	}

	return p, nil
}

func (w wireVariant) toDomain(productID string) (domain.Variant, error) {
	id := strings.TrimSpace(w.ID.value)
	if id == "" {
		return domain.Variant{}, errMissingID
	}
	price, err := w.Price.amount("price")
	if err != nil {
		return domain.Variant{}, err
	}
	charges, err := w.AssembleCharges.amount("assemble_charges")
	if err != nil {
		return domain.Variant{}, err
	}
	if w.Stock.bad {
		return domain.Variant{}, fmt.Errorf("stock is not a number")
	}
	if w.Stock.value < 0 {
		return domain.Variant{}, fmt.Errorf("negative stock %d", w.Stock.value)
	}

	owner := strings.TrimSpace(w.ProductID.value)
	if owner == "" {
		owner = productID
	}

	return domain.Variant{
		ID:               id,
		ProductID:        owner,
		SKU:              w.SKU,
		Price:            price,
		Size:             strings.TrimSpace(w.Size),
		Color:            strings.TrimSpace(w.Color),
		Material:         strings.TrimSpace(w.Material),
		Stock:            w.Stock.value,
		Featured:         w.Featured,
		DeliveryTimeDays: strings.TrimSpace(w.DeliveryTimeDays.value),
		AssembleCharges:  charges,
	}, nil
}

func (w wireImage) toDomain() (domain.Image, error) {
	t := domain.ImageType(strings.ToLower(strings.TrimSpace(w.Type)))
	if t == "" {
		t = domain.ImageGallery
	}
	if !t.Valid() {
		return domain.Image{}, fmt.Errorf("unknown image type %q", w.Type)
	}
	if w.Order.bad {
		return domain.Image{}, fmt.Errorf("order is not a number")
	}
	return domain.Image{
		ID:        w.ID.value,
		URL:       strings.TrimSpace(w.URL),
		Type:      t,
		Order:     w.Order.value,
		VariantID: strings.TrimSpace(w.VariantID.value),
	}, nil
}

// flexFloat accepts a JSON number, a numeric string, null or "".
type flexFloat struct {
	value float64
	bad   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = flexFloat{}
	s, ok := scalar(data)
	if !ok {
		f.bad = true
		return nil
	}
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		f.bad = true
		return nil
	}
	f.value = v
	return nil
}

// amount returns the value as a non-negative money amount.
func (f flexFloat) amount(field string) (float64, error) {
	if f.bad {
		return 0, fmt.Errorf("%s is not a number", field)
	}
	if f.value < 0 {
		return 0, fmt.Errorf("negative %s %v", field, f.value)
	}
	return f.value, nil
}

// flexInt accepts a JSON integer, an integer string, null or "".
type flexInt struct {
	value int
	bad   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt{}
	s, ok := scalar(data)
	if !ok {
		f.bad = true
		return nil
	}
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		fv, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || fv != math.Trunc(fv) || math.Abs(fv) > math.MaxInt32 {
			f.bad = true
			return nil
		}
		v = int(fv)
	}
	f.value = v
	return nil
}

func (f flexInt) orZero() int {
	if f.bad {
		return 0
	}
	return f.value
}

// flexString accepts a JSON string or number (ids are sometimes numeric).
type flexString struct {
	value string
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	s, _ := scalar(data)
	f.value = s
	return nil
}

// scalar extracts the text of a JSON string or number. null yields "".
// Objects, arrays and booleans are reported as not scalar.
func scalar(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", true
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case '{', '[', 't', 'f':
		return "", false
	default:
		return string(data), true
	}
}

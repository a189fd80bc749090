package serializers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"katalog/internal/models"

	"github.com/shopspring/decimal"
)

const (
	msgRequired = "This field is required."
	msgNull     = "This field may not be null."
	msgBlank    = "This field may not be blank."
)

// ProductResponse is the read representation of a product. Relations are
// rendered as ids and money as fixed two-place strings.
type ProductResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	Category         *string   `json:"category"`
	Tags             []string  `json:"tags"`
	Price            string    `json:"price"`
	DiscountPrice    *string   `json:"discount_price"`
	Stock            int       `json:"stock"`
	IsActive         bool      `json:"is_active"`
	Image            *string   `json:"image"`
	AdditionalImages []string  `json:"additional_images"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProductResponse projects a product onto its read representation.
func NewProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		Category:         p.CategoryID,
		Tags:             p.TagIDs(),
		Price:            p.Price.StringFixed(2),
		Stock:            p.Stock,
		IsActive:         p.IsActive,
		Image:            p.Image,
		AdditionalImages: p.AdditionalImageIDs(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.DiscountPrice.Valid {
		s := p.DiscountPrice.Decimal.StringFixed(2)
		resp.DiscountPrice = &s
	}
	return resp
}

// NewProductListResponse renders products in order. The result is never nil
// so an empty catalog encodes as [].
func NewProductListResponse(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

// ProductInput is the write representation of a product. Pointer fields tell
// an absent or null value apart from a zero value.
type ProductInput struct {
	Name             *string          `json:"name" validate:"required,max=255"`
	Slug             *string          `json:"slug" validate:"omitempty,max=255,slug"`
	Description      *string          `json:"description"`
	Category         *string          `json:"category"`
	Tags             []string         `json:"tags" validate:"omitempty,dive,required"`
	// Money fields are checked against MoneyRules by Validate.
	Price            *decimal.Decimal `json:"price" validate:"-"`
	DiscountPrice    *decimal.Decimal `json:"discount_price" validate:"-"`
	Stock            *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive         *bool            `json:"is_active"`
	Image            *string          `json:"image" validate:"omitempty,max=255"`
	AdditionalImages []string         `json:"additional_images" validate:"omitempty,dive,required"`

	raw        map[string]json.RawMessage
	decodeErrs FieldErrors
}

// nullable lists the fields that accept an explicit null.
var nullable = map[string]bool{
	"category":       true,
	"discount_price": true,
	"image":          true,
}

// ParseProductInput decodes a JSON object field by field so that a value of
// the wrong type is reported against its field. Only a body that is not a
// JSON object returns an error.
func ParseProductInput(body []byte) (*ProductInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("request body must be a JSON object: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}

	in := &ProductInput{raw: raw, decodeErrs: FieldErrors{}}
	in.decode("name", &in.Name, "Not a valid string.")
	in.decode("slug", &in.Slug, "Not a valid string.")
	in.decode("description", &in.Description, "Not a valid string.")
	in.decode("category", &in.Category, "Incorrect type. Expected pk value.")
	in.decode("tags", &in.Tags, "Expected a list of pk values.")
	in.decodeDecimal("price", &in.Price)
	in.decodeDecimal("discount_price", &in.DiscountPrice)
	in.decode("stock", &in.Stock, "A valid integer is required.")
	in.decode("is_active", &in.IsActive, "Must be a valid boolean.")
	in.decode("image", &in.Image, "Not a valid string.")
	in.decode("additional_images", &in.AdditionalImages, "Expected a list of pk values.")

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.Category != nil && *in.Category == "" {
		in.Category = nil
	}
	return in, nil
}

func (in *ProductInput) decode(field string, dst interface{}, msg string) {
	v, ok := in.raw[field]
	if !ok {
		return
	}
	if err := json.Unmarshal(v, dst); err != nil {
		in.decodeErrs.Add(field, msg)
	}
}

// decodeDecimal refuses oversized numbers before handing them to the decimal
// parser.
func (in *ProductInput) decodeDecimal(field string, dst **decimal.Decimal) {
	v, ok := in.raw[field]
	if !ok {
		return
	}
	if len(v) > maxDecimalInputLength {
		in.decodeErrs.Add(field, "String value too large.")
		return
	}
	in.decode(field, dst, "A valid number is required.")
}

// Has reports whether field was present in the request body.
func (in *ProductInput) Has(field string) bool {
	_, ok := in.raw[field]
	return ok
}

func (in *ProductInput) isNull(field string) bool {
	v, ok := in.raw[field]
	return ok && strings.TrimSpace(string(v)) == "null"
}

// Validate checks the input. With partial set, absent fields are not
// required, which is how PATCH requests are validated.
func (in *ProductInput) Validate(partial bool) FieldErrors {
	errs := FieldErrors{}
	errs.Merge(in.decodeErrs)

	for field := range in.raw {
		if !nullable[field] && in.isNull(field) && !errs.Has(field) {
			errs.Add(field, msgNull)
		}
	}

	for field, msgs := range ValidateStruct(in) {
		if errs.Has(field) {
			continue
		}
		for _, msg := range msgs {
			if msg == msgRequired && in.Has(field) {
				// Present but empty; null was reported above.
				errs.Add(field, msgBlank)
				continue
			}
			if msg == msgRequired && partial {
				continue
			}
			errs.Add(field, msg)
		}
	}

	// required accepts a pointer to "", so blank names are caught here.
	if in.Name != nil && *in.Name == "" && !errs.Has("name") {
		errs.Add("name", msgBlank)
	}

	in.validateDecimal(errs, "price", in.Price, !partial)
	in.validateDecimal(errs, "discount_price", in.DiscountPrice, false)
	return errs
}

func (in *ProductInput) validateDecimal(errs FieldErrors, field string, d *decimal.Decimal, required bool) {
	if errs.Has(field) {
		return
	}
	if d == nil {
		if required && !in.Has(field) {
			errs.Add(field, msgRequired)
		}
		return
	}
	if msg := MoneyRules.Check(*d); msg != "" {
		errs.Add(field, msg)
	}
}

// NewProduct returns a product carrying the column defaults.
func NewProduct() *models.Product {
	return &models.Product{IsActive: true}
}

// Apply copies the scalar fields present in the input onto p. Relations
// (category, tags, additional images) are resolved by the caller.
func (in *ProductInput) Apply(p *models.Product) {
	if in.Has("name") && in.Name != nil {
		p.Name = *in.Name
	}
	if in.Has("slug") && in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Has("description") && in.Description != nil {
		p.Description = *in.Description
	}
	if in.Has("category") {
		p.CategoryID = in.Category
		p.Category = nil
	}
	if in.Has("price") && in.Price != nil {
		p.Price = *in.Price
	}
	if in.Has("discount_price") {
		if in.DiscountPrice != nil {
			p.DiscountPrice = decimal.NewNullDecimal(*in.DiscountPrice)
		} else {
			p.DiscountPrice = decimal.NullDecimal{}
		}
	}
	if in.Has("stock") && in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Has("is_active") && in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Has("image") {
		if in.Image == nil || *in.Image == "" {
			p.Image = nil
		} else {
			ref := StoragePath(models.ImagesPrefix, *in.Image)
			p.Image = &ref
		}
	}
}

// StoragePath places a relative media reference under prefix. Absolute URLs
// and references already under prefix are returned unchanged.
func StoragePath(prefix, ref string) string {
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, prefix) {
		return ref
	}
	return prefix + strings.TrimLeft(ref, "/")
}

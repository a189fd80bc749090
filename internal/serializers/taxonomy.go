package serializers

import (
	"strings"

	"katalog/internal/models"
)

// CategoryInput is the write representation of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"omitempty,max=255,slug"`
}

// Validate checks the input against the category columns.
func (in *CategoryInput) Validate() FieldErrors {
	in.Name = strings.TrimSpace(in.Name)
	return ValidateStruct(in)
}

// ToModel builds an unsaved category; an empty slug is derived on save.
func (in *CategoryInput) ToModel() *models.Category {
	return &models.Category{Name: in.Name, Slug: in.Slug}
}

// TagInput is the write representation of a tag.
type TagInput struct {
	Name string `json:"name" validate:"required,max=50"`
	Slug string `json:"slug" validate:"omitempty,max=50,slug"`
}

// Validate checks the input against the tag columns.
func (in *TagInput) Validate() FieldErrors {
	in.Name = strings.TrimSpace(in.Name)
	return ValidateStruct(in)
}

// ToModel builds an unsaved tag; an empty slug is derived on save.
func (in *TagInput) ToModel() *models.Tag {
	return &models.Tag{Name: in.Name, Slug: in.Slug}
}

// ProductImageInput is the write representation of an additional image.
type ProductImageInput struct {
	Image   string `json:"image" validate:"required,max=255"`
	AltText string `json:"alt_text" validate:"max=255"`
}

// Validate checks the input against the image columns.
func (in *ProductImageInput) Validate() FieldErrors {
	in.Image = strings.TrimSpace(in.Image)
	return ValidateStruct(in)
}

// ToModel builds an unsaved image stored under the additional images prefix.
func (in *ProductImageInput) ToModel() *models.ProductImage {
	return &models.ProductImage{
		Image:   StoragePath(models.AdditionalImagesPrefix, in.Image),
		AltText: in.AltText,
	}
}

package models

import (
	"time"

	"katalog/pkg/slugify"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ImagesPrefix is the storage prefix for a product's main image.
const ImagesPrefix = "products/images/"

// Product represents a product in the catalog.
// JSON rendering goes through the serializers package, so no json tags here.
type Product struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string `gorm:"type:text"`

	CategoryID *string   `gorm:"type:varchar(36);index"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Tags       []Tag     `gorm:"many2many:product_tags"`

	Price         decimal.Decimal     `gorm:"type:decimal(10,2);not null;check:price >= 0"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(10,2);check:discount_price >= 0"`
	Stock         int                 `gorm:"not null;default:0;check:stock >= 0"`
	IsActive      bool                `gorm:"not null"`

	Image            *string        `gorm:"type:varchar(255)"`
	AdditionalImages []ProductImage `gorm:"many2many:product_additional_images"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeSave derives the slug from the name when none was supplied.
// An explicit slug is left untouched.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slugify.MakeMax(p.Name, SlugMaxLength)
	}
	return nil
}

func (p Product) String() string {
	return p.Name
}

// TagIDs returns the ids of the attached tags in their loaded order.
func (p *Product) TagIDs() []string {
	ids := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// AdditionalImageIDs returns the ids of the attached additional images.
func (p *Product) AdditionalImageIDs() []string {
	ids := make([]string, 0, len(p.AdditionalImages))
	for _, img := range p.AdditionalImages {
		ids = append(ids, img.ID)
	}
	return ids
}

// AllModels lists every model for auto-migration, dependencies first.
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Tag{},
		&ProductImage{},
		&Product{},
	}
}

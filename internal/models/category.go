package models

import (
	"time"

	"katalog/pkg/slugify"

	"gorm.io/gorm"
)

// Column sizes shared by models and serializers.
const (
	NameMaxLength    = 255
	SlugMaxLength    = 255
	TagNameMaxLength = 50
	TagSlugMaxLength = 50
)

// Category groups products. Deleting a category keeps its products and
// clears their category reference.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave derives the slug from the name when none was supplied.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slugify.MakeMax(c.Name, SlugMaxLength)
	}
	return nil
}

func (c Category) String() string {
	return c.Name
}

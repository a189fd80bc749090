package models

import (
	"time"

	"katalog/pkg/slugify"

	"gorm.io/gorm"
)

// Tag is a free-form label attached to any number of products.
type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"type:varchar(50);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave derives the slug from the name when none was supplied.
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = slugify.MakeMax(t.Name, TagSlugMaxLength)
	}
	return nil
}

func (t Tag) String() string {
	return t.Name
}

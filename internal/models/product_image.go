package models

import (
	"fmt"
	"time"
)

// AdditionalImagesPrefix is the storage prefix under which additional
// product images are kept. The image column stores the reference only.
const AdditionalImagesPrefix = "products/additional_images/"

// ProductImage is an extra picture that can be shared between products.
type ProductImage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Image     string    `json:"image" gorm:"type:varchar(255);not null"`
	AltText   string    `json:"alt_text" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}

func (i ProductImage) String() string {
	return fmt.Sprintf("Image for %s", i.Image)
}

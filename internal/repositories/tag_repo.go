package repositories

import (
	"context"

	"katalog/internal/models"
)

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, tag *models.Tag) error
}

// ProductImageRepository defines the interface for additional image data access.
type ProductImageRepository interface {
	GetAll(ctx context.Context) ([]models.ProductImage, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.ProductImage, error)
	Create(ctx context.Context, image *models.ProductImage) error
}

package repositories

import (
	"context"

	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Returned products have Tags and AdditionalImages loaded.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

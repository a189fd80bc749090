package repositories

import (
	"context"
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Tags").Preload("AdditionalImages")
}

// GetAll retrieves all products, newest first.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.withRelations(ctx).Order("created_at DESC").Order("id").Find(&products).Error; err != nil {
		return nil, translate("get all products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(fmt.Sprintf("get product %s", id), err)
	}
	return &product, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, "slug = ?", slug).Error; err != nil {
		return nil, translate(fmt.Sprintf("get product by slug %s", slug), err)
	}
	return &product, nil
}

// ExistsByName reports whether another product already uses name.
func (r *GORMProductRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	ok, err := exists(r.db.WithContext(ctx), &models.Product{}, "name", name, excludeID)
	if err != nil {
		return false, translate("check product name", err)
	}
	return ok, nil
}

// ExistsBySlug reports whether another product already uses slug.
func (r *GORMProductRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	ok, err := exists(r.db.WithContext(ctx), &models.Product{}, "slug", slug, excludeID)
	if err != nil {
		return false, translate("check product slug", err)
	}
	return ok, nil
}

// Create inserts the product and links its tags and additional images in one
// transaction. The linked records must already exist.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return replaceProductRelations(tx, product)
	})
	if err != nil {
		return translate("create product", err)
	}
	return nil
}

// Update saves every column of the product and replaces its tag and
// additional image sets.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Save would insert a missing row, so check first.
		if err := tx.Select("id").First(&models.Product{}, "id = ?", product.ID).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}
		return replaceProductRelations(tx, product)
	})
	if err != nil {
		return translate(fmt.Sprintf("update product %s", product.ID), err)
	}
	return nil
}

// Delete removes a product and its tag and image links. The tags and images
// themselves are kept.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&product).Association("AdditionalImages").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return translate(fmt.Sprintf("delete product %s", id), err)
	}
	return nil
}

func replaceProductRelations(tx *gorm.DB, product *models.Product) error {
	tags := product.Tags
	if len(tags) == 0 {
		if err := tx.Model(product).Association("Tags").Clear(); err != nil {
			return err
		}
	} else if err := tx.Model(product).Association("Tags").Replace(tags); err != nil {
		return err
	}

	images := product.AdditionalImages
	if len(images) == 0 {
		return tx.Model(product).Association("AdditionalImages").Clear()
	}
	return tx.Model(product).Association("AdditionalImages").Replace(images)
}

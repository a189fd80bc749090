package repositories

import (
	"context"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{db: db}
}

// GetAll retrieves all tags ordered by name.
func (r *GORMTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, translate("get all tags", err)
	}
	return tags, nil
}

// FindByIDs returns the tags matching ids. Missing ids are simply absent
// from the result.
func (r *GORMTagRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, translate("find tags", err)
	}
	return tags, nil
}

// ExistsByName reports whether another tag already uses name.
func (r *GORMTagRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	ok, err := exists(r.db.WithContext(ctx), &models.Tag{}, "name", name, excludeID)
	if err != nil {
		return false, translate("check tag name", err)
	}
	return ok, nil
}

// ExistsBySlug reports whether another tag already uses slug.
func (r *GORMTagRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	ok, err := exists(r.db.WithContext(ctx), &models.Tag{}, "slug", slug, excludeID)
	if err != nil {
		return false, translate("check tag slug", err)
	}
	return ok, nil
}

// Create inserts a new tag.
func (r *GORMTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return translate("create tag", err)
	}
	return nil
}

// GORMProductImageRepository is a GORM implementation of ProductImageRepository.
type GORMProductImageRepository struct {
	db *gorm.DB
}

// NewGORMProductImageRepository creates a new instance of GORMProductImageRepository.
func NewGORMProductImageRepository(db *gorm.DB) *GORMProductImageRepository {
	return &GORMProductImageRepository{db: db}
}

// GetAll retrieves all additional images, oldest first.
func (r *GORMProductImageRepository) GetAll(ctx context.Context) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	if err := r.db.WithContext(ctx).Order("created_at").Order("id").Find(&images).Error; err != nil {
		return nil, translate("get all product images", err)
	}
	return images, nil
}

// FindByIDs returns the images matching ids.
func (r *GORMProductImageRepository) FindByIDs(ctx context.Context, ids []string) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	if len(ids) == 0 {
		return images, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, translate("find product images", err)
	}
	return images, nil
}

// Create inserts a new additional image.
func (r *GORMProductImageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return translate("create product image", err)
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves all categories ordered by name.
func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, translate("get all categories", err)
	}
	return categories, nil
}

// GetByID retrieves a category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(fmt.Sprintf("get category %s", id), err)
	}
	return &category, nil
}

// GetBySlug retrieves a category by its slug.
func (r *GORMCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, translate(fmt.Sprintf("get category by slug %s", slug), err)
	}
	return &category, nil
}

// ExistsByName reports whether another category already uses name.
func (r *GORMCategoryRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	ok, err := exists(r.db.WithContext(ctx), &models.Category{}, "name", name, excludeID)
	if err != nil {
		return false, translate("check category name", err)
	}
	return ok, nil
}

// ExistsBySlug reports whether another category already uses slug.
func (r *GORMCategoryRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	ok, err := exists(r.db.WithContext(ctx), &models.Category{}, "slug", slug, excludeID)
	if err != nil {
		return false, translate("check category slug", err)
	}
	return ok, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return translate("create category", err)
	}
	return nil
}

// Delete removes a category. Its products are kept with the category cleared.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}
		// The foreign key is ON DELETE SET NULL as well; clearing here keeps
		// databases without enforced foreign keys consistent.
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return translate(fmt.Sprintf("delete category %s", id), err)
	}
	return nil
}

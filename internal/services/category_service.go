package services

import (
	"context"
	"fmt"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/serializers"
	"katalog/pkg/slugify"

	"go.uber.org/zap"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
	log  *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log.Named("categories")}
}

// GetAllCategories retrieves all categories ordered by name.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

// CreateCategory validates the input and persists a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, in *serializers.CategoryInput) (*models.Category, error) {
	errs := in.Validate()
	if !errs.Has("name") {
		slug := in.Slug
		if slug == "" {
			slug = slugify.MakeMax(in.Name, models.SlugMaxLength)
		}
		if err := checkNameAndSlug(ctx, s.repo, "category", in.Name, slug, errs); err != nil {
			return nil, err
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	category := in.ToModel()
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.log.Info("category created", zap.String("id", category.ID), zap.String("slug", category.Slug))
	return category, nil
}

// DeleteCategory removes the category identified by slug. Its products are
// kept with no category.
func (s *CategoryService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.log.Info("category deleted", zap.String("id", category.ID), zap.String("slug", category.Slug))
	return nil
}

type uniqueChecker interface {
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
}

// checkNameAndSlug adds "<entity> with this <field> already exists." errors
// for a new record named name with the given effective slug.
func checkNameAndSlug(ctx context.Context, repo uniqueChecker, entity, name, slug string, errs serializers.FieldErrors) error {
	taken, err := repo.ExistsByName(ctx, name, "")
	if err != nil {
		return err
	}
	if taken {
		errs.Add("name", entity+" with this name already exists.")
	}

	if errs.Has("slug") || slug == "" {
		return nil
	}
	taken, err = repo.ExistsBySlug(ctx, slug, "")
	if err != nil {
		return err
	}
	if taken {
		errs.Add("slug", entity+" with this slug already exists.")
	}
	return nil
}

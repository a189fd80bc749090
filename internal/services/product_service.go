package services

import (
	"context"
	"errors"
	"fmt"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/serializers"
	"katalog/pkg/slugify"

	"go.uber.org/zap"
)

// ProductService handles business logic related to products.
type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	tags       repositories.TagRepository
	images     repositories.ProductImageRepository
	events     EventPublisher
	log        *zap.Logger
}

// NewProductService creates a new ProductService. events may be nil, in
// which case no events are published.
func NewProductService(
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	tags repositories.TagRepository,
	images repositories.ProductImageRepository,
	events EventPublisher,
	log *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		tags:       tags,
		images:     images,
		events:     events,
		log:        log.Named("products"),
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

// CreateProduct validates the input and persists a new product. Invalid
// input is returned as serializers.FieldErrors and nothing is written.
func (s *ProductService) CreateProduct(ctx context.Context, in *serializers.ProductInput) (*models.Product, error) {
	errs := in.Validate(false)

	product := serializers.NewProduct()
	in.Apply(product)
	if err := s.prepare(ctx, in, product, errs); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("product created", zap.String("id", product.ID), zap.String("slug", product.Slug))
	publishProductEvent(s.events, s.log, EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies the input to the product identified by slug. With
// partial set only the fields present in the input are required.
func (s *ProductService) UpdateProduct(ctx context.Context, slug string, in *serializers.ProductInput, partial bool) (*models.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	errs := in.Validate(partial)
	in.Apply(product)
	if err := s.prepare(ctx, in, product, errs); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.log.Info("product updated", zap.String("id", product.ID), zap.String("slug", product.Slug))
	publishProductEvent(s.events, s.log, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes the product identified by slug.
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.log.Info("product deleted", zap.String("id", product.ID), zap.String("slug", product.Slug))
	publishProductEvent(s.events, s.log, EventProductDeleted, product)
	return nil
}

// prepare resolves relations and checks uniqueness, adding problems to errs.
// It returns errs when anything is wrong, or a lookup error.
func (s *ProductService) prepare(ctx context.Context, in *serializers.ProductInput, product *models.Product, errs serializers.FieldErrors) error {
	if err := s.resolveRelations(ctx, in, product, errs); err != nil {
		return err
	}
	if err := s.checkUnique(ctx, product, errs); err != nil {
		return err
	}
	return errs.Err()
}

func (s *ProductService) resolveRelations(ctx context.Context, in *serializers.ProductInput, product *models.Product, errs serializers.FieldErrors) error {
	if in.Has("category") && in.Category != nil && !errs.Has("category") {
		if _, err := s.categories.GetByID(ctx, *in.Category); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			errs.Add("category", doesNotExist(*in.Category))
		}
	}

	if in.Has("tags") && !errs.Has("tags") {
		ids := unique(in.Tags)
		found, err := s.tags.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[string]models.Tag, len(found))
		for _, t := range found {
			byID[t.ID] = t
		}
		tags := make([]models.Tag, 0, len(ids))
		for _, id := range ids {
			t, ok := byID[id]
			if !ok {
				errs.Add("tags", doesNotExist(id))
				continue
			}
			tags = append(tags, t)
		}
		product.Tags = tags
	}

	if in.Has("additional_images") && !errs.Has("additional_images") {
		ids := unique(in.AdditionalImages)
		found, err := s.images.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[string]models.ProductImage, len(found))
		for _, img := range found {
			byID[img.ID] = img
		}
		images := make([]models.ProductImage, 0, len(ids))
		for _, id := range ids {
			img, ok := byID[id]
			if !ok {
				errs.Add("additional_images", doesNotExist(id))
				continue
			}
			images = append(images, img)
		}
		product.AdditionalImages = images
	}
	return nil
}

// checkUnique reports name and slug collisions with other products. The
// unique indexes still guard against races between the check and the write.
func (s *ProductService) checkUnique(ctx context.Context, product *models.Product, errs serializers.FieldErrors) error {
	if product.Name == "" || errs.Has("name") {
		return nil
	}

	taken, err := s.products.ExistsByName(ctx, product.Name, product.ID)
	if err != nil {
		return err
	}
	if taken {
		errs.Add("name", "product with this name already exists.")
	}

	if errs.Has("slug") {
		return nil
	}
	slug := product.Slug
	if slug == "" {
		slug = slugify.MakeMax(product.Name, models.SlugMaxLength)
	}
	taken, err = s.products.ExistsBySlug(ctx, slug, product.ID)
	if err != nil {
		return err
	}
	if taken {
		errs.Add("slug", "product with this slug already exists.")
	}
	return nil
}

func doesNotExist(id string) string {
	return fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", id)
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

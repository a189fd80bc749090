package services

import (
	"context"
	"fmt"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/serializers"

	"go.uber.org/zap"
)

// ProductImageService manages the additional images products refer to.
type ProductImageService struct {
	repo repositories.ProductImageRepository
	log  *zap.Logger
}

// NewProductImageService creates a new ProductImageService.
func NewProductImageService(repo repositories.ProductImageRepository, log *zap.Logger) *ProductImageService {
	return &ProductImageService{repo: repo, log: log.Named("images")}
}

// GetAllImages retrieves all additional images, oldest first.
func (s *ProductImageService) GetAllImages(ctx context.Context) ([]models.ProductImage, error) {
	return s.repo.GetAll(ctx)
}

// CreateImage validates the input and persists a new image reference.
func (s *ProductImageService) CreateImage(ctx context.Context, in *serializers.ProductImageInput) (*models.ProductImage, error) {
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}

	image := in.ToModel()
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	s.log.Info("image created", zap.String("id", image.ID), zap.String("image", image.Image))
	return image, nil
}

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

// TagService handles business logic related to tags.
type TagService struct {
	repo repositories.TagRepository
	log  *zap.Logger
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.TagRepository, log *zap.Logger) *TagService {
	return &TagService{repo: repo, log: log.Named("tags")}
}

// GetAllTags retrieves all tags ordered by name.
func (s *TagService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	return s.repo.GetAll(ctx)
}

// CreateTag validates the input and persists a new tag.
func (s *TagService) CreateTag(ctx context.Context, in *serializers.TagInput) (*models.Tag, error) {
	errs := in.Validate()
	if !errs.Has("name") {
		slug := in.Slug
		if slug == "" {
			slug = slugify.MakeMax(in.Name, models.TagSlugMaxLength)
		}
		if err := checkNameAndSlug(ctx, s.repo, "tag", in.Name, slug, errs); err != nil {
			return nil, err
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	tag := in.ToModel()
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	s.log.Info("tag created", zap.String("id", tag.ID), zap.String("slug", tag.Slug))
	return tag, nil
}

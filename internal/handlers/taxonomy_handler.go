package handlers

import (
	"katalog/internal/serializers"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Delete("/:slug", h.HandleDeleteCategory)
}

// HandleListCategories returns every category ordered by name.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Category")
	}
	return c.JSON(categories)
}

// HandleCreateCategory validates the body and creates a category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var in serializers.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	category, err := h.service.CreateCategory(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err, "Category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDeleteCategory deletes a category; its products lose their category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.UserContext(), c.Params("slug")); err != nil {
		return respondError(c, h.log, err, "Category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service *services.TagService
	log     *zap.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService, log *zap.Logger) *TagHandler {
	return &TagHandler{service: service, log: log}
}

// RegisterRoutes registers the tag routes with the Fiber app.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleListTags)
	tagRoutes.Post("/", h.HandleCreateTag)
}

// HandleListTags returns every tag ordered by name.
func (h *TagHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.service.GetAllTags(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Tag")
	}
	return c.JSON(tags)
}

// HandleCreateTag validates the body and creates a tag.
func (h *TagHandler) HandleCreateTag(c *fiber.Ctx) error {
	var in serializers.TagInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	tag, err := h.service.CreateTag(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err, "Tag")
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// ImageHandler handles HTTP requests for additional product images.
type ImageHandler struct {
	service *services.ProductImageService
	log     *zap.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ProductImageService, log *zap.Logger) *ImageHandler {
	return &ImageHandler{service: service, log: log}
}

// RegisterRoutes registers the image routes with the Fiber app.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	imageRoutes := router.Group("/images")
	imageRoutes.Get("/", h.HandleListImages)
	imageRoutes.Post("/", h.HandleCreateImage)
}

// HandleListImages returns every additional image, oldest first.
func (h *ImageHandler) HandleListImages(c *fiber.Ctx) error {
	images, err := h.service.GetAllImages(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Image")
	}
	return c.JSON(images)
}

// HandleCreateImage validates the body and stores an image reference.
func (h *ImageHandler) HandleCreateImage(c *fiber.Ctx) error {
	var in serializers.ProductImageInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	image, err := h.service.CreateImage(c.UserContext(), &in)
	if err != nil {
		return respondError(c, h.log, err, "Image")
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

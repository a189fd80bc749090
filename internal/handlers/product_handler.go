package handlers

import (
	"katalog/internal/serializers"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/list")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)

	notAllowed := methodNotAllowed("GET, POST")
	productRoutes.Put("/", notAllowed)
	productRoutes.Patch("/", notAllowed)
	productRoutes.Delete("/", notAllowed)

	productRoutes.Get("/:slug", h.HandleGetProduct)
	productRoutes.Put("/:slug", h.HandleUpdateProduct)
	productRoutes.Patch("/:slug", h.HandlePatchProduct)
	productRoutes.Delete("/:slug", h.HandleDeleteProduct)
}

// HandleListProducts returns every product, newest first.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Product")
	}
	return c.JSON(serializers.NewProductListResponse(products))
}

// HandleCreateProduct validates the body and creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in, err := serializers.ParseProductInput(c.Body())
	if err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, "Product")
	}
	return c.JSON(serializers.NewProductResponse(product))
}

// HandleGetProduct returns the product identified by slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err, "Product")
	}
	return c.JSON(serializers.NewProductResponse(product))
}

// HandleUpdateProduct applies a full update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	return h.update(c, false)
}

// HandlePatchProduct applies a partial update.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *ProductHandler) update(c *fiber.Ctx, partial bool) error {
	in, err := serializers.ParseProductInput(c.Body())
	if err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("slug"), in, partial)
	if err != nil {
		return respondError(c, h.log, err, "Product")
	}
	return c.JSON(serializers.NewProductResponse(product))
}

// HandleDeleteProduct removes the product identified by slug.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("slug")); err != nil {
		return respondError(c, h.log, err, "Product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

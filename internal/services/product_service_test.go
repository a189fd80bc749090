package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/serializers"
	"katalog/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of repositories.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// MockImageRepository is a mock implementation of repositories.ProductImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) GetAll(ctx context.Context) ([]models.ProductImage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ProductImage), args.Error(1)
}

func (m *MockImageRepository) FindByIDs(ctx context.Context, ids []string) ([]models.ProductImage, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.ProductImage), args.Error(1)
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

type productFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	tags       *MockTagRepository
	images     *MockImageRepository
	events     *MockPublisher
	service    *services.ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		tags:       new(MockTagRepository),
		images:     new(MockImageRepository),
		events:     new(MockPublisher),
	}
	f.service = services.NewProductService(f.products, f.categories, f.tags, f.images, f.events, zap.NewNop())
	return f
}

func (f *productFixture) assertExpectations(t *testing.T) {
	f.products.AssertExpectations(t)
	f.categories.AssertExpectations(t)
	f.tags.AssertExpectations(t)
	f.images.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func input(t *testing.T, body string) *serializers.ProductInput {
	t.Helper()
	in, err := serializers.ParseProductInput([]byte(body))
	require.NoError(t, err)
	return in
}

func fieldErrors(t *testing.T, err error) serializers.FieldErrors {
	t.Helper()
	var fe serializers.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	return fe
}

func TestProductService_GetAllProducts(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: decimal.NewFromInt(10), Stock: 100},
		{ID: "2", Name: "Product B", Price: decimal.NewFromInt(20), Stock: 50},
	}
	f.products.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := f.service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	f.assertExpectations(t)
}

func TestProductService_GetProductBySlug(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Slug: "product-a"}

	f.products.On("GetBySlug", ctx, "product-a").Return(expectedProduct, nil).Once()
	product, err := f.service.GetProductBySlug(ctx, "product-a")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	f.products.On("GetBySlug", ctx, "missing").Return(nil, repositories.ErrNotFound).Once()
	product, err = f.service.GetProductBySlug(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	f.assertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.categories.On("GetByID", ctx, "c1").Return(&models.Category{ID: "c1", Name: "Shoes"}, nil).Once()
	f.tags.On("FindByIDs", ctx, []string{"t2", "t1"}).
		Return([]models.Tag{{ID: "t1", Name: "Sale"}, {ID: "t2", Name: "New"}}, nil).Once()
	f.products.On("ExistsByName", ctx, "Red Shoes", "").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "red-shoes", "").Return(false, nil).Once()
	f.products.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Product)
			p.ID = "p1"
			p.Slug = "red-shoes"
		}).
		Return(nil).Once()

	var published services.ProductEvent
	f.events.On("Publish", services.EventProductCreated, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(1).([]byte), &published))
		}).
		Return(nil).Once()

	product, err := f.service.CreateProduct(ctx, input(t, `{
		"name": "Red Shoes",
		"price": "49.90",
		"category": "c1",
		"tags": ["t2", "t1", "t2"]
	}`))

	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	assert.True(t, product.IsActive)
	assert.Equal(t, "49.9", product.Price.String())
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, "c1", *product.CategoryID)
	assert.Equal(t, []string{"t2", "t1"}, product.TagIDs())

	assert.Equal(t, services.EventProductCreated, published.Event)
	assert.Equal(t, "p1", published.ID)
	assert.Equal(t, "red-shoes", published.Slug)
	assert.Equal(t, "Red Shoes", published.Name)
	f.assertExpectations(t)
}

func TestProductService_CreateProduct_ValidationFailure(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.products.On("ExistsByName", ctx, "No Price", "").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "no-price", "").Return(false, nil).Once()

	product, err := f.service.CreateProduct(ctx, input(t, `{"name": "No Price", "stock": -1}`))

	assert.Nil(t, product)
	fe := fieldErrors(t, err)
	assert.Equal(t, []string{"This field is required."}, fe["price"])
	assert.Contains(t, fe, "stock")
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProductService_CreateProduct_UnknownRelations(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.categories.On("GetByID", ctx, "nope").Return(nil, repositories.ErrNotFound).Once()
	f.tags.On("FindByIDs", ctx, []string{"t1", "t9"}).Return([]models.Tag{{ID: "t1"}}, nil).Once()
	f.images.On("FindByIDs", ctx, []string{"i9"}).Return([]models.ProductImage{}, nil).Once()
	f.products.On("ExistsByName", ctx, "Lamp", "").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "lamp", "").Return(false, nil).Once()

	_, err := f.service.CreateProduct(ctx, input(t, `{
		"name": "Lamp",
		"price": 10,
		"category": "nope",
		"tags": ["t1", "t9"],
		"additional_images": ["i9"]
	}`))

	fe := fieldErrors(t, err)
	assert.Equal(t, []string{`Invalid pk "nope" - object does not exist.`}, fe["category"])
	assert.Equal(t, []string{`Invalid pk "t9" - object does not exist.`}, fe["tags"])
	assert.Equal(t, []string{`Invalid pk "i9" - object does not exist.`}, fe["additional_images"])
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProductService_CreateProduct_Duplicate(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.products.On("ExistsByName", ctx, "Lamp", "").Return(true, nil).Once()
	f.products.On("ExistsBySlug", ctx, "lamp", "").Return(true, nil).Once()

	_, err := f.service.CreateProduct(ctx, input(t, `{"name": "Lamp", "price": 10}`))

	fe := fieldErrors(t, err)
	assert.Equal(t, []string{"product with this name already exists."}, fe["name"])
	assert.Equal(t, []string{"product with this slug already exists."}, fe["slug"])
	f.assertExpectations(t)
}

func TestProductService_CreateProduct_RepositoryError(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.products.On("ExistsByName", ctx, "Lamp", "").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "lamp", "").Return(false, nil).Once()
	f.products.On("Create", ctx, mock.Anything).Return(fmt.Errorf("database error")).Once()

	product, err := f.service.CreateProduct(ctx, input(t, `{"name": "Lamp", "price": 10}`))

	assert.Nil(t, product)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureIgnored(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.products.On("ExistsByName", ctx, "Lamp", "").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "lamp", "").Return(false, nil).Once()
	f.products.On("Create", ctx, mock.Anything).Return(nil).Once()
	f.events.On("Publish", services.EventProductCreated, mock.Anything).Return(errors.New("broker down")).Once()

	product, err := f.service.CreateProduct(ctx, input(t, `{"name": "Lamp", "price": 10}`))

	assert.NoError(t, err)
	assert.NotNil(t, product)
	f.assertExpectations(t)
}

func TestProductService_CreateProduct_NoPublisher(t *testing.T) {
	products := new(MockProductRepository)
	service := services.NewProductService(products, new(MockCategoryRepository), new(MockTagRepository), new(MockImageRepository), nil, zap.NewNop())
	ctx := context.Background()

	products.On("ExistsByName", ctx, "Lamp", "").Return(false, nil).Once()
	products.On("ExistsBySlug", ctx, "lamp", "").Return(false, nil).Once()
	products.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err := service.CreateProduct(ctx, input(t, `{"name": "Lamp", "price": 10}`))
	assert.NoError(t, err)
	products.AssertExpectations(t)
}

func TestProductService_UpdateProduct_Partial(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	existing := &models.Product{
		ID:       "1",
		Name:     "Lamp",
		Slug:     "lamp",
		Price:    decimal.RequireFromString("10.00"),
		Stock:    3,
		IsActive: true,
		Tags:     []models.Tag{{ID: "t1"}},
	}
	f.products.On("GetBySlug", ctx, "lamp").Return(existing, nil).Once()
	f.products.On("ExistsByName", ctx, "Lamp", "1").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "lamp", "1").Return(false, nil).Once()
	f.products.On("Update", ctx, existing).Return(nil).Once()
	f.events.On("Publish", services.EventProductUpdated, mock.Anything).Return(nil).Once()

	product, err := f.service.UpdateProduct(ctx, "lamp", input(t, `{"stock": 7}`), true)

	require.NoError(t, err)
	assert.Equal(t, 7, product.Stock)
	assert.Equal(t, "10", product.Price.String())
	assert.Equal(t, []string{"t1"}, product.TagIDs())
	f.assertExpectations(t)
}

func TestProductService_UpdateProduct_FullRequiresPrice(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	existing := &models.Product{ID: "1", Name: "Lamp", Slug: "lamp", Price: decimal.NewFromInt(10)}
	f.products.On("GetBySlug", ctx, "lamp").Return(existing, nil).Once()
	f.products.On("ExistsByName", ctx, "Desk Lamp", "1").Return(false, nil).Once()
	f.products.On("ExistsBySlug", ctx, "lamp", "1").Return(false, nil).Once()

	_, err := f.service.UpdateProduct(ctx, "lamp", input(t, `{"name": "Desk Lamp"}`), false)

	fe := fieldErrors(t, err)
	assert.Equal(t, []string{"This field is required."}, fe["price"])
	f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	f.products.On("GetBySlug", ctx, "missing").Return(nil, repositories.ErrNotFound).Once()

	_, err := f.service.UpdateProduct(ctx, "missing", input(t, `{"stock": 1}`), true)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	f.assertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	existing := &models.Product{ID: "1", Name: "Lamp", Slug: "lamp"}
	f.products.On("GetBySlug", ctx, "lamp").Return(existing, nil).Once()
	f.products.On("Delete", ctx, "1").Return(nil).Once()
	f.events.On("Publish", services.EventProductDeleted, mock.Anything).Return(nil).Once()

	err := f.service.DeleteProduct(ctx, "lamp")
	assert.NoError(t, err)

	// Test deletion failure (e.g., product not found)
	f.products.On("GetBySlug", ctx, "missing").Return(nil, repositories.ErrNotFound).Once()
	err = f.service.DeleteProduct(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	f.assertExpectations(t)
}

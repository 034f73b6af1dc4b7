package catalog

import (
	"context"
	"testing"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariant(ctx context.Context, tenantID, variantID uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, tenantID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func TestProductService_Create(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, zap.NewNop())
	tenantID := uuid.New()

	repo.On("FindBySKU", mock.Anything, tenantID, "widget-1").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(context.Background(), tenantID, CreateProductRequest{
		SKU:          "widget-1",
		Name:         "Widget",
		Unit:         "pcs",
		SellingPrice: decimal.NewFromInt(100),
		TaxRate:      decimal.NewFromInt(21),
	})

	require.NoError(t, err)
	assert.Equal(t, "WIDGET-1", resp.SKU)
	assert.Equal(t, "standard", resp.Type)
	assert.Equal(t, "100", resp.SellingPrice.String())
}

func TestProductService_CreateRejectsDuplicateSKU(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, zap.NewNop())
	tenantID := uuid.New()

	existing, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", "pcs")
	require.NoError(t, err)
	repo.On("FindBySKU", mock.Anything, tenantID, "WIDGET-1").Return(existing, nil)

	_, err = service.Create(context.Background(), tenantID, CreateProductRequest{
		SKU:  "WIDGET-1",
		Name: "Widget again",
		Unit: "pcs",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_CreateKit(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, zap.NewNop())
	tenantID := uuid.New()

	repo.On("FindBySKU", mock.Anything, tenantID, "KIT-1").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(context.Background(), tenantID, CreateProductRequest{
		SKU:  "KIT-1",
		Name: "Starter kit",
		Unit: "pcs",
		Components: []KitComponentInput{
			{ProductID: uuid.New(), SKU: "PART-A", Name: "Part A", Quantity: decimal.NewFromInt(2)},
			{ProductID: uuid.New(), SKU: "PART-B", Name: "Part B", Quantity: decimal.NewFromInt(1), Optional: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "kit", resp.Type)
	require.Len(t, resp.Components, 2)
	assert.True(t, resp.Components[1].Optional)
}

func TestProductService_AddVariant(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, zap.NewNop())
	tenantID := uuid.New()

	product, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", "pcs")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	resp, err := service.AddVariant(context.Background(), tenantID, product.ID, CreateVariantRequest{
		SKU:          "WIDGET-1-M",
		Attributes:   map[string]string{"size": "M"},
		SellingPrice: decimal.NewFromInt(120),
	})

	require.NoError(t, err)
	require.Len(t, resp.Variants, 1)
	assert.Equal(t, "WIDGET-1-M", resp.Variants[0].SKU)
	assert.Equal(t, "120", resp.Variants[0].SellingPrice.String())
}

func TestProductService_Deactivate(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, zap.NewNop())
	tenantID := uuid.New()

	product, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", "pcs")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	require.NoError(t, service.Deactivate(context.Background(), tenantID, product.ID))
	assert.False(t, product.IsActive())
}

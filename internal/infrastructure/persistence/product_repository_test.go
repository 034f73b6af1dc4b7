package persistence

import (
	"context"
	"testing"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savedProduct(t *testing.T, repo *GormProductRepository, tenantID uuid.UUID, sku string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, sku, "Widget", "pcs")
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(valueobject.NewMoneyEURFromFloat(60), valueobject.NewMoneyEURFromFloat(100)))
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	product := savedProduct(t, repo, tenantID, "WIDGET-1")

	loaded, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "WIDGET-1", loaded.SKU)
	assert.Equal(t, "100", loaded.SellingPrice.String())
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	product := savedProduct(t, repo, tenantID, "WIDGET-1")

	// lookup is case insensitive on input
	loaded, err := repo.FindBySKU(ctx, tenantID, "widget-1")
	require.NoError(t, err)
	assert.Equal(t, product.ID, loaded.ID)

	_, err = repo.FindBySKU(ctx, uuid.New(), "WIDGET-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_Variants(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	product := savedProduct(t, repo, tenantID, "WIDGET-1")
	variant, err := catalog.NewVariant(product.ID, "WIDGET-1-M", map[string]string{"size": "M"})
	require.NoError(t, err)
	require.NoError(t, variant.SetPrices(valueobject.NewMoneyEURFromFloat(70), valueobject.NewMoneyEURFromFloat(120)))
	product.Variants = append(product.Variants, *variant)
	require.NoError(t, repo.Save(ctx, product))

	loaded, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Variants, 1)
	assert.Equal(t, "WIDGET-1-M", loaded.Variants[0].SKU)
	assert.Equal(t, map[string]string{"size": "M"}, loaded.Variants[0].Attributes)

	found, err := repo.FindVariant(ctx, tenantID, variant.ID)
	require.NoError(t, err)
	assert.Equal(t, "120", found.SellingPrice.String())

	// variant lookup respects tenant boundaries through the owning product
	_, err = repo.FindVariant(ctx, uuid.New(), variant.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_ListFiltering(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	savedProduct(t, repo, tenantID, "WIDGET-1")
	kit, err := catalog.NewKitProduct(tenantID, "KIT-1", "Starter kit", "pcs", []catalog.KitComponentSpec{
		{ProductID: uuid.New(), SKU: "PART-A", Name: "Part A"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, kit))

	filter := shared.DefaultFilter()
	filter.Filters["type"] = "kit"

	products, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "KIT-1", products[0].SKU)
	require.Len(t, products[0].Components, 1)

	search := shared.DefaultFilter()
	search.Search = "starter"
	products, err = repo.FindAllForTenant(ctx, tenantID, search)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "KIT-1", products[0].SKU)
}

package catalog

import (
	"context"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new product; a non-empty component list makes it a kit
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindBySKU(ctx, tenantID, req.SKU)
	if err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SKU", "A product with this SKU already exists")
	}

	var product *catalog.Product
	if len(req.Components) > 0 {
		product, err = catalog.NewKitProduct(tenantID, req.SKU, req.Name, req.Unit, toComponentSpecs(req.Components))
	} else {
		product, err = catalog.NewProduct(tenantID, req.SKU, req.Name, req.Unit)
	}
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.LongDescription = req.LongDescription
	if err := product.SetPrices(valueobject.NewMoneyEUR(req.PurchasePrice), valueobject.NewMoneyEUR(req.SellingPrice)); err != nil {
		return nil, err
	}
	if err := product.SetTaxRate(req.TaxRate); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("type", string(product.Type)))

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product's descriptive information
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description, req.LongDescription); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// SetPrices updates a product's purchase and selling prices
func (s *ProductService) SetPrices(ctx context.Context, tenantID, productID uuid.UUID, req SetPricesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.SetPrices(valueobject.NewMoneyEUR(req.PurchasePrice), valueobject.NewMoneyEUR(req.SellingPrice)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// AddVariant adds a variant with its own absolute prices to a product
func (s *ProductService) AddVariant(ctx context.Context, tenantID, productID uuid.UUID, req CreateVariantRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	variant, err := catalog.NewVariant(product.ID, req.SKU, req.Attributes)
	if err != nil {
		return nil, err
	}
	if err := variant.SetPrices(valueobject.NewMoneyEUR(req.PurchasePrice), valueobject.NewMoneyEUR(req.SellingPrice)); err != nil {
		return nil, err
	}

	product.Variants = append(product.Variants, *variant)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("variant added",
		zap.String("product_id", product.ID.String()),
		zap.String("variant_sku", variant.SKU))

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if err := product.Deactivate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

func toComponentSpecs(inputs []KitComponentInput) []catalog.KitComponentSpec {
	specs := make([]catalog.KitComponentSpec, 0, len(inputs))
	for _, in := range inputs {
		specs = append(specs, catalog.KitComponentSpec{
			ProductID: in.ProductID,
			SKU:       in.SKU,
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			UnitCost:  in.UnitCost,
			Optional:  in.Optional,
		})
	}
	return specs
}

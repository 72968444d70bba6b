package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/gasdepot/backend/internal/domain/catalog"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of ProductRepository
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

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *MockProductRepository) ExistsByBarcode(ctx context.Context, barcode string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, barcode, excludeID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *MockProductRepository) Stats(ctx context.Context) (*catalog.ProductStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductStats), args.Error(1)
}

func newProductService(productRepo *MockProductRepository) *ProductService {
	return NewProductService(productRepo, nil, time.Minute, zap.NewNop())
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates cylinder product with spec", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		productRepo.On("ExistsBySKU", ctx, "CYL-45", uuid.Nil).Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		capacity := decimal.NewFromInt(45)
		tare := decimal.NewFromFloat(33.5)
		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "cyl-45",
			Name:          "45kg Cylinder",
			UnitOfMeasure: "cylinder",
			CapacityKg:    &capacity,
			TareWeightKg:  &tare,
			ValveType:     "POL",
		})

		require.NoError(t, err)
		assert.Equal(t, "CYL-45", resp.SKU)
		assert.Equal(t, "active", resp.Status)
		require.NotNil(t, resp.CapacityKg)
		assert.True(t, resp.CapacityKg.Equal(capacity))
	})

	t.Run("description does not record an update on a new product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		productRepo.On("ExistsBySKU", ctx, "CYL-45", uuid.Nil).Return(false, nil)
		productRepo.On("Save", ctx, mock.MatchedBy(func(p *catalog.Product) bool {
			if p.Version != 1 {
				return false
			}
			events := p.GetDomainEvents()
			return len(events) == 1 && events[0].EventType() == catalog.EventTypeProductCreated
		})).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "CYL-45",
			Name:          "45kg Cylinder",
			Description:   "Standard 45kg exchange cylinder",
			UnitOfMeasure: "cylinder",
		})

		require.NoError(t, err)
		assert.Equal(t, "Standard 45kg exchange cylinder", resp.Description)
		productRepo.AssertExpectations(t)
	})

	t.Run("drops cylinder fields on weight product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		productRepo.On("ExistsBySKU", ctx, "BULK-LPG", uuid.Nil).Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		capacity := decimal.NewFromInt(45)
		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "BULK-LPG",
			Name:          "Bulk LPG",
			UnitOfMeasure: "kg",
			CapacityKg:    &capacity,
			ValveType:     "POL",
		})

		require.NoError(t, err)
		assert.Nil(t, resp.CapacityKg)
		assert.Empty(t, resp.ValveType)
	})

	t.Run("rejects duplicate sku", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		productRepo.On("ExistsBySKU", ctx, "CYL-45", uuid.Nil).Return(true, nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "CYL-45",
			Name:          "45kg Cylinder",
			UnitOfMeasure: "cylinder",
		})

		assert.Nil(t, resp)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate barcode", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		productRepo.On("ExistsBySKU", ctx, "CYL-45", uuid.Nil).Return(false, nil)
		productRepo.On("ExistsByBarcode", ctx, "789000111", uuid.Nil).Return(true, nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "CYL-45",
			Name:          "45kg Cylinder",
			UnitOfMeasure: "cylinder",
			BarcodeUID:    "789000111",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed sku never reaches storage", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:           "CYL 45",
			Name:          "45kg Cylinder",
			UnitOfMeasure: "cylinder",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("sku change re-checks uniqueness against other rows", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("ExistsBySKU", ctx, "CYL-90", product.ID).Return(true, nil)

		sku := "CYL-90"
		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{SKU: &sku})

		assert.Nil(t, resp)
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("same sku skips the uniqueness read", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		sku := "cyl-45"
		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{SKU: &sku})

		require.NoError(t, err)
		assert.Equal(t, "CYL-45", resp.SKU)
		productRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("moving to kg clears cylinder spec", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
		require.NoError(t, err)
		capacity := decimal.NewFromInt(45)
		require.NoError(t, product.SetCylinderSpec(&capacity, nil, "POL"))

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		unit := "kg"
		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{UnitOfMeasure: &unit})

		require.NoError(t, err)
		assert.Equal(t, "kg", resp.UnitOfMeasure)
		assert.Nil(t, resp.CapacityKg)
		assert.Empty(t, resp.ValveType)
	})
}

func TestProductService_MarkObsolete(t *testing.T) {
	ctx := context.Background()

	t.Run("retires an active product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := service.MarkObsolete(ctx, product.ID)

		require.NoError(t, err)
		assert.True(t, resp.Changed)
		assert.Equal(t, "obsolete", resp.Product.Status)
	})

	t.Run("second call is a reported no-op without a write", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
		require.NoError(t, err)
		product.MarkObsolete()
		product.ClearDomainEvents()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		resp, err := service.MarkObsolete(ctx, product.ID)

		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Equal(t, "obsolete", resp.Product.Status)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Reactivate(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	service := newProductService(productRepo)

	product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
	require.NoError(t, err)
	product.MarkObsolete()

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := service.Reactivate(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	// Resurrection does not re-check SKU or barcode uniqueness
	productRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_BulkSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("filters malformed and duplicate ids", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		idA := uuid.New()
		idB := uuid.New()
		productRepo.On("UpdateStatusBatch", ctx, []uuid.UUID{idA, idB}, catalog.ProductStatusEndOfSale).
			Return(int64(2), nil)

		resp, err := service.BulkSetStatus(ctx, BulkSetStatusRequest{
			IDs:    []string{idA.String(), "not-a-uuid", idB.String(), idA.String(), ""},
			Status: "end_of_sale",
		})

		require.NoError(t, err)
		assert.Equal(t, 5, resp.Requested)
		assert.Equal(t, 2, resp.Matched)
		assert.Equal(t, int64(2), resp.Updated)
	})

	t.Run("fails when no usable id remains", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		resp, err := service.BulkSetStatus(ctx, BulkSetStatusRequest{
			IDs:    []string{"nope", ""},
			Status: "active",
		})

		assert.Nil(t, resp)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "NO_VALID_TARGETS", domainErr.Code)
		productRepo.AssertNotCalled(t, "UpdateStatusBatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown status before parsing ids", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo)

		resp, err := service.BulkSetStatus(ctx, BulkSetStatusRequest{
			IDs:    []string{uuid.New().String()},
			Status: "discontinued",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "UpdateStatusBatch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	service := newProductService(productRepo)

	product, err := catalog.NewProduct("CYL-45", "45kg Cylinder", catalog.UnitCylinder)
	require.NoError(t, err)

	productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]catalog.Product{*product}, nil)
	productRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	result, err := service.List(ctx, ProductListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "CYL-45", result.Items[0].SKU)
	assert.Equal(t, 1, result.TotalPages)
}

func TestProductListFingerprint(t *testing.T) {
	base := ProductListFilter{Page: 1, Limit: 20, Search: "Cylinder"}

	t.Run("search casing shares a cache key", func(t *testing.T) {
		folded := base
		folded.Search = "cylinder"

		assert.Equal(t, productListFingerprint(base), productListFingerprint(folded))
	})

	t.Run("surrounding whitespace changes the cache key", func(t *testing.T) {
		padded := base
		padded.Search = " Cylinder"

		// The repository matches the raw pattern, so the padded search is a
		// different query and must not share a cached page.
		assert.NotEqual(t, productListFingerprint(base), productListFingerprint(padded))
	})
}

func TestProductService_Stats(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	service := newProductService(productRepo)

	productRepo.On("Stats", ctx).Return(&catalog.ProductStats{
		Total:     10,
		Active:    7,
		EndOfSale: 3,
		Obsolete:  4,
		Cylinder:  8,
		Weight:    2,
	}, nil)

	stats, err := service.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(4), stats.Obsolete)
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gasdepot/backend/internal/domain/catalog"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const productListingEntity = "products"

// ProductService handles catalog-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	listingCache shared.ListingCache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	listingCache shared.ListingCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		listingCache: listingCache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Create creates a new product. SKU and barcode uniqueness are checked against
// non-obsolete rows only, so a retired SKU can be reissued. Cylinder fields on
// a weight product are dropped, not rejected.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := catalog.ValidateSKU(req.SKU); err != nil {
		return nil, err
	}

	sku := strings.ToUpper(req.SKU)
	exists, err := s.productRepo.ExistsBySKU(ctx, sku, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Product with this SKU already exists")
	}

	if req.BarcodeUID != "" {
		exists, err = s.productRepo.ExistsByBarcode(ctx, req.BarcodeUID, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("Product with this barcode already exists")
		}
	}

	product, err := catalog.NewProduct(sku, req.Name, catalog.UnitOfMeasure(req.UnitOfMeasure))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		product.SetDescription(req.Description)
	}

	if req.BarcodeUID != "" {
		if err := product.SetBarcode(req.BarcodeUID); err != nil {
			return nil, err
		}
	}

	if product.IsCylinder() && (req.CapacityKg != nil || req.TareWeightKg != nil || req.ValveType != "") {
		if err := product.SetCylinderSpec(req.CapacityKg, req.TareWeightKg, req.ValveType); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)
	s.invalidateListing(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products. Obsolete rows are hidden unless the
// filter asks for them.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	fingerprint := productListFingerprint(filter)
	if s.listingCache != nil {
		if payload, ok := s.listingCache.Get(ctx, productListingEntity, fingerprint); ok {
			var cached shared.Paginated[ProductResponse]
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	repoFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.Limit,
		OrderBy:  filter.SortBy,
		OrderDir: filter.SortOrder,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if repoFilter.OrderBy == "" {
		repoFilter.OrderBy = "created_at"
	}
	if repoFilter.OrderDir == "" {
		repoFilter.OrderDir = "desc"
	}
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}
	if filter.UnitOfMeasure != "" {
		repoFilter.Filters["unit_of_measure"] = filter.UnitOfMeasure
	}
	if filter.ShowObsolete {
		repoFilter.Filters["show_obsolete"] = true
	}

	products, err := s.productRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.Limit)
	if s.listingCache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.listingCache.Set(ctx, productListingEntity, fingerprint, payload, s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache product listing", zap.Error(err))
			}
		}
	}
	return &result, nil
}

// Update updates an existing product. Nil request fields are left untouched.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		sku := strings.ToUpper(*req.SKU)
		if sku != product.SKU {
			if err := catalog.ValidateSKU(sku); err != nil {
				return nil, err
			}
			exists, err := s.productRepo.ExistsBySKU(ctx, sku, product.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewConflictError("Product with this SKU already exists")
			}
			if err := product.UpdateSKU(sku); err != nil {
				return nil, err
			}
		}
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.BarcodeUID != nil && *req.BarcodeUID != product.BarcodeUID {
		if *req.BarcodeUID != "" {
			exists, err := s.productRepo.ExistsByBarcode(ctx, *req.BarcodeUID, product.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewConflictError("Product with this barcode already exists")
			}
		}
		if err := product.SetBarcode(*req.BarcodeUID); err != nil {
			return nil, err
		}
	}

	if req.UnitOfMeasure != nil {
		if err := product.SetUnitOfMeasure(catalog.UnitOfMeasure(*req.UnitOfMeasure)); err != nil {
			return nil, err
		}
	}

	if req.CapacityKg != nil || req.TareWeightKg != nil || req.ValveType != nil {
		if product.IsCylinder() {
			capacity := product.CapacityKg
			tare := product.TareWeightKg
			valve := product.ValveType
			if req.CapacityKg != nil {
				capacity = req.CapacityKg
			}
			if req.TareWeightKg != nil {
				tare = req.TareWeightKg
			}
			if req.ValveType != nil {
				valve = *req.ValveType
			}
			if err := product.SetCylinderSpec(capacity, tare, valve); err != nil {
				return nil, err
			}
		}
		// Cylinder fields submitted for a weight product are dropped
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)
	s.invalidateListing(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// MarkObsolete soft-deletes a product. Calling it on an already-obsolete
// product is a reported no-op, not an error.
func (s *ProductService) MarkObsolete(ctx context.Context, productID uuid.UUID) (*MarkObsoleteResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	changed := product.MarkObsolete()
	if changed {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, product)
		s.invalidateListing(ctx)
	}

	return &MarkObsoleteResponse{Product: ToProductResponse(product), Changed: changed}, nil
}

// Reactivate returns an obsolete or end-of-sale product to active. Uniqueness
// is not re-checked on resurrection.
func (s *ProductService) Reactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Reactivate()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)
	s.invalidateListing(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// BulkSetStatus applies a status to many products in a single write.
// Malformed or duplicate ids are dropped from the batch; the call fails with
// NO_VALID_TARGETS only when nothing usable remains.
func (s *ProductService) BulkSetStatus(ctx context.Context, req BulkSetStatusRequest) (*BulkSetStatusResponse, error) {
	status := catalog.ProductStatus(req.Status)
	if err := catalog.ValidateProductStatus(status); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(req.IDs))
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil || id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, shared.ErrNoValidTargets
	}

	updated, err := s.productRepo.UpdateStatusBatch(ctx, ids, status)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	s.logger.Info("bulk product status change",
		zap.String("status", string(status)),
		zap.Int("matched", len(ids)),
		zap.Int64("updated", updated),
	)

	return &BulkSetStatusResponse{
		Requested: len(req.IDs),
		Matched:   len(ids),
		Updated:   updated,
	}, nil
}

// Stats returns aggregate counts over the catalog
func (s *ProductService) Stats(ctx context.Context) (*catalog.ProductStats, error) {
	return s.productRepo.Stats(ctx)
}

func (s *ProductService) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	for _, event := range root.GetDomainEvents() {
		s.logger.Info("domain event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
		)
	}
	root.ClearDomainEvents()
}

func (s *ProductService) invalidateListing(ctx context.Context) {
	if s.listingCache == nil {
		return
	}
	if err := s.listingCache.Invalidate(ctx, productListingEntity); err != nil {
		s.logger.Warn("failed to invalidate product listing cache", zap.Error(err))
	}
}

// productListFingerprint keys the cache on the full filter set. Search is
// case-folded but not trimmed: the query matches case-insensitively, while
// leading or trailing whitespace changes the LIKE pattern.
func productListFingerprint(filter ProductListFilter) string {
	return fmt.Sprintf("page=%d|limit=%d|search=%s|status=%s|unit=%s|obsolete=%t|sort=%s.%s",
		filter.Page, filter.Limit, strings.ToLower(filter.Search),
		filter.Status, filter.UnitOfMeasure, filter.ShowObsolete, filter.SortBy, filter.SortOrder)
}

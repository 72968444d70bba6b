package catalog

import (
	"context"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductStats holds aggregate counts over the catalog. All counts except
// Obsolete exclude obsolete rows.
type ProductStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	EndOfSale int64 `json:"end_of_sale"`
	Obsolete  int64 `json:"obsolete"`
	Cylinder  int64 `json:"cylinder"`
	Weight    int64 `json:"weight"`
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter. Obsolete rows are
	// excluded unless the filter carries show_obsolete.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter (pagination ignored)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// UpdateStatusBatch sets the status on all given products in one write
	// and returns the number of rows updated
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status ProductStatus) (int64, error)

	// ExistsBySKU checks whether a non-obsolete product other than excludeID
	// carries the given SKU
	ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)

	// ExistsByBarcode checks whether a non-obsolete product other than
	// excludeID carries the given barcode UID
	ExistsByBarcode(ctx context.Context, barcode string, excludeID uuid.UUID) (bool, error)

	// Stats computes aggregate counts over status and unit fields
	Stats(ctx context.Context) (*ProductStats, error)
}

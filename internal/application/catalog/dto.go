package catalog

import (
	"time"

	"github.com/gasdepot/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the application-level request to create a product
type CreateProductRequest struct {
	SKU           string
	Name          string
	Description   string
	UnitOfMeasure string
	CapacityKg    *decimal.Decimal
	TareWeightKg  *decimal.Decimal
	ValveType     string
	BarcodeUID    string
}

// UpdateProductRequest is the application-level request to update a product.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	SKU           *string
	Name          *string
	Description   *string
	UnitOfMeasure *string
	CapacityKg    *decimal.Decimal
	TareWeightKg  *decimal.Decimal
	ValveType     *string
	BarcodeUID    *string
}

// ProductListFilter holds filtering options for product listing
type ProductListFilter struct {
	Search        string
	Status        string
	UnitOfMeasure string
	ShowObsolete  bool
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// BulkSetStatusRequest asks for a status to be applied to many products at
// once. Malformed ids are dropped rather than failing the whole batch.
type BulkSetStatusRequest struct {
	IDs    []string
	Status string
}

// BulkSetStatusResponse reports how the batch went
type BulkSetStatusResponse struct {
	Requested int   `json:"requested"`
	Matched   int   `json:"matched"`
	Updated   int64 `json:"updated"`
}

// ProductResponse is the product representation returned to callers
type ProductResponse struct {
	ID            uuid.UUID        `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	Status        string           `json:"status"`
	CapacityKg    *decimal.Decimal `json:"capacity_kg,omitempty"`
	TareWeightKg  *decimal.Decimal `json:"tare_weight_kg,omitempty"`
	ValveType     string           `json:"valve_type,omitempty"`
	BarcodeUID    string           `json:"barcode_uid,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// MarkObsoleteResponse pairs the product with a flag telling whether the call
// changed anything or hit an already-obsolete row
type MarkObsoleteResponse struct {
	Product ProductResponse `json:"product"`
	Changed bool            `json:"changed"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		UnitOfMeasure: string(p.UnitOfMeasure),
		Status:        string(p.Status),
		CapacityKg:    p.CapacityKg,
		TareWeightKg:  p.TareWeightKg,
		ValveType:     p.ValveType,
		BarcodeUID:    p.BarcodeUID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

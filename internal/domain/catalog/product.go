package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle state of a product.
// There is no hard delete: retiring a product means marking it obsolete, and
// the only way back is reactivation.
type ProductStatus string

const (
	ProductStatusActive    ProductStatus = "active"
	ProductStatusEndOfSale ProductStatus = "end_of_sale" // Still visible, no new stock
	ProductStatusObsolete  ProductStatus = "obsolete"    // Soft-deleted
)

// UnitOfMeasure represents how a product is sold
type UnitOfMeasure string

const (
	UnitCylinder UnitOfMeasure = "cylinder"
	UnitKg       UnitOfMeasure = "kg"
)

var maxCylinderWeightKg = decimal.NewFromInt(500)

// Product represents a sellable product in the catalog.
// SKU and barcode uniqueness are scoped to non-obsolete rows so a retired SKU
// can be reissued.
type Product struct {
	shared.BaseAggregateRoot
	SKU           string           `gorm:"type:varchar(50);not null;index"`
	Name          string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text"`
	UnitOfMeasure UnitOfMeasure    `gorm:"type:varchar(20);not null"`
	Status        ProductStatus    `gorm:"type:varchar(20);not null;default:'active';index"`
	CapacityKg    *decimal.Decimal `gorm:"type:decimal(10,3)"` // Cylinder products only
	TareWeightKg  *decimal.Decimal `gorm:"type:decimal(10,3)"` // Cylinder products only
	ValveType     string           `gorm:"type:varchar(50)"`   // Cylinder products only
	BarcodeUID    string           `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name string, unit UnitOfMeasure) (*Product, error) {
	if err := ValidateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnitOfMeasure(unit); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		UnitOfMeasure:     unit,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetDescription sets the free-text description. It records no update event,
// so it is safe to call while assembling a new product.
func (p *Product) SetDescription(description string) {
	p.Description = description
}

// UpdateSKU updates the product's SKU
// Note: other systems may reference the SKU; callers re-check uniqueness
func (p *Product) UpdateSKU(sku string) error {
	if err := ValidateSKU(sku); err != nil {
		return err
	}

	p.SKU = strings.ToUpper(sku)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the barcode UID
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 100 {
		return shared.NewValidationError("Barcode cannot exceed 100 characters")
	}

	p.BarcodeUID = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetUnitOfMeasure changes the sales unit. Cylinder-specific fields are
// cleared when moving to a weight unit.
func (p *Product) SetUnitOfMeasure(unit UnitOfMeasure) error {
	if err := validateUnitOfMeasure(unit); err != nil {
		return err
	}

	p.UnitOfMeasure = unit
	if unit != UnitCylinder {
		p.ClearCylinderSpec()
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCylinderSpec sets the physical specification of a cylinder product
func (p *Product) SetCylinderSpec(capacityKg, tareWeightKg *decimal.Decimal, valveType string) error {
	if p.UnitOfMeasure != UnitCylinder {
		return shared.NewValidationError("Cylinder specification only applies to cylinder products")
	}
	if capacityKg != nil {
		if err := validateCylinderWeight(*capacityKg, "Capacity"); err != nil {
			return err
		}
	}
	if tareWeightKg != nil {
		if err := validateCylinderWeight(*tareWeightKg, "Tare weight"); err != nil {
			return err
		}
	}
	if valveType != "" && len(valveType) > 50 {
		return shared.NewValidationError("Valve type cannot exceed 50 characters")
	}

	p.CapacityKg = capacityKg
	p.TareWeightKg = tareWeightKg
	p.ValveType = valveType
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ClearCylinderSpec removes the cylinder-only fields
func (p *Product) ClearCylinderSpec() {
	p.CapacityKg = nil
	p.TareWeightKg = nil
	p.ValveType = ""
}

// MarkObsolete soft-deletes the product. Returns false when the product was
// already obsolete so callers can report a no-op instead of a change.
func (p *Product) MarkObsolete() bool {
	if p.Status == ProductStatusObsolete {
		return false
	}

	oldStatus := p.Status
	p.Status = ProductStatusObsolete
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusObsolete))

	return true
}

// Reactivate returns the product to active. This is the only resurrection
// path out of obsolete; it does not re-check SKU or barcode uniqueness.
func (p *Product) Reactivate() {
	if p.Status == ProductStatusActive {
		return
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))
}

// IsObsolete returns true if the product has been soft-deleted
func (p *Product) IsObsolete() bool {
	return p.Status == ProductStatusObsolete
}

// IsCylinder returns true for cylinder products
func (p *Product) IsCylinder() bool {
	return p.UnitOfMeasure == UnitCylinder
}

var skuRegex = regexp.MustCompile(`^[A-Z0-9-]+$`)

// ValidateSKU validates the SKU format (uppercase alphanumerics and hyphens)
func ValidateSKU(sku string) error {
	if sku == "" {
		return shared.NewValidationError("SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewValidationError("SKU cannot exceed 50 characters")
	}
	if !skuRegex.MatchString(strings.ToUpper(sku)) {
		return shared.NewValidationError("SKU can only contain uppercase letters, numbers, and hyphens")
	}
	return nil
}

// ValidateProductStatus validates a product status value
func ValidateProductStatus(status ProductStatus) error {
	switch status {
	case ProductStatusActive, ProductStatusEndOfSale, ProductStatusObsolete:
		return nil
	default:
		return shared.NewValidationError("Product status must be 'active', 'end_of_sale', or 'obsolete'")
	}
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnitOfMeasure(unit UnitOfMeasure) error {
	switch unit {
	case UnitCylinder, UnitKg:
		return nil
	default:
		return shared.NewValidationError("Unit of measure must be 'cylinder' or 'kg'")
	}
}

func validateCylinderWeight(value decimal.Decimal, field string) error {
	if value.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError(field + " must be greater than zero")
	}
	if value.GreaterThan(maxCylinderWeightKg) {
		return shared.NewValidationError(field + " cannot exceed 500 kg")
	}
	return nil
}

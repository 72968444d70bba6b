package models

import (
	"time"

	"github.com/gasdepot/backend/internal/domain/catalog"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog products.
// SKU and barcode carry plain indexes rather than unique ones: uniqueness is
// scoped to non-obsolete rows and enforced by pre-write reads, so a retired
// SKU can be reissued.
type ProductModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	SKU           string           `gorm:"type:varchar(50);not null;index"`
	Name          string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text"`
	UnitOfMeasure string           `gorm:"type:varchar(20);not null"`
	Status        string           `gorm:"type:varchar(20);not null;default:'active';index"`
	CapacityKg    *decimal.Decimal `gorm:"type:decimal(10,3)"`
	TareWeightKg  *decimal.Decimal `gorm:"type:decimal(10,3)"`
	ValveType     string           `gorm:"type:varchar(50)"`
	BarcodeUID    string           `gorm:"type:varchar(100);index"`
	Version       int              `gorm:"not null;default:1"`
	CreatedAt     time.Time        `gorm:"not null;index"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		SKU:           m.SKU,
		Name:          m.Name,
		Description:   m.Description,
		UnitOfMeasure: catalog.UnitOfMeasure(m.UnitOfMeasure),
		Status:        catalog.ProductStatus(m.Status),
		CapacityKg:    m.CapacityKg,
		TareWeightKg:  m.TareWeightKg,
		ValveType:     m.ValveType,
		BarcodeUID:    m.BarcodeUID,
	}
}

// ProductModelFromDomain converts a domain entity to a persistence model
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
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
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

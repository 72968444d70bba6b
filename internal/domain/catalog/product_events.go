package catalog

import (
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated       = "ProductCreated"
	EventTypeProductUpdated       = "ProductUpdated"
	EventTypeProductStatusChanged = "ProductStatusChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	SKU       string        `json:"sku"`
	Name      string        `json:"name"`
	Unit      UnitOfMeasure `json:"unit_of_measure"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Unit:            product.UnitOfMeasure,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
	}
}

// ProductStatusChangedEvent is published when a product's lifecycle state changes
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	SKU       string        `json:"sku"`
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product, oldStatus, newStatus ProductStatus) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

package partner

import (
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerStatusChanged = "CustomerStatusChanged"
	EventTypeCustomerDeleted       = "CustomerDeleted"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
	}
}

// CustomerUpdatedEvent is published when a customer is updated
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
	}
}

// CustomerStatusChangedEvent is published when an account's status changes
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID     `json:"customer_id"`
	Code       string        `json:"code"`
	OldStatus  AccountStatus `json:"old_status"`
	NewStatus  AccountStatus `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(customer *Customer, oldStatus, newStatus AccountStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

package partner

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByCustomer returns all addresses of a customer, primary first, then
	// by creation time ascending
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)

	// ClearPrimary clears the primary flag on every address of the customer
	ClearPrimary(ctx context.Context, customerID uuid.UUID) error

	// ClearPrimaryExcept clears the primary flag on every address of the
	// customer other than the given address
	ClearPrimaryExcept(ctx context.Context, customerID, exceptID uuid.UUID) error

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete hard-deletes an address
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCustomer hard-deletes all addresses of a customer
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error
}

package partner

import (
	"context"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerWithPrimaryAddress pairs a customer with its primary address, when
// one exists. Listing returns this shape so the UI can render the default
// fulfillment address inline.
type CustomerWithPrimaryAddress struct {
	Customer
	PrimaryAddress *Address
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByCode finds a customer by its code
	FindByCode(ctx context.Context, code string) (*Customer, error)

	// FindPageWithPrimary returns a page of customers that have a primary
	// address, each joined to that address. Search and status predicates from
	// the filter apply.
	FindPageWithPrimary(ctx context.Context, filter shared.Filter) ([]CustomerWithPrimaryAddress, error)

	// CountWithPrimary counts customers that have a primary address and match
	// the filter predicates (pagination ignored).
	CountWithPrimary(ctx context.Context, filter shared.Filter) (int64, error)

	// FindPageWithoutPrimary returns a page of customers that have no primary
	// address, excluding the given ids. The same filter predicates apply.
	FindPageWithoutPrimary(ctx context.Context, excludeIDs []uuid.UUID, filter shared.Filter) ([]Customer, error)

	// CountWithoutPrimary counts customers that have no primary address and
	// match the filter predicates (pagination and exclusions ignored).
	CountWithoutPrimary(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete hard-deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByCode checks if a customer with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

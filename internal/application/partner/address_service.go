package partner

import (
	"context"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddressService handles delivery address operations. It maintains the
// invariant that a customer has at most one primary address: any operation
// that promotes an address first clears every primary flag for that customer,
// then sets the target. The two writes are not wrapped in a transaction, so a
// concurrent promotion can interleave; the steady state after either write
// sequence still has a single primary.
type AddressService struct {
	addressRepo  partner.AddressRepository
	customerRepo partner.CustomerRepository
	listingCache shared.ListingCache
	logger       *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(
	addressRepo partner.AddressRepository,
	customerRepo partner.CustomerRepository,
	listingCache shared.ListingCache,
	logger *zap.Logger,
) *AddressService {
	return &AddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
		listingCache: listingCache,
		logger:       logger,
	}
}

// Create creates a new delivery address for a customer
func (s *AddressService) Create(ctx context.Context, req CreateAddressRequest) (*AddressResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	address, err := partner.NewAddress(req.CustomerID, req.Label, req.Line1, req.City)
	if err != nil {
		return nil, err
	}

	if err := address.SetPostal(req.Line2, req.Province, req.PostalCode, req.Country); err != nil {
		return nil, err
	}
	if err := address.SetLocation(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := address.SetDeliveryWindow(req.WindowStart, req.WindowEnd); err != nil {
		return nil, err
	}
	if req.Instructions != "" {
		address.SetInstructions(req.Instructions)
	}

	if req.IsPrimary {
		if err := s.addressRepo.ClearPrimary(ctx, req.CustomerID); err != nil {
			return nil, err
		}
		address.MarkPrimary()
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	response := ToAddressResponse(address)
	return &response, nil
}

// GetByID retrieves an address by ID
func (s *AddressService) GetByID(ctx context.Context, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// ListByCustomer returns all addresses of a customer, primary first
func (s *AddressService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]AddressResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return ToAddressResponses(addresses), nil
}

// Update updates an existing address. Nil request fields are left untouched.
func (s *AddressService) Update(ctx context.Context, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		if err := address.SetLabel(*req.Label); err != nil {
			return nil, err
		}
	}
	if req.Line1 != nil || req.City != nil {
		line1 := address.Line1
		city := address.City
		if req.Line1 != nil {
			line1 = *req.Line1
		}
		if req.City != nil {
			city = *req.City
		}
		if err := address.SetStreet(line1, city); err != nil {
			return nil, err
		}
	}
	if req.Line2 != nil || req.Province != nil || req.PostalCode != nil || req.Country != nil {
		line2 := address.Line2
		province := address.Province
		postalCode := address.PostalCode
		country := address.Country
		if req.Line2 != nil {
			line2 = *req.Line2
		}
		if req.Province != nil {
			province = *req.Province
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		if req.Country != nil {
			country = *req.Country
		}
		if err := address.SetPostal(line2, province, postalCode, country); err != nil {
			return nil, err
		}
	}
	if req.Latitude != nil || req.Longitude != nil {
		latitude := address.Latitude
		longitude := address.Longitude
		if req.Latitude != nil {
			latitude = req.Latitude
		}
		if req.Longitude != nil {
			longitude = req.Longitude
		}
		if err := address.SetLocation(latitude, longitude); err != nil {
			return nil, err
		}
	}
	if req.WindowStart != nil || req.WindowEnd != nil {
		start := address.WindowStart
		end := address.WindowEnd
		if req.WindowStart != nil {
			start = *req.WindowStart
		}
		if req.WindowEnd != nil {
			end = *req.WindowEnd
		}
		if err := address.SetDeliveryWindow(start, end); err != nil {
			return nil, err
		}
	}
	if req.Instructions != nil {
		address.SetInstructions(*req.Instructions)
	}

	if req.IsPrimary != nil {
		if *req.IsPrimary && !address.IsPrimary {
			if err := s.addressRepo.ClearPrimaryExcept(ctx, address.CustomerID, address.ID); err != nil {
				return nil, err
			}
			address.MarkPrimary()
		} else if !*req.IsPrimary {
			address.ClearPrimary()
		}
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	response := ToAddressResponse(address)
	return &response, nil
}

// SetPrimary promotes an address to be its customer's primary address.
// Promoting the current primary is a no-op.
func (s *AddressService) SetPrimary(ctx context.Context, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if !address.IsPrimary {
		if err := s.addressRepo.ClearPrimary(ctx, address.CustomerID); err != nil {
			return nil, err
		}
		address.MarkPrimary()
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return nil, err
		}
		s.invalidateListing(ctx)
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes an address. No replacement primary is elected when the
// deleted address was the primary one.
func (s *AddressService) Delete(ctx context.Context, addressID uuid.UUID) error {
	if _, err := s.addressRepo.FindByID(ctx, addressID); err != nil {
		return err
	}

	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *AddressService) invalidateListing(ctx context.Context) {
	if s.listingCache == nil {
		return
	}
	// Primary addresses render inline in customer listings
	if err := s.listingCache.Invalidate(ctx, customerListingEntity); err != nil {
		s.logger.Warn("failed to invalidate customer listing cache", zap.Error(err))
	}
}

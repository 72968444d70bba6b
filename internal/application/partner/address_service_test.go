package partner

import (
	"context"
	"testing"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAddressService(addressRepo *MockAddressRepository, customerRepo *MockCustomerRepository) *AddressService {
	return NewAddressService(addressRepo, customerRepo, nil, zap.NewNop())
}

func TestAddressService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates secondary address without touching other rows", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		customer, err := partner.NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		addressRepo.On("Save", ctx, mock.AnythingOfType("*partner.Address")).Return(nil)

		resp, err := service.Create(ctx, CreateAddressRequest{
			CustomerID: customer.ID,
			Label:      "Warehouse",
			Line1:      "Av. Rivadavia 1234",
			City:       "Buenos Aires",
		})

		require.NoError(t, err)
		assert.False(t, resp.IsPrimary)
		addressRepo.AssertNotCalled(t, "ClearPrimary", mock.Anything, mock.Anything)
	})

	t.Run("primary creation clears existing primaries first", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		customer, err := partner.NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		addressRepo.On("ClearPrimary", ctx, customer.ID).Return(nil)
		addressRepo.On("Save", ctx, mock.MatchedBy(func(a *partner.Address) bool {
			return a.IsPrimary
		})).Return(nil)

		resp, err := service.Create(ctx, CreateAddressRequest{
			CustomerID: customer.ID,
			Line1:      "Calle 9 555",
			City:       "La Plata",
			IsPrimary:  true,
		})

		require.NoError(t, err)
		assert.True(t, resp.IsPrimary)
		addressRepo.AssertExpectations(t)
	})

	t.Run("fails for unknown customer", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		id := uuid.New()
		customerRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		resp, err := service.Create(ctx, CreateAddressRequest{
			CustomerID: id,
			Line1:      "Calle 9 555",
			City:       "La Plata",
		})

		assert.Nil(t, resp)
		assert.Equal(t, shared.ErrNotFound, err)
		addressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects half-open delivery window before storage", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		customer, err := partner.NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)
		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		resp, err := service.Create(ctx, CreateAddressRequest{
			CustomerID:  customer.ID,
			Line1:       "Calle 9 555",
			City:        "La Plata",
			WindowStart: "08:30",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		addressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddressService_SetPrimary(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes address after clearing the old primary", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		addressRepo.On("ClearPrimary", ctx, address.CustomerID).Return(nil)
		addressRepo.On("Save", ctx, address).Return(nil)

		resp, err := service.SetPrimary(ctx, address.ID)

		require.NoError(t, err)
		assert.True(t, resp.IsPrimary)
		addressRepo.AssertExpectations(t)
	})

	t.Run("promoting the current primary is a no-op", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)
		address.MarkPrimary()

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)

		resp, err := service.SetPrimary(ctx, address.ID)

		require.NoError(t, err)
		assert.True(t, resp.IsPrimary)
		addressRepo.AssertNotCalled(t, "ClearPrimary", mock.Anything, mock.Anything)
		addressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddressService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("promotion clears other primaries but not the target", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		addressRepo.On("ClearPrimaryExcept", ctx, address.CustomerID, address.ID).Return(nil)
		addressRepo.On("Save", ctx, address).Return(nil)

		isPrimary := true
		resp, err := service.Update(ctx, address.ID, UpdateAddressRequest{IsPrimary: &isPrimary})

		require.NoError(t, err)
		assert.True(t, resp.IsPrimary)
		addressRepo.AssertExpectations(t)
	})

	t.Run("demotion leaves the customer without a primary", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)
		address.MarkPrimary()

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		addressRepo.On("Save", ctx, address).Return(nil)

		isPrimary := false
		resp, err := service.Update(ctx, address.ID, UpdateAddressRequest{IsPrimary: &isPrimary})

		require.NoError(t, err)
		assert.False(t, resp.IsPrimary)
		addressRepo.AssertNotCalled(t, "ClearPrimary", mock.Anything, mock.Anything)
		addressRepo.AssertNotCalled(t, "ClearPrimaryExcept", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("patches street fields", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		addressRepo.On("Save", ctx, address).Return(nil)

		line1 := "Calle 50 120"
		resp, err := service.Update(ctx, address.ID, UpdateAddressRequest{Line1: &line1})

		require.NoError(t, err)
		assert.Equal(t, "Calle 50 120", resp.Line1)
		assert.Equal(t, "La Plata", resp.City)
	})

	t.Run("rejects blank line1", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)

		line1 := ""
		resp, err := service.Update(ctx, address.ID, UpdateAddressRequest{Line1: &line1})

		assert.Nil(t, resp)
		assert.Error(t, err)
		addressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddressService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the primary without electing a replacement", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		address, err := partner.NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
		require.NoError(t, err)
		address.MarkPrimary()

		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		addressRepo.On("Delete", ctx, address.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, address.ID))
		addressRepo.AssertExpectations(t)
	})

	t.Run("missing address returns not found", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := newAddressService(addressRepo, customerRepo)

		id := uuid.New()
		addressRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		assert.Equal(t, shared.ErrNotFound, service.Delete(ctx, id))
		addressRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAddressService_ListByCustomer(t *testing.T) {
	ctx := context.Background()

	customerRepo := new(MockCustomerRepository)
	addressRepo := new(MockAddressRepository)
	service := newAddressService(addressRepo, customerRepo)

	customer, err := partner.NewCustomer("CUST001", "Test Customer")
	require.NoError(t, err)

	primary, err := partner.NewAddress(customer.ID, "Depot", "Av. Rivadavia 1234", "Buenos Aires")
	require.NoError(t, err)
	primary.MarkPrimary()
	secondary, err := partner.NewAddress(customer.ID, "", "Calle 9 555", "La Plata")
	require.NoError(t, err)

	customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	addressRepo.On("FindByCustomer", ctx, customer.ID).Return([]partner.Address{*primary, *secondary}, nil)

	addresses, err := service.ListByCustomer(ctx, customer.ID)

	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.True(t, addresses[0].IsPrimary)
	assert.False(t, addresses[1].IsPrimary)
}

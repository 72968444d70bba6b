package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates address successfully", func(t *testing.T) {
		address, err := NewAddress(customerID, "Warehouse", "Av. Rivadavia 1234", "Buenos Aires")

		require.NoError(t, err)
		assert.NotNil(t, address)
		assert.Equal(t, customerID, address.CustomerID)
		assert.Equal(t, "Warehouse", address.Label)
		assert.Equal(t, "Av. Rivadavia 1234", address.Line1)
		assert.Equal(t, "Buenos Aires", address.City)
		assert.False(t, address.IsPrimary)
		assert.False(t, address.CreatedAt.IsZero())
	})

	t.Run("fails without customer reference", func(t *testing.T) {
		address, err := NewAddress(uuid.Nil, "", "Av. Rivadavia 1234", "Buenos Aires")

		assert.Error(t, err)
		assert.Nil(t, address)
		assert.Contains(t, err.Error(), "customer reference")
	})

	t.Run("fails without line1", func(t *testing.T) {
		address, err := NewAddress(customerID, "", "", "Buenos Aires")

		assert.Error(t, err)
		assert.Nil(t, address)
	})

	t.Run("fails without city", func(t *testing.T) {
		address, err := NewAddress(customerID, "", "Av. Rivadavia 1234", "")

		assert.Error(t, err)
		assert.Nil(t, address)
	})
}

func TestAddress_SetDeliveryWindow(t *testing.T) {
	address, err := NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
	require.NoError(t, err)

	t.Run("sets valid window", func(t *testing.T) {
		err := address.SetDeliveryWindow("08:30", "12:00")

		require.NoError(t, err)
		assert.Equal(t, "08:30", address.WindowStart)
		assert.Equal(t, "12:00", address.WindowEnd)
	})

	t.Run("clears window with empty strings", func(t *testing.T) {
		require.NoError(t, address.SetDeliveryWindow("", ""))
		assert.Empty(t, address.WindowStart)
		assert.Empty(t, address.WindowEnd)
	})

	t.Run("rejects half-open window", func(t *testing.T) {
		assert.Error(t, address.SetDeliveryWindow("08:30", ""))
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		assert.Error(t, address.SetDeliveryWindow("8:30", "12:00"))
		assert.Error(t, address.SetDeliveryWindow("08:30", "25:00"))
	})
}

func TestAddress_SetLocation(t *testing.T) {
	address, err := NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
	require.NoError(t, err)

	t.Run("sets valid coordinates", func(t *testing.T) {
		lat := decimal.NewFromFloat(-34.9214)
		lng := decimal.NewFromFloat(-57.9544)

		require.NoError(t, address.SetLocation(&lat, &lng))
		assert.True(t, address.Latitude.Equal(lat))
		assert.True(t, address.Longitude.Equal(lng))
	})

	t.Run("rejects out-of-range latitude", func(t *testing.T) {
		lat := decimal.NewFromInt(91)

		assert.Error(t, address.SetLocation(&lat, nil))
	})
}

func TestAddress_PrimaryFlag(t *testing.T) {
	address, err := NewAddress(uuid.New(), "", "Calle 9 555", "La Plata")
	require.NoError(t, err)

	address.MarkPrimary()
	assert.True(t, address.IsPrimary)

	address.ClearPrimary()
	assert.False(t, address.IsPrimary)
}

package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)

		require.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "CYL-45", product.SKU)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Equal(t, UnitCylinder, product.UnitOfMeasure)
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("converts sku to uppercase", func(t *testing.T) {
		product, err := NewProduct("cyl-45", "45kg Cylinder", UnitCylinder)

		require.NoError(t, err)
		assert.Equal(t, "CYL-45", product.SKU)
	})

	t.Run("rejects sku with invalid characters", func(t *testing.T) {
		product, err := NewProduct("CYL_45", "45kg Cylinder", UnitCylinder)

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		product, err := NewProduct("CYL-45", "45kg Cylinder", "litre")

		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProduct_SetCylinderSpec(t *testing.T) {
	capacity := decimal.NewFromInt(45)
	tare := decimal.NewFromFloat(33.5)

	t.Run("sets spec on cylinder product", func(t *testing.T) {
		product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)
		require.NoError(t, err)

		require.NoError(t, product.SetCylinderSpec(&capacity, &tare, "POL"))
		assert.True(t, product.CapacityKg.Equal(capacity))
		assert.True(t, product.TareWeightKg.Equal(tare))
		assert.Equal(t, "POL", product.ValveType)
	})

	t.Run("rejects spec on weight product", func(t *testing.T) {
		product, err := NewProduct("BULK-LPG", "Bulk LPG", UnitKg)
		require.NoError(t, err)

		assert.Error(t, product.SetCylinderSpec(&capacity, &tare, "POL"))
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)
		require.NoError(t, err)

		zero := decimal.Zero
		assert.Error(t, product.SetCylinderSpec(&zero, nil, ""))
	})

	t.Run("rejects capacity above 500kg", func(t *testing.T) {
		product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)
		require.NoError(t, err)

		over := decimal.NewFromInt(501)
		assert.Error(t, product.SetCylinderSpec(&over, nil, ""))
	})
}

func TestProduct_SetUnitOfMeasure(t *testing.T) {
	t.Run("moving to kg clears cylinder spec", func(t *testing.T) {
		product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)
		require.NoError(t, err)

		capacity := decimal.NewFromInt(45)
		require.NoError(t, product.SetCylinderSpec(&capacity, nil, "POL"))

		require.NoError(t, product.SetUnitOfMeasure(UnitKg))
		assert.Nil(t, product.CapacityKg)
		assert.Nil(t, product.TareWeightKg)
		assert.Empty(t, product.ValveType)
	})
}

func TestProduct_MarkObsolete(t *testing.T) {
	product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)
	require.NoError(t, err)

	changed := product.MarkObsolete()
	assert.True(t, changed)
	assert.Equal(t, ProductStatusObsolete, product.Status)

	// Idempotent: a second call reports a no-op, not an error
	changed = product.MarkObsolete()
	assert.False(t, changed)
	assert.Equal(t, ProductStatusObsolete, product.Status)
}

func TestProduct_Reactivate(t *testing.T) {
	product, err := NewProduct("CYL-45", "45kg Cylinder", UnitCylinder)
	require.NoError(t, err)

	product.MarkObsolete()
	product.Reactivate()

	assert.Equal(t, ProductStatusActive, product.Status)
	assert.False(t, product.IsObsolete())
}

func TestValidateSKU(t *testing.T) {
	assert.NoError(t, ValidateSKU("CYL-45"))
	assert.NoError(t, ValidateSKU("A1-B2-C3"))
	assert.Error(t, ValidateSKU(""))
	assert.Error(t, ValidateSKU("CYL 45"))
	assert.Error(t, ValidateSKU("CYL_45"))
}

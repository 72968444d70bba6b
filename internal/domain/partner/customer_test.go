package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer("CUST001", "Highland Gas Depot")

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "CUST001", customer.Code)
		assert.Equal(t, "Highland Gas Depot", customer.Name)
		assert.Equal(t, AccountStatusActive, customer.AccountStatus)
		assert.Equal(t, 0, customer.CreditTermsDays)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		customer, err := NewCustomer("cust002", "Test Customer")

		require.NoError(t, err)
		assert.Equal(t, "CUST002", customer.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		customer, err := NewCustomer("", "Test Customer")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		customer, err := NewCustomer("CUST@001", "Test Customer")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "can only contain")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer("CUST001", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestCustomer_SetContact(t *testing.T) {
	customer, err := NewCustomer("CUST001", "Test Customer")
	require.NoError(t, err)

	t.Run("sets valid contact info", func(t *testing.T) {
		err := customer.SetContact("Jordan Reyes", "+54 11 4000-1234", "jordan@example.com")

		require.NoError(t, err)
		assert.Equal(t, "Jordan Reyes", customer.ContactName)
		assert.Equal(t, "+54 11 4000-1234", customer.Phone)
		assert.Equal(t, "jordan@example.com", customer.Email)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := customer.SetContact("", "", "not-an-email")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		err := customer.SetContact("", "phone#1", "")

		assert.Error(t, err)
	})
}

func TestCustomer_SetCreditTerms(t *testing.T) {
	customer, err := NewCustomer("CUST001", "Test Customer")
	require.NoError(t, err)

	t.Run("accepts zero and positive days", func(t *testing.T) {
		require.NoError(t, customer.SetCreditTerms(0))
		require.NoError(t, customer.SetCreditTerms(30))
		assert.Equal(t, 30, customer.CreditTermsDays)
	})

	t.Run("rejects negative days", func(t *testing.T) {
		err := customer.SetCreditTerms(-1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestCustomer_AccountStatusTransitions(t *testing.T) {
	t.Run("hold then reopen", func(t *testing.T) {
		customer, err := NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)

		require.NoError(t, customer.HoldCredit())
		assert.Equal(t, AccountStatusCreditHold, customer.AccountStatus)

		require.NoError(t, customer.Reopen())
		assert.Equal(t, AccountStatusActive, customer.AccountStatus)
	})

	t.Run("double hold fails", func(t *testing.T) {
		customer, err := NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)

		require.NoError(t, customer.HoldCredit())
		assert.Error(t, customer.HoldCredit())
	})

	t.Run("close is allowed from any other status", func(t *testing.T) {
		customer, err := NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)

		require.NoError(t, customer.HoldCredit())
		require.NoError(t, customer.Close())
		assert.Equal(t, AccountStatusClosed, customer.AccountStatus)
		assert.Error(t, customer.Close())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		customer, err := NewCustomer("CUST001", "Test Customer")
		require.NoError(t, err)

		assert.Error(t, customer.SetAccountStatus("suspended"))
	})
}

func TestCustomer_VersionIncrements(t *testing.T) {
	customer, err := NewCustomer("CUST001", "Test Customer")
	require.NoError(t, err)
	assert.Equal(t, 1, customer.Version)

	require.NoError(t, customer.Update("Renamed Customer"))
	assert.Equal(t, 2, customer.Version)

	customer.SetNotes("gate code 4411")
	assert.Equal(t, 3, customer.Version)
}

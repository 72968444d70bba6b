package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/gasdepot/backend/internal/domain/shared"
)

// AccountStatus represents the billing standing of a customer account
type AccountStatus string

const (
	AccountStatusActive     AccountStatus = "active"
	AccountStatusCreditHold AccountStatus = "credit_hold" // Deliveries blocked until balance settled
	AccountStatusClosed     AccountStatus = "closed"
)

// Customer represents a delivery customer in the partner context
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.BaseAggregateRoot
	Code            string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string        `gorm:"type:varchar(200);not null"`
	TaxID           string        `gorm:"type:varchar(50);index"`
	ContactName     string        `gorm:"type:varchar(100)"`
	Phone           string        `gorm:"type:varchar(50);index"`
	Email           string        `gorm:"type:varchar(200);index"`
	AccountStatus   AccountStatus `gorm:"type:varchar(20);not null;default:'active'"`
	CreditTermsDays int           `gorm:"not null;default:0"`
	Notes           string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(code, name string) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		AccountStatus:     AccountStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewValidationError("Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTaxID sets the customer's tax identification number
func (c *Customer) SetTaxID(taxID string) error {
	if taxID != "" && len(taxID) > 50 {
		return shared.NewValidationError("Tax ID cannot exceed 50 characters")
	}

	c.TaxID = taxID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCreditTerms sets the number of days the customer has to settle invoices
func (c *Customer) SetCreditTerms(days int) error {
	if days < 0 {
		return shared.NewValidationError("Credit terms days cannot be negative")
	}

	c.CreditTermsDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetAccountStatus moves the account to the given status
func (c *Customer) SetAccountStatus(status AccountStatus) error {
	if err := validateAccountStatus(status); err != nil {
		return err
	}

	oldStatus := c.AccountStatus
	c.AccountStatus = status
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, status))

	return nil
}

// HoldCredit places the account on credit hold
func (c *Customer) HoldCredit() error {
	if c.AccountStatus == AccountStatusCreditHold {
		return shared.NewDomainError("INVALID_STATE", "Customer is already on credit hold")
	}
	return c.SetAccountStatus(AccountStatusCreditHold)
}

// Close closes the account
func (c *Customer) Close() error {
	if c.AccountStatus == AccountStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Customer account is already closed")
	}
	return c.SetAccountStatus(AccountStatusClosed)
}

// Reopen returns a held or closed account to active
func (c *Customer) Reopen() error {
	if c.AccountStatus == AccountStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Customer account is already active")
	}
	return c.SetAccountStatus(AccountStatusActive)
}

// IsActive returns true if the account is in good standing
func (c *Customer) IsActive() bool {
	return c.AccountStatus == AccountStatusActive
}

// Validation functions

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewValidationError("Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewValidationError("Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateAccountStatus(status AccountStatus) error {
	switch status {
	case AccountStatusActive, AccountStatusCreditHold, AccountStatusClosed:
		return nil
	default:
		return shared.NewValidationError("Account status must be 'active', 'credit_hold', or 'closed'")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewValidationError("Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

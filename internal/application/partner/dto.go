package partner

import (
	"time"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the application-level request to create a customer
type CreateCustomerRequest struct {
	Code            string
	Name            string
	TaxID           string
	ContactName     string
	Phone           string
	Email           string
	CreditTermsDays *int
	Notes           string
}

// UpdateCustomerRequest is the application-level request to update a customer.
// Nil fields are left untouched.
type UpdateCustomerRequest struct {
	Name            *string
	TaxID           *string
	ContactName     *string
	Phone           *string
	Email           *string
	AccountStatus   *string
	CreditTermsDays *int
	Notes           *string
}

// CustomerListFilter holds filtering options for customer listing
type CustomerListFilter struct {
	Search        string
	AccountStatus string
	Page          int
	Limit         int
}

// CustomerResponse is the customer representation returned to callers
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	TaxID           string    `json:"tax_id,omitempty"`
	ContactName     string    `json:"contact_name,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	AccountStatus   string    `json:"account_status"`
	CreditTermsDays int       `json:"credit_terms_days"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CustomerListItem is a customer annotated with its primary address, when one
// exists
type CustomerListItem struct {
	CustomerResponse
	PrimaryAddress *AddressResponse `json:"primary_address,omitempty"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		TaxID:           c.TaxID,
		ContactName:     c.ContactName,
		Phone:           c.Phone,
		Email:           c.Email,
		AccountStatus:   string(c.AccountStatus),
		CreditTermsDays: c.CreditTermsDays,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CreateAddressRequest is the application-level request to create an address
type CreateAddressRequest struct {
	CustomerID   uuid.UUID
	Label        string
	Line1        string
	Line2        string
	City         string
	Province     string
	PostalCode   string
	Country      string
	Latitude     *decimal.Decimal
	Longitude    *decimal.Decimal
	WindowStart  string
	WindowEnd    string
	IsPrimary    bool
	Instructions string
}

// UpdateAddressRequest is the application-level request to update an address.
// Nil fields are left untouched.
type UpdateAddressRequest struct {
	Label        *string
	Line1        *string
	Line2        *string
	City         *string
	Province     *string
	PostalCode   *string
	Country      *string
	Latitude     *decimal.Decimal
	Longitude    *decimal.Decimal
	WindowStart  *string
	WindowEnd    *string
	IsPrimary    *bool
	Instructions *string
}

// AddressResponse is the address representation returned to callers
type AddressResponse struct {
	ID           uuid.UUID        `json:"id"`
	CustomerID   uuid.UUID        `json:"customer_id"`
	Label        string           `json:"label,omitempty"`
	Line1        string           `json:"line1"`
	Line2        string           `json:"line2,omitempty"`
	City         string           `json:"city"`
	Province     string           `json:"province,omitempty"`
	PostalCode   string           `json:"postal_code,omitempty"`
	Country      string           `json:"country,omitempty"`
	Latitude     *decimal.Decimal `json:"latitude,omitempty"`
	Longitude    *decimal.Decimal `json:"longitude,omitempty"`
	WindowStart  string           `json:"window_start,omitempty"`
	WindowEnd    string           `json:"window_end,omitempty"`
	IsPrimary    bool             `json:"is_primary"`
	Instructions string           `json:"instructions,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ToAddressResponse converts a domain address to a response DTO
func ToAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		Label:        a.Label,
		Line1:        a.Line1,
		Line2:        a.Line2,
		City:         a.City,
		Province:     a.Province,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		WindowStart:  a.WindowStart,
		WindowEnd:    a.WindowEnd,
		IsPrimary:    a.IsPrimary,
		Instructions: a.Instructions,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAddressResponses converts a slice of domain addresses
func ToAddressResponses(addresses []partner.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses
}

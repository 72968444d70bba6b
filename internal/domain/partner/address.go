package partner

import (
	"regexp"
	"time"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Address represents a delivery address owned by a customer.
// Addresses are created and hard-deleted freely; the one invariant is that a
// customer has at most one primary address at a time.
type Address struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Label        string           `gorm:"type:varchar(100)"`
	Line1        string           `gorm:"type:varchar(200);not null"`
	Line2        string           `gorm:"type:varchar(200)"`
	City         string           `gorm:"type:varchar(100);not null"`
	Province     string           `gorm:"type:varchar(100)"`
	PostalCode   string           `gorm:"type:varchar(20)"`
	Country      string           `gorm:"type:varchar(100)"`
	Latitude     *decimal.Decimal `gorm:"type:decimal(10,7)"`
	Longitude    *decimal.Decimal `gorm:"type:decimal(10,7)"`
	WindowStart  string           `gorm:"type:varchar(5)"` // "HH:MM", empty when no window
	WindowEnd    string           `gorm:"type:varchar(5)"`
	IsPrimary    bool             `gorm:"not null;default:false;index"`
	Instructions string           `gorm:"type:text"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new delivery address for a customer
func NewAddress(customerID uuid.UUID, label, line1, city string) (*Address, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Address requires a customer reference")
	}
	if err := validateAddressLine1(line1); err != nil {
		return nil, err
	}
	if err := validateAddressCity(city); err != nil {
		return nil, err
	}
	if label != "" && len(label) > 100 {
		return nil, shared.NewValidationError("Address label cannot exceed 100 characters")
	}

	return &Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Label:      label,
		Line1:      line1,
		City:       city,
		CreatedAt:  time.Now(),
	}, nil
}

// SetLabel updates the display label
func (a *Address) SetLabel(label string) error {
	if label != "" && len(label) > 100 {
		return shared.NewValidationError("Address label cannot exceed 100 characters")
	}
	a.Label = label
	return nil
}

// SetStreet updates the required street fields
func (a *Address) SetStreet(line1, city string) error {
	if err := validateAddressLine1(line1); err != nil {
		return err
	}
	if err := validateAddressCity(city); err != nil {
		return err
	}

	a.Line1 = line1
	a.City = city

	return nil
}

// SetPostal sets the remaining postal fields
func (a *Address) SetPostal(line2, province, postalCode, country string) error {
	if line2 != "" && len(line2) > 200 {
		return shared.NewValidationError("Address line 2 cannot exceed 200 characters")
	}
	if province != "" && len(province) > 100 {
		return shared.NewValidationError("Province cannot exceed 100 characters")
	}
	if postalCode != "" && len(postalCode) > 20 {
		return shared.NewValidationError("Postal code cannot exceed 20 characters")
	}
	if country != "" && len(country) > 100 {
		return shared.NewValidationError("Country cannot exceed 100 characters")
	}

	a.Line2 = line2
	a.Province = province
	a.PostalCode = postalCode
	a.Country = country

	return nil
}

// SetLocation sets the geocoordinates
func (a *Address) SetLocation(latitude, longitude *decimal.Decimal) error {
	if latitude != nil && (latitude.LessThan(decimal.NewFromInt(-90)) || latitude.GreaterThan(decimal.NewFromInt(90))) {
		return shared.NewValidationError("Latitude must be between -90 and 90")
	}
	if longitude != nil && (longitude.LessThan(decimal.NewFromInt(-180)) || longitude.GreaterThan(decimal.NewFromInt(180))) {
		return shared.NewValidationError("Longitude must be between -180 and 180")
	}

	a.Latitude = latitude
	a.Longitude = longitude

	return nil
}

// SetDeliveryWindow sets the preferred delivery time window.
// Both ends must be given together as "HH:MM"; empty strings clear the window.
func (a *Address) SetDeliveryWindow(start, end string) error {
	if start == "" && end == "" {
		a.WindowStart = ""
		a.WindowEnd = ""
		return nil
	}
	if start == "" || end == "" {
		return shared.NewValidationError("Delivery window requires both start and end times")
	}
	if !isClockTime(start) || !isClockTime(end) {
		return shared.NewValidationError("Delivery window times must be in HH:MM format")
	}

	a.WindowStart = start
	a.WindowEnd = end

	return nil
}

// SetInstructions sets free-text delivery instructions
func (a *Address) SetInstructions(instructions string) {
	a.Instructions = instructions
}

// MarkPrimary flags this address as the customer's primary address.
// Callers must have cleared any existing primary for the customer first.
func (a *Address) MarkPrimary() {
	a.IsPrimary = true
}

// ClearPrimary removes the primary flag
func (a *Address) ClearPrimary() {
	a.IsPrimary = false
}

var clockTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func isClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

func validateAddressLine1(line1 string) error {
	if line1 == "" {
		return shared.NewValidationError("Address line 1 cannot be empty")
	}
	if len(line1) > 200 {
		return shared.NewValidationError("Address line 1 cannot exceed 200 characters")
	}
	return nil
}

func validateAddressCity(city string) error {
	if city == "" {
		return shared.NewValidationError("City cannot be empty")
	}
	if len(city) > 100 {
		return shared.NewValidationError("City cannot exceed 100 characters")
	}
	return nil
}

package models

import (
	"time"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(200);not null"`
	TaxID           string    `gorm:"type:varchar(50);index"`
	ContactName     string    `gorm:"type:varchar(100)"`
	Phone           string    `gorm:"type:varchar(50)"`
	Email           string    `gorm:"type:varchar(200)"`
	AccountStatus   string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreditTermsDays int       `gorm:"not null;default:0"`
	Notes           string    `gorm:"type:text"`
	Version         int       `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Code:            m.Code,
		Name:            m.Name,
		TaxID:           m.TaxID,
		ContactName:     m.ContactName,
		Phone:           m.Phone,
		Email:           m.Email,
		AccountStatus:   partner.AccountStatus(m.AccountStatus),
		CreditTermsDays: m.CreditTermsDays,
		Notes:           m.Notes,
	}
}

// CustomerModelFromDomain converts a domain entity to a persistence model
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	return &CustomerModel{
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
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// AddressModel is the persistence model for delivery addresses
type AddressModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index;index:idx_addresses_customer_primary"`
	Label        string           `gorm:"type:varchar(100)"`
	Line1        string           `gorm:"type:varchar(200);not null"`
	Line2        string           `gorm:"type:varchar(200)"`
	City         string           `gorm:"type:varchar(100);not null"`
	Province     string           `gorm:"type:varchar(100)"`
	PostalCode   string           `gorm:"type:varchar(20)"`
	Country      string           `gorm:"type:varchar(100)"`
	Latitude     *decimal.Decimal `gorm:"type:decimal(10,7)"`
	Longitude    *decimal.Decimal `gorm:"type:decimal(10,7)"`
	WindowStart  string           `gorm:"type:varchar(5)"`
	WindowEnd    string           `gorm:"type:varchar(5)"`
	IsPrimary    bool             `gorm:"not null;default:false;index:idx_addresses_customer_primary"`
	Instructions string           `gorm:"type:text"`
	CreatedAt    time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain entity
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		Label:        m.Label,
		Line1:        m.Line1,
		Line2:        m.Line2,
		City:         m.City,
		Province:     m.Province,
		PostalCode:   m.PostalCode,
		Country:      m.Country,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		WindowStart:  m.WindowStart,
		WindowEnd:    m.WindowEnd,
		IsPrimary:    m.IsPrimary,
		Instructions: m.Instructions,
		CreatedAt:    m.CreatedAt,
	}
}

// AddressModelFromDomain converts a domain entity to a persistence model
func AddressModelFromDomain(a *partner.Address) *AddressModel {
	return &AddressModel{
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

package persistence

import (
	"context"
	"errors"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/gasdepot/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns all addresses of a customer, primary first, then by
// creation time ascending
func (r *GormAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]partner.Address, error) {
	var addressModels []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_primary DESC, created_at ASC").
		Find(&addressModels).Error; err != nil {
		return nil, err
	}

	addresses := make([]partner.Address, len(addressModels))
	for i := range addressModels {
		addresses[i] = *addressModels[i].ToDomain()
	}
	return addresses, nil
}

// ClearPrimary clears the primary flag on every address of the customer
func (r *GormAddressRepository) ClearPrimary(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AddressModel{}).
		Where("customer_id = ? AND is_primary = ?", customerID, true).
		Update("is_primary", false).Error
}

// ClearPrimaryExcept clears the primary flag on every address of the customer
// other than the given address
func (r *GormAddressRepository) ClearPrimaryExcept(ctx context.Context, customerID, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AddressModel{}).
		Where("customer_id = ? AND is_primary = ? AND id <> ?", customerID, true, exceptID).
		Update("is_primary", false).Error
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	model := models.AddressModelFromDomain(address)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete hard-deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByCustomer hard-deletes all addresses of a customer
func (r *GormAddressRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.AddressModel{}, "customer_id = ?", customerID).Error
}

// Ensure GormAddressRepository implements AddressRepository
var _ partner.AddressRepository = (*GormAddressRepository)(nil)

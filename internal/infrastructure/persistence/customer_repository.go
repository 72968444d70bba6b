package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/gasdepot/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const hasPrimaryAddress = "EXISTS (SELECT 1 FROM addresses WHERE addresses.customer_id = customers.id AND addresses.is_primary = ?)"

var customerSortColumns = map[string]bool{
	"created_at": true,
	"code":       true,
	"name":       true,
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a customer by its code
func (r *GormCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPageWithPrimary returns a page of customers that have a primary address,
// each joined to that address
func (r *GormCustomerRepository) FindPageWithPrimary(ctx context.Context, filter shared.Filter) ([]partner.CustomerWithPrimaryAddress, error) {
	var customerModels []models.CustomerModel
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).
		Where(hasPrimaryAddress, true)
	query = r.applyPageAndOrder(query, filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}
	if len(customerModels) == 0 {
		return []partner.CustomerWithPrimaryAddress{}, nil
	}

	ids := make([]uuid.UUID, len(customerModels))
	for i := range customerModels {
		ids[i] = customerModels[i].ID
	}

	var addressModels []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("customer_id IN ? AND is_primary = ?", ids, true).
		Find(&addressModels).Error; err != nil {
		return nil, err
	}

	primaryByCustomer := make(map[uuid.UUID]*partner.Address, len(addressModels))
	for i := range addressModels {
		primaryByCustomer[addressModels[i].CustomerID] = addressModels[i].ToDomain()
	}

	result := make([]partner.CustomerWithPrimaryAddress, len(customerModels))
	for i := range customerModels {
		result[i] = partner.CustomerWithPrimaryAddress{
			Customer:       *customerModels[i].ToDomain(),
			PrimaryAddress: primaryByCustomer[customerModels[i].ID],
		}
	}
	return result, nil
}

// CountWithPrimary counts customers that have a primary address and match the
// filter predicates
func (r *GormCustomerRepository) CountWithPrimary(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).
		Where(hasPrimaryAddress, true)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPageWithoutPrimary returns a page of customers that have no primary
// address, excluding the given ids
func (r *GormCustomerRepository) FindPageWithoutPrimary(ctx context.Context, excludeIDs []uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).
		Where("NOT "+hasPrimaryAddress, true)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	query = r.applyPageAndOrder(query, filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// CountWithoutPrimary counts customers that have no primary address and match
// the filter predicates
func (r *GormCustomerRepository) CountWithoutPrimary(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter).
		Where("NOT "+hasPrimaryAddress, true)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete hard-deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a customer with the given code exists
func (r *GormCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyPredicates applies search and status predicates without pagination.
// LOWER(...) LIKE keeps the search case-insensitive on both postgres and
// sqlite.
func (r *GormCustomerRepository) applyPredicates(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(tax_id) LIKE ?", pattern, pattern, pattern)
	}
	if status, ok := filter.Filters["account_status"]; ok {
		query = query.Where("account_status = ?", status)
	}
	return query
}

func (r *GormCustomerRepository) applyPageAndOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order(orderClause(filter.OrderBy, filter.OrderDir, "created_at", customerSortColumns))
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)

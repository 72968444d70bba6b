package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gasdepot/backend/internal/domain/catalog"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/gasdepot/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var productSortColumns = map[string]bool{
	"created_at":  true,
	"sku":         true,
	"name":        true,
	"status":      true,
	"capacity_kg": true,
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, "created_at", productSortColumns))

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyPredicates(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatusBatch sets the status on all given products in one write.
// Obsolete rows only leave that state through reactivation, so a bulk move to
// end_of_sale skips them.
func (r *GormProductRepository) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status catalog.ProductStatus) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id IN ?", ids)
	if status == catalog.ProductStatusEndOfSale {
		query = query.Where("status <> ?", string(catalog.ProductStatusObsolete))
	}
	result := query.
		Updates(map[string]interface{}{
			"status":  string(status),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ExistsBySKU checks whether a non-obsolete product other than excludeID
// carries the given SKU
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("sku = ? AND status <> ?", strings.ToUpper(sku), string(catalog.ProductStatusObsolete))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByBarcode checks whether a non-obsolete product other than excludeID
// carries the given barcode UID
func (r *GormProductRepository) ExistsByBarcode(ctx context.Context, barcode string, excludeID uuid.UUID) (bool, error) {
	if barcode == "" {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("barcode_uid = ? AND status <> ?", barcode, string(catalog.ProductStatusObsolete))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Stats computes aggregate counts over status and unit fields
func (r *GormProductRepository) Stats(ctx context.Context) (*catalog.ProductStats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&byStatus).Error; err != nil {
		return nil, err
	}

	type unitCount struct {
		UnitOfMeasure string
		Count         int64
	}
	var byUnit []unitCount
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("unit_of_measure, COUNT(*) AS count").
		Where("status <> ?", string(catalog.ProductStatusObsolete)).
		Group("unit_of_measure").
		Find(&byUnit).Error; err != nil {
		return nil, err
	}

	stats := &catalog.ProductStats{}
	for _, row := range byStatus {
		switch catalog.ProductStatus(row.Status) {
		case catalog.ProductStatusActive:
			stats.Active = row.Count
		case catalog.ProductStatusEndOfSale:
			stats.EndOfSale = row.Count
		case catalog.ProductStatusObsolete:
			stats.Obsolete = row.Count
		}
	}
	stats.Total = stats.Active + stats.EndOfSale
	for _, row := range byUnit {
		switch catalog.UnitOfMeasure(row.UnitOfMeasure) {
		case catalog.UnitCylinder:
			stats.Cylinder = row.Count
		case catalog.UnitKg:
			stats.Weight = row.Count
		}
	}
	return stats, nil
}

// applyPredicates applies search and field predicates without pagination.
// Obsolete rows are excluded unless the filter carries show_obsolete; a status
// predicate narrows within whichever set is visible.
func (r *GormProductRepository) applyPredicates(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(sku) LIKE ? OR LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern)
	}

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if unit, ok := filter.Filters["unit_of_measure"]; ok {
		query = query.Where("unit_of_measure = ?", unit)
	}

	if _, showObsolete := filter.Filters["show_obsolete"]; !showObsolete {
		query = query.Where("status <> ?", string(catalog.ProductStatusObsolete))
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

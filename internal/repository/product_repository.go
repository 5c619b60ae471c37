package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Himanshu1044/inventory-billing-system/internal/model"
)

// ProductFilter narrows a product listing. A nil BusinessID means the query
// runs unscoped (anonymous read).
type ProductFilter struct {
	BusinessID uuid.UUID
	Search     string
	Category   string
	Offset     int
	Limit      int
}

// ProductRepository defines product persistence operations. Mutations take the
// owning business ID so a record outside the caller's scope is never touched.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDForBusiness(ctx context.Context, id, businessID uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	UpdateFields(ctx context.Context, id, businessID uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id, businessID uuid.UUID) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDForBusiness(ctx context.Context, id, businessID uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a page of products plus the total match count.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.BusinessID != uuid.Nil {
		query = query.Where("business_id = ?", filter.BusinessID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	if err := query.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// UpdateFields applies the supplied columns to the product owned by the given
// business and reports how many rows matched.
func (r *productRepository) UpdateFields(ctx context.Context, id, businessID uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *productRepository) Delete(ctx context.Context, id, businessID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		Delete(&model.Product{})
	return result.RowsAffected, result.Error
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Himanshu1044/inventory-billing-system/internal/auth"
	"github.com/Himanshu1044/inventory-billing-system/internal/cache"
	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
	"github.com/Himanshu1044/inventory-billing-system/internal/model"
	"github.com/Himanshu1044/inventory-billing-system/internal/repository"
)

const (
	productCacheTTL = 5 * time.Minute

	defaultPage  = 1
	defaultLimit = 10
)

// ListParams are the caller-supplied listing controls before coercion.
type ListParams struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// Pagination describes the page returned by List.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// CreateProductInput carries validated fields for product creation.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
}

// UpdateProductInput carries the subset of fields supplied on update. Nil
// pointers mean the field was not sent and stays untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
}

// ProductService handles catalog operations.
type ProductService interface {
	// List returns a page of products. A nil scope runs unscoped; a resolved
	// scope restricts results to the caller's business.
	List(ctx context.Context, scope *auth.Scope, params ListParams) ([]model.Product, Pagination, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, scope auth.Scope, input CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, scope auth.Scope, id uuid.UUID, input UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// List filters, sorts and paginates the catalog.
func (s *productService) List(ctx context.Context, scope *auth.Scope, params ListParams) ([]model.Product, Pagination, error) {
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	filter := repository.ProductFilter{
		Search:   strings.TrimSpace(params.Search),
		Category: strings.TrimSpace(params.Category),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	if scope != nil {
		filter.BusinessID = scope.BusinessID
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list products: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return products, Pagination{Current: page, Pages: pages, Total: total}, nil
}

// Get retrieves a single product with a read-through cache.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// Create persists a product owned by the caller's business scope.
func (s *productService) Create(ctx context.Context, scope auth.Scope, input CreateProductInput) (*model.Product, error) {
	if input.Price.IsNegative() || input.Stock < 0 {
		return nil, apperrors.ErrNegativeValue
	}

	product := &model.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    strings.TrimSpace(input.Category),
		BusinessID:  scope.BusinessID,
	}
	if product.Name == "" || product.Category == "" {
		return nil, apperrors.ErrFieldsRequired
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update applies only the supplied fields to a product within the caller's
// scope and returns the updated record.
func (s *productService) Update(ctx context.Context, scope auth.Scope, id uuid.UUID, input UpdateProductInput) (*model.Product, error) {
	if input.Price != nil && input.Price.IsNegative() {
		return nil, apperrors.ErrNegativeValue
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, apperrors.ErrNegativeValue
	}

	if _, err := s.repo.FindByIDForBusiness(ctx, id, scope.BusinessID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Stock != nil {
		fields["stock"] = *input.Stock
	}
	if input.Category != nil {
		fields["category"] = strings.TrimSpace(*input.Category)
	}

	if len(fields) > 0 {
		if _, err := s.repo.UpdateFields(ctx, id, scope.BusinessID, fields); err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(id))
	}

	product, err := s.repo.FindByIDForBusiness(ctx, id, scope.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return product, nil
}

// Delete removes a product within the caller's scope.
func (s *productService) Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id, scope.BusinessID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrProductNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

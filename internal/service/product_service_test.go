package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Himanshu1044/inventory-billing-system/internal/auth"
	"github.com/Himanshu1044/inventory-billing-system/internal/cache"
	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
	"github.com/Himanshu1044/inventory-billing-system/internal/model"
	"github.com/Himanshu1044/inventory-billing-system/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForBusiness(ctx context.Context, id, businessID uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) UpdateFields(ctx context.Context, id, businessID uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, businessID, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, businessID)
	return args.Get(0).(int64), args.Error(1)
}

// The fail-safe cache client tolerates a nil receiver, which keeps these
// tests free of a Redis dependency.
var noCache *cache.Client

func TestProductService_List_Pagination(t *testing.T) {
	mockRepo := new(MockProductRepository)
	page := make([]model.Product, 5)
	mockRepo.On("List", mock.Anything, repository.ProductFilter{Offset: 5, Limit: 5}).
		Return(page, int64(12), nil)

	service := NewProductService(mockRepo, noCache)
	products, pagination, err := service.List(context.Background(), nil, ListParams{Page: 2, Limit: 5})

	assert.NoError(t, err)
	assert.Len(t, products, 5)
	assert.Equal(t, 2, pagination.Current)
	assert.Equal(t, 3, pagination.Pages)
	assert.Equal(t, int64(12), pagination.Total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_List_CoercesPageAndLimit(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("List", mock.Anything, repository.ProductFilter{Offset: 0, Limit: 10}).
		Return([]model.Product{}, int64(0), nil)

	service := NewProductService(mockRepo, noCache)
	_, pagination, err := service.List(context.Background(), nil, ListParams{Page: -3, Limit: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, pagination.Current)
	assert.Equal(t, 0, pagination.Pages)
	mockRepo.AssertExpectations(t)
}

func TestProductService_List_AppliesScopeAndFilters(t *testing.T) {
	businessID := uuid.New()
	mockRepo := new(MockProductRepository)
	mockRepo.On("List", mock.Anything, repository.ProductFilter{
		BusinessID: businessID,
		Search:     "pen",
		Category:   "stationery",
		Offset:     0,
		Limit:      10,
	}).Return([]model.Product{}, int64(0), nil)

	service := NewProductService(mockRepo, noCache)
	scope := &auth.Scope{BusinessID: businessID}
	_, _, err := service.List(context.Background(), scope, ListParams{Search: " pen ", Category: " stationery "})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Get(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, Name: "Pen"}, nil)

		service := NewProductService(mockRepo, noCache)
		product, err := service.Get(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, "Pen", product.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, noCache)
		_, err := service.Get(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

func TestProductService_Create(t *testing.T) {
	businessID := uuid.New()
	scope := auth.Scope{UserID: uuid.New(), BusinessID: businessID}

	t.Run("stamps caller's business scope", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
			return p.BusinessID == businessID
		})).Return(nil)

		service := NewProductService(mockRepo, noCache)
		product, err := service.Create(context.Background(), scope, CreateProductInput{
			Name:     "Pen",
			Price:    decimal.NewFromInt(2),
			Stock:    100,
			Category: "stationery",
		})

		assert.NoError(t, err)
		assert.Equal(t, businessID, product.BusinessID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, noCache)

		_, err := service.Create(context.Background(), scope, CreateProductInput{
			Name:     "Pen",
			Price:    decimal.NewFromInt(-1),
			Stock:    1,
			Category: "stationery",
		})

		assert.ErrorIs(t, err, apperrors.ErrNegativeValue)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, noCache)

		_, err := service.Create(context.Background(), scope, CreateProductInput{
			Name:     "Pen",
			Price:    decimal.NewFromInt(2),
			Stock:    -5,
			Category: "stationery",
		})

		assert.ErrorIs(t, err, apperrors.ErrNegativeValue)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestProductService_Update(t *testing.T) {
	businessID := uuid.New()
	scope := auth.Scope{BusinessID: businessID}
	id := uuid.New()

	t.Run("applies only supplied fields", func(t *testing.T) {
		price := decimal.NewFromInt(5)
		existing := &model.Product{ID: id, Name: "Pen", Price: decimal.NewFromInt(2), BusinessID: businessID}
		updated := &model.Product{ID: id, Name: "Pen", Price: price, BusinessID: businessID}

		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByIDForBusiness", mock.Anything, id, businessID).Return(existing, nil).Once()
		mockRepo.On("UpdateFields", mock.Anything, id, businessID, map[string]interface{}{"price": price}).
			Return(int64(1), nil)
		mockRepo.On("FindByIDForBusiness", mock.Anything, id, businessID).Return(updated, nil).Once()

		service := NewProductService(mockRepo, noCache)
		product, err := service.Update(context.Background(), scope, id, UpdateProductInput{Price: &price})

		assert.NoError(t, err)
		assert.True(t, product.Price.Equal(price))
		mockRepo.AssertExpectations(t)
	})

	t.Run("negative price leaves record untouched", func(t *testing.T) {
		price := decimal.NewFromInt(-1)
		mockRepo := new(MockProductRepository)

		service := NewProductService(mockRepo, noCache)
		_, err := service.Update(context.Background(), scope, id, UpdateProductInput{Price: &price})

		assert.ErrorIs(t, err, apperrors.ErrNegativeValue)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})

	t.Run("foreign product reads as not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByIDForBusiness", mock.Anything, id, businessID).Return(nil, gorm.ErrRecordNotFound)

		name := "Renamed"
		service := NewProductService(mockRepo, noCache)
		_, err := service.Update(context.Background(), scope, id, UpdateProductInput{Name: &name})

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})

	t.Run("no supplied fields returns current record", func(t *testing.T) {
		existing := &model.Product{ID: id, Name: "Pen", BusinessID: businessID}
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByIDForBusiness", mock.Anything, id, businessID).Return(existing, nil)

		service := NewProductService(mockRepo, noCache)
		product, err := service.Update(context.Background(), scope, id, UpdateProductInput{})

		assert.NoError(t, err)
		assert.Equal(t, "Pen", product.Name)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})
}

func TestProductService_Delete(t *testing.T) {
	businessID := uuid.New()
	scope := auth.Scope{BusinessID: businessID}
	id := uuid.New()

	t.Run("removes owned product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Delete", mock.Anything, id, businessID).Return(int64(1), nil)

		service := NewProductService(mockRepo, noCache)
		assert.NoError(t, service.Delete(context.Background(), scope, id))
		mockRepo.AssertExpectations(t)
	})

	t.Run("foreign or missing product reads as not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Delete", mock.Anything, id, businessID).Return(int64(0), nil)

		service := NewProductService(mockRepo, noCache)
		err := service.Delete(context.Background(), scope, id)

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

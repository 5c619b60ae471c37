package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Himanshu1044/inventory-billing-system/internal/auth"
	"github.com/Himanshu1044/inventory-billing-system/internal/config"
	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
	"github.com/Himanshu1044/inventory-billing-system/internal/handler"
	"github.com/Himanshu1044/inventory-billing-system/internal/model"
	"github.com/Himanshu1044/inventory-billing-system/internal/service"
)

// stubProductService records the scope each catalog call resolved.
type stubProductService struct {
	listScope   *auth.Scope
	createScope auth.Scope
}

func (s *stubProductService) List(ctx context.Context, scope *auth.Scope, params service.ListParams) ([]model.Product, service.Pagination, error) {
	s.listScope = scope
	return []model.Product{}, service.Pagination{Current: 1, Pages: 0, Total: 0}, nil
}

func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return nil, apperrors.ErrProductNotFound
}

func (s *stubProductService) Create(ctx context.Context, scope auth.Scope, input service.CreateProductInput) (*model.Product, error) {
	s.createScope = scope
	return &model.Product{ID: uuid.New(), Name: input.Name, Price: input.Price, Stock: input.Stock, Category: input.Category, BusinessID: scope.BusinessID}, nil
}

func (s *stubProductService) Update(ctx context.Context, scope auth.Scope, id uuid.UUID, input service.UpdateProductInput) (*model.Product, error) {
	return nil, apperrors.ErrProductNotFound
}

func (s *stubProductService) Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error {
	return apperrors.ErrProductNotFound
}

func newTestServer(products *stubProductService) (*echo.Echo, *auth.JWTService) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	e := echo.New()
	Register(e, cfg, zerolog.Nop(), jwtService,
		handler.NewAuthHandler(nil),
		handler.NewProductHandler(products),
	)
	return e, jwtService
}

func TestRouter_UnmatchedRouteEnvelope(t *testing.T) {
	e, _ := newTestServer(&stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp apperrors.Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Route not found", resp.Message)
}

func TestRouter_MutationRequiresToken(t *testing.T) {
	e, _ := newTestServer(&stubProductService{})

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Pen","price":2,"stock":100,"category":"stationery"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperrors.Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestRouter_MutationWithTokenResolvesScope(t *testing.T) {
	products := &stubProductService{}
	e, jwtService := newTestServer(products)

	businessID := uuid.New()
	token, err := jwtService.GenerateAccessToken(uuid.New(), businessID, "a@x.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Pen","price":2,"stock":100,"category":"stationery"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, businessID, products.createScope.BusinessID)
}

func TestRouter_ReadScopedWhenAuthenticated(t *testing.T) {
	products := &stubProductService{}
	e, jwtService := newTestServer(products)

	businessID := uuid.New()
	token, err := jwtService.GenerateAccessToken(uuid.New(), businessID, "a@x.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, products.listScope) {
		assert.Equal(t, businessID, products.listScope.BusinessID)
	}
}

func TestRouter_ReadAnonymousStaysUnscoped(t *testing.T) {
	products := &stubProductService{}
	e, _ := newTestServer(products)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, products.listScope)
}

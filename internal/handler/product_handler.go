package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Himanshu1044/inventory-billing-system/internal/auth"
	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
	"github.com/Himanshu1044/inventory-billing-system/internal/model"
	"github.com/Himanshu1044/inventory-billing-system/internal/service"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       *int             `json:"stock" validate:"required"`
	Category    string           `json:"category" validate:"required,max=50"`
}

// UpdateProductRequest represents a partial product update. Absent fields are
// left untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category" validate:"omitempty,max=50"`
}

// ProductResponse wraps a single product in the response envelope.
type ProductResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Product *model.Product `json:"product"`
}

// ProductListResponse wraps a product page in the response envelope.
type ProductListResponse struct {
	Success    bool               `json:"success"`
	Products   []model.Product    `json:"products"`
	Pagination service.Pagination `json:"pagination"`
}

// List godoc
// @Summary List products with search, category filter and pagination
// @Tags products
// @Produce json
// @Param search query string false "Substring match on name or description"
// @Param category query string false "Substring match on category"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} ProductListResponse
// @Failure 500 {object} errors.Response
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	params := service.ListParams{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		params.Limit = limit
	}

	var scope *auth.Scope
	if s, err := auth.ScopeFromContext(c); err == nil {
		scope = &s
	}

	products, pagination, err := h.productService.List(c.Request().Context(), scope, params)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(http.StatusOK, ProductListResponse{
		Success:    true,
		Products:   products,
		Pagination: pagination,
	})
}

// Get godoc
// @Summary Fetch a single product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrProductNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	return c.JSON(http.StatusOK, ProductResponse{Success: true, Product: product})
}

// Create godoc
// @Summary Create a product owned by the caller's business
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	scope, err := auth.ScopeFromContext(c)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Response{Success: false, Message: apperrors.ErrFieldsRequired.Error()})
	}
	if err := c.Validate(&req); err != nil {
		httpErr := validationError(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	product, err := h.productService.Create(c.Request().Context(), scope, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	return c.JSON(http.StatusCreated, ProductResponse{
		Success: true,
		Message: "Product created successfully",
		Product: product,
	})
}

// Update godoc
// @Summary Partially update a product within the caller's business
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	scope, err := auth.ScopeFromContext(c)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrProductNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Response{Success: false, Message: "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		httpErr := validationError(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	product, err := h.productService.Update(c.Request().Context(), scope, id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	return c.JSON(http.StatusOK, ProductResponse{
		Success: true,
		Message: "Product updated successfully",
		Product: product,
	})
}

// Delete godoc
// @Summary Delete a product within the caller's business
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	scope, err := auth.ScopeFromContext(c)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrProductNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	if err := h.productService.Delete(c.Request().Context(), scope, id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
	}

	return c.JSON(http.StatusOK, apperrors.Response{Success: true, Message: "Product deleted successfully"})
}

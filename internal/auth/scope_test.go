package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
)

func optionalAuthScope(t *testing.T, authorization string) (Scope, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var scope Scope
	var scopeErr error
	mw := OptionalAuth(NewJWTService("test-secret"))
	err := mw(func(c echo.Context) error {
		scope, scopeErr = ScopeFromContext(c)
		return nil
	})(c)
	assert.NoError(t, err)
	return scope, scopeErr
}

func TestOptionalAuth_ValidTokenResolvesScope(t *testing.T) {
	userID := uuid.New()
	businessID := uuid.New()
	token, err := NewJWTService("test-secret").GenerateAccessToken(userID, businessID, "a@x.com")
	assert.NoError(t, err)

	scope, scopeErr := optionalAuthScope(t, "Bearer "+token)
	assert.NoError(t, scopeErr)
	assert.Equal(t, businessID, scope.BusinessID)
	assert.Equal(t, userID, scope.UserID)
}

func TestOptionalAuth_AnonymousStaysUnscoped(t *testing.T) {
	_, scopeErr := optionalAuthScope(t, "")
	assert.ErrorIs(t, scopeErr, apperrors.ErrUnauthenticated)
}

func TestOptionalAuth_MalformedTokenStaysUnscoped(t *testing.T) {
	_, scopeErr := optionalAuthScope(t, "Bearer not-a-token")
	assert.ErrorIs(t, scopeErr, apperrors.ErrUnauthenticated)
}

func TestOptionalAuth_ForeignSecretStaysUnscoped(t *testing.T) {
	token, err := NewJWTService("other-secret").GenerateAccessToken(uuid.New(), uuid.New(), "a@x.com")
	assert.NoError(t, err)

	_, scopeErr := optionalAuthScope(t, "Bearer "+token)
	assert.ErrorIs(t, scopeErr, apperrors.ErrUnauthenticated)
}

func TestScopeFromContext_SecuredRouteClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/products", nil), httptest.NewRecorder())

	businessID := uuid.New()
	c.Set("user", &Claims{UserID: uuid.New(), BusinessID: businessID})

	scope, err := ScopeFromContext(c)
	assert.NoError(t, err)
	assert.Equal(t, businessID, scope.BusinessID)
}

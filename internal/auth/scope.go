package auth

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
)

// scopeContextKey is where the optional-auth middleware stores a resolved scope.
const scopeContextKey = "business_scope"

// Scope identifies the business partition a request operates on. Every product
// mutation is attributed to a scope; reads are filtered by it when present.
type Scope struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
}

// ScopeFromContext resolves the business scope of the current request. It
// accepts either the claims placed in the context by the JWT middleware on
// secured routes or a scope stored by OptionalAuth.
func ScopeFromContext(c echo.Context) (Scope, error) {
	if claims, ok := c.Get("user").(*Claims); ok && claims.BusinessID != uuid.Nil {
		return Scope{UserID: claims.UserID, BusinessID: claims.BusinessID}, nil
	}
	if s, ok := c.Get(scopeContextKey).(Scope); ok {
		return s, nil
	}
	return Scope{}, apperrors.ErrUnauthenticated
}

// OptionalAuth resolves a scope from a bearer token when one is presented but
// never rejects the request. Anonymous and malformed-token requests proceed
// unscoped, matching the public read surface.
func OptionalAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if len(header) > len(prefix) && header[:len(prefix)] == prefix {
				if claims, err := jwtService.ValidateToken(header[len(prefix):]); err == nil {
					c.Set(scopeContextKey, Scope{UserID: claims.UserID, BusinessID: claims.BusinessID})
				}
			}
			return next(c)
		}
	}
}

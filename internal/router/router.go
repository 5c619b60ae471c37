package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Himanshu1044/inventory-billing-system/internal/auth"
	"github.com/Himanshu1044/inventory-billing-system/internal/config"
	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
	"github.com/Himanshu1044/inventory-billing-system/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger zerolog.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(logger)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Inventory & Billing Management System API is running",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Product reads stay public; a valid bearer token narrows them to the
	// caller's business.
	reads := api.Group("", auth.OptionalAuth(jwtService))
	reads.GET("/products", productHandler.List)
	reads.GET("/products/:id", productHandler.Get)

	// Product mutations require an authenticated business scope.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))
	secured.POST("/products", productHandler.Create)
	secured.PUT("/products/:id", productHandler.Update)
	secured.DELETE("/products/:id", productHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newHTTPErrorHandler shapes every error echo surfaces into the
// {success,message} envelope. Unclassified errors become a generic 500 and
// are logged server-side only.
func newHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var httpErr *apperrors.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.StatusCode
			message = httpErr.Message
		case errors.As(err, &echoErr):
			status = echoErr.Code
			switch status {
			case http.StatusNotFound, http.StatusMethodNotAllowed:
				// Express-style catch-all for unmatched routes.
				status = http.StatusNotFound
				message = "Route not found"
			case http.StatusUnauthorized, http.StatusBadRequest:
				if m, ok := echoErr.Message.(string); ok {
					message = m
				}
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled request error")
			message = "Internal server error"
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, apperrors.Response{Success: false, Message: message})
	}
}

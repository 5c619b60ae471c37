package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Himanshu1044/inventory-billing-system/internal/errors"
)

// validationError turns a validator error into a 400 with a message in the
// voice of the API rather than validator's internal format.
func validationError(err error) *apperrors.HTTPError {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			switch {
			case fe.Field() == "Password" && fe.Tag() == "min":
				return apperrors.NewHTTPError(http.StatusBadRequest, apperrors.ErrPasswordTooShort.Error())
			case fe.Tag() == "required":
				return apperrors.NewHTTPError(http.StatusBadRequest, apperrors.ErrFieldsRequired.Error())
			}
		}
		return apperrors.NewHTTPError(http.StatusBadRequest, fieldErrs[0].Error())
	}
	return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request")
}

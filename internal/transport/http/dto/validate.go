package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jobhive/auth-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs tag validation and converts the first failure into
// a domain validation error with a client-readable message.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return domain.ErrInvalidJSON(err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(fe.Field())
	case "email":
		return domain.ErrInvalidField(fe.Field(), "must be a valid email address")
	case "min":
		return domain.ErrInvalidField(fe.Field(), fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return domain.ErrInvalidField(fe.Field(), fmt.Sprintf("must be at most %s characters", fe.Param()))
	default:
		return domain.ErrInvalidField(fe.Field(), "is invalid")
	}
}

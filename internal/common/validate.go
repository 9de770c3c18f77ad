package common

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validate tags and converts failures to a 422
// AppError keyed by field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, ve := range verrs {
			details[ve.Field()] = ve.Tag()
		}
		return ErrValidation("validation failed", details)
	}
	return err
}

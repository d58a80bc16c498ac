package utils

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/labpool/labpool/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterCustomValidations(validate)
}

// RegisterCustomValidations installs JSON field naming and the project's
// custom tags on v. The router also calls it on gin's binding engine.
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("decimal2", validateDecimal2)
}

// RegisterBindingValidations applies RegisterCustomValidations to gin's
// request binding engine.
func RegisterBindingValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidations(v)
	}
}

// validateDecimal2 accepts floats carrying at most two fractional digits.
func validateDecimal2(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
		return false
	}
	v := f.Float() * 100
	return math.Abs(v-math.Round(v)) < 1e-6
}

// ValidateStruct validates s and folds all field errors into one
// validation AppError.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError("Validation failed", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, getFieldErrorMessage(fe))
	}

	return errors.NewValidationError("Validation failed", messages...)
}

// BindingError converts a gin binding error into a validation AppError.
func BindingError(err error) error {
	if ve, ok := err.(validator.ValidationErrors); ok {
		messages := make([]string, 0, len(ve))
		for _, fe := range ve {
			messages = append(messages, getFieldErrorMessage(fe))
		}
		return errors.NewValidationError("Validation failed", messages...)
	}
	return errors.NewValidationError("Invalid request body", err.Error())
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "decimal2":
		return fmt.Sprintf("%s must have at most 2 decimal places", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

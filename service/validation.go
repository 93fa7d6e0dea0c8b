package service

import (
	"concert-purchase/common/errs"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"strconv"
	"strings"
)

// NewValidator reports fields by their json names and knows the mmyy card
// expiry tag.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) != 4 {
			return false
		}
		month, err := strconv.Atoi(value[:2])
		if err != nil {
			return false
		}
		_, err = strconv.Atoi(value[2:])
		return err == nil && month >= 1 && month <= 12
	})
	if err != nil {
		panic(fmt.Errorf("register mmyy validation: %w", err))
	}

	return validate
}

func toValidationError(err error) *errs.ValidationError {
	out := &errs.ValidationError{}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("", err.Error())
		return out
	}

	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out.Add(field, validationMessage(fe))
	}

	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", fe.Field(), fe.Param())
	case "mmyy":
		return fmt.Sprintf("%s must be a valid MMYY date", fe.Field())
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}

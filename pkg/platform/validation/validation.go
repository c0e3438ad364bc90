// Package validation wraps go-playground/validator with the tags and error
// translation the request DTOs and the response validator share.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	dErrors "civicdesk/pkg/domain-errors"
)

// PhonePattern accepts an optional leading "+" and "1" followed by 9 to 15 digits.
var PhonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// MoneyPattern accepts a non-negative amount with up to 13 integer and 2
// fractional digits, matching NUMERIC(15, 2).
var MoneyPattern = regexp.MustCompile(`^\d{1,13}(\.\d{1,2})?$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validate returns the shared validator, configured on first use.
func Validate() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return PhonePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			return MoneyPattern.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// IsEmail reports whether s is a well-formed email address.
func IsEmail(s string) bool {
	return Validate().Var(s, "email") == nil
}

// IsPhone reports whether s matches PhonePattern.
func IsPhone(s string) bool {
	return PhonePattern.MatchString(s)
}

// Struct validates v by its `validate` tags and returns a field-keyed domain
// error keyed by json names.
func Struct(v any) error {
	err := Validate().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request")
	}
	fields := dErrors.FieldErrors{}
	for _, fe := range verrs {
		code, msg := translate(fe)
		fields.Add(fieldPath(fe), code, msg)
	}
	return dErrors.NewFieldErrors("request validation failed", fields)
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func translate(fe validator.FieldError) (dErrors.Code, string) {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return dErrors.CodeRequired, "this field is required"
	case "oneof":
		return dErrors.CodeInvalidChoice, fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return dErrors.CodeInvalidFormat, "enter a valid email address"
	case "phone":
		return dErrors.CodeInvalidFormat, "phone number must be 9 to 15 digits, optionally prefixed with +"
	case "money":
		return dErrors.CodeInvalidFormat, "must be an amount with at most two decimal places"
	case "url", "http_url":
		return dErrors.CodeInvalidFormat, "enter a valid URL"
	case "datetime":
		return dErrors.CodeInvalidFormat, fmt.Sprintf("must match date layout %s", fe.Param())
	case "max":
		return dErrors.CodeValidation, fmt.Sprintf("must be at most %s", fe.Param())
	case "min", "gte":
		return dErrors.CodeValidation, fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return dErrors.CodeValidation, fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

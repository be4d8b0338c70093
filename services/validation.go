package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validator exposes the shared validator instance (used by echo's binder)
func Validator() *validator.Validate {
	return validate
}

// FieldError reports the first field that failed validation. Field uses the
// stored record key (Name, Initials, ...), Tag the failed rule.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	if e.Tag == "required" {
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
	return fmt.Sprintf("invalid value for field %s (%s)", e.Field, e.Tag)
}

// Missing reports whether the field was left blank
func (e *FieldError) Missing() bool {
	return e.Tag == "required"
}

// ValidateStruct runs struct validation and converts the first failure into a
// FieldError. Failures come back in struct field order.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field(), Tag: verrs[0].Tag()}
	}
	return err
}

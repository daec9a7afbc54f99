package common

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	})
	return v
}

// IsValidName reports whether name consists only of letters and spaces.
func IsValidName(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// NormalizeName trims the name and collapses interior runs of spaces, so the
// name survives the space-separated account file format unchanged. Callers
// check IsValidName first: other whitespace would be folded into spaces here.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Validate checks payload against its validate tags. Failures wrap ErrInvalidInput.
func Validate(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, validationErrors.Error())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

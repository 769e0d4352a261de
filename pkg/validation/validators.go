package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("single_line", SingleLine)
	_ = v.RegisterValidation("not_blank", NotBlank)
}

// SingleLine rejects CR/LF. Names end up in mail headers (Subject),
// where a line break would start a new header.
func SingleLine(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), "\r\n")
}

// NotBlank rejects values made only of whitespace; "required" alone accepts "   "
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

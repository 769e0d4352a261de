package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":    "Name",
	"Email":   "Email",
	"Message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Malformed JSON or wrong types; don't echo decoder internals
		return []string{"Request body must be a JSON object with string fields name, email and message"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: is required", label)
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", label, e.Param())
	case "min":
		return fmt.Sprintf("%s: must be at least %s characters", label, e.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", label)
	case "single_line":
		return fmt.Sprintf("%s: must not contain line breaks", label)
	default:
		return fmt.Sprintf("%s: is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}

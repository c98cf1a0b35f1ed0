package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":          "Name",
	"Email":         "Email",
	"Phone":         "Phone",
	"Company":       "Company",
	"Role":          "Role",
	"Message":       "Message",
	"Template":      "Template",
	"MonthlyClaims": "Monthly claims",
	"PreferredTime": "Preferred time",
	"Referrer":      "Referrer",
	"PageURL":       "Page URL",
	"Timestamp":     "Timestamp",
}

// LengthRules holds fields whose messages name both bounds
var LengthRules = map[string][2]int{
	"Name":    {3, 100},
	"Message": {5, 5000},
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid request"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min", "max":
		if bounds, ok := LengthRules[fieldName]; ok {
			return fmt.Sprintf("%s must be between %d and %d characters", label, bounds[0], bounds[1])
		}
		if e.Tag() == "min" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s characters", label, param)

	case "loose_email", "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}

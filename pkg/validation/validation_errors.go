package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels the form shows
var FieldLabels = map[string]string{
	"Name":            "Name",
	"PrimaryRole":     "Primary role",
	"ExperienceYears": "Experience",
	"TargetLevel":     "Target level",
	"Location":        "Location",
	"TechStack":       "Tech stack",
	"Bio":             "Bio",
}

// FormatValidationErrors converts validator.ValidationErrors to the
// field-level messages the setup form displays next to each input.
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
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
	case "required":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: at least one entry is required", label)
		}
		return fmt.Sprintf("%s: required", label)

	case "min":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: at least %s entry is required", label, e.Param())
		}
		return fmt.Sprintf("%s: must be at least %s characters", label, e.Param())

	case "max":
		return fmt.Sprintf("%s: must be less than %s characters", label, e.Param())

	case "gte":
		if e.Param() == "0" {
			return fmt.Sprintf("%s: cannot be negative", label)
		}
		return fmt.Sprintf("%s: must be at least %s", label, e.Param())

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Split(e.Param(), " "), ", "))

	default:
		return fmt.Sprintf("%s: invalid value (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	// Slice elements report as "TechStack[0]"
	if idx := strings.IndexByte(fieldName, '['); idx > 0 {
		fieldName = fieldName[:idx]
	}
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}

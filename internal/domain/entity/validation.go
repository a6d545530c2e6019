package entity

import "strings"

// ValidateRequired rejects empty and whitespace-only values.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidatePositiveID rejects identifiers that the store could never have assigned.
func ValidatePositiveID(field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: field, Message: "must be positive"}
	}
	return nil
}

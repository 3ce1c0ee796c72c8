// Package validation checks request payload shapes and produces field-level
// error lists. Messages are part of the API contract and are asserted by
// client tests, so they are spelled out here rather than generated.
package validation

import (
	"strings"

	"github.com/badoux/checkmail"
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func required(value, field, message string, errs []FieldError) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: message})
	}
	return errs
}

func email(value string, errs []FieldError) []FieldError {
	if checkmail.ValidateFormat(value) != nil {
		return append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	return errs
}

func password(value string, errs []FieldError) []FieldError {
	if len(value) < 6 {
		return append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

func role(value string, errs []FieldError) []FieldError {
	if value != "USER" && value != "ADMIN" {
		return append(errs, FieldError{Field: "role", Message: "Role must be USER or ADMIN"})
	}
	return errs
}

// Package validation checks request payloads before any storage access.
package validation

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ItemCreate mirrors the fields needed for create validation.
type ItemCreate struct {
	Name        string
	Description *string
	Price       *float64
}

// ItemUpdate mirrors the fields needed for update validation. All fields
// are optional; present fields must satisfy the same ranges as on create.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
}

// ValidateItemCreate validates a create item request. An empty result
// means valid.
func ValidateItemCreate(req ItemCreate) []FieldError {
	var errs []FieldError

	if req.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(req.Name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if req.Description != nil && len(*req.Description) > 1000 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}

	if req.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "price is required"})
	} else if *req.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price must be non-negative"})
	}

	return errs
}

// ValidateItemUpdate validates a partial update request.
func ValidateItemUpdate(req ItemUpdate) []FieldError {
	var errs []FieldError

	if req.Name != nil {
		if *req.Name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name must not be empty"})
		} else if len(*req.Name) > 255 {
			errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
		}
	}

	if req.Description != nil && len(*req.Description) > 1000 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}

	if req.Price != nil && *req.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price must be non-negative"})
	}

	return errs
}

// Describe flattens field errors into one human-readable message.
func Describe(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

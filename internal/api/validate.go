// ABOUTME: Client-side validation applied before any network call
// ABOUTME: Mirrors the backend's constraints so bad drafts fail fast

package api

import (
	"regexp"
	"strconv"
	"strings"
)

// Category names are restricted to letters and spaces
var categoryNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*$`)

// ValidateCategoryDraft rejects drafts the backend would refuse
func ValidateCategoryDraft(draft CategoryDraft) error {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return validationError("category name is required")
	}
	if !categoryNamePattern.MatchString(name) {
		return validationError("category name may contain only letters and spaces")
	}
	return nil
}

// ValidateProductDraft rejects drafts the backend would refuse
func ValidateProductDraft(draft ProductDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return validationError("product name is required")
	}
	if draft.Price <= 0 {
		return validationError("price must be a positive number")
	}
	if draft.CategoryID <= 0 {
		return validationError("category is required")
	}
	return nil
}

// ParsePrice converts user input into a positive price
func ParsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, validationError("price must be a number")
	}
	if price <= 0 {
		return 0, validationError("price must be a positive number")
	}
	return price, nil
}

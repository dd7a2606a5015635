package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 11
}

func ValidateCreateFunnelInput(input CreateFunnelInput) []ValidationError {
	var errs []ValidationError

	if isBlank(input.Name) {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if len(input.Stages) == 0 {
		errs = append(errs, ValidationError{"stages", "at least one stage is required"})
	}
	for i, s := range input.Stages {
		if isBlank(s) {
			errs = append(errs, ValidationError{"stages", "stage name at position " + strconv.Itoa(i) + " is blank"})
		}
	}

	return errs
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if isBlank(input.Name) {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if isBlank(input.ProductID) {
		errs = append(errs, ValidationError{"productId", "is required"})
	}
	if isBlank(input.FunnelID) {
		errs = append(errs, ValidationError{"funnelId", "is required"})
	}
	if !isBlank(input.Phone) && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}

	return errs
}

func ValidateCreateProductInput(input CreateProductInput) []ValidationError {
	var errs []ValidationError

	if isBlank(input.Name) {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if input.Price < 0 {
		errs = append(errs, ValidationError{"price", "must not be negative"})
	}

	return errs
}

// firstError condensa a lista em um único erro retornável; nil quando válido.
func firstError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return ValidationError{"input", strings.Join(parts, "; ")}
}

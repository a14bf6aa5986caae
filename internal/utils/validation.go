package utils

import (
	"errors"
	"regexp"
	"strings"
)

const (
	maxNameLength = 100
	minYear       = 1000
	maxYear       = 9999
)

var (
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/`)
)

// ValidateName checks a country or metric name taken from a request.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > maxNameLength {
		return errors.New("name too long (max 100 characters)")
	}
	if dangerousPattern.MatchString(name) {
		return errors.New("name contains invalid characters")
	}
	return nil
}

// ValidateYear checks that a year is a plausible four digit year.
func ValidateYear(year int) error {
	if year < minYear || year > maxYear {
		return errors.New("year must be between 1000 and 9999")
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

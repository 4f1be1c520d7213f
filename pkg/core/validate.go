package core

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxTitleLength bounds note titles at creation time.
const DefaultMaxTitleLength = 50

// ValidateDraft checks a create-note form and returns the trimmed title and body.
// Rules run in order: title required, title length, body required.
// A max of zero or less means DefaultMaxTitleLength.
func ValidateDraft(title, body string, max int) (string, string, error) {
	if max <= 0 {
		max = DefaultMaxTitleLength
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return "", "", &ValidationError{Field: "title", Message: "title required"}
	}
	if utf8.RuneCountInString(title) > max {
		return "", "", &ValidationError{Field: "title", Message: "title too long"}
	}
	if body == "" {
		return "", "", &ValidationError{Field: "body", Message: "body required"}
	}
	return title, body, nil
}

// TitleRemaining returns how many characters are left before max.
// It is negative once the title is too long.
func TitleRemaining(title string, max int) int {
	if max <= 0 {
		max = DefaultMaxTitleLength
	}
	return max - utf8.RuneCountInString(title)
}

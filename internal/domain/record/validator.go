package record

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLen       = 3
	MaxTitleLen       = 100
	MinBodyLen        = 10
	MaxJournalBodyLen = 5000
	MaxProjectBodyLen = 2000
)

// Bounds holds the field length limits for one collection.
type Bounds struct {
	MinTitle int
	MaxTitle int
	MinBody  int
	MaxBody  int
}

// JournalBounds returns the limits for journal entries.
func JournalBounds() Bounds {
	return Bounds{
		MinTitle: MinTitleLen,
		MaxTitle: MaxTitleLen,
		MinBody:  MinBodyLen,
		MaxBody:  MaxJournalBodyLen,
	}
}

// ProjectBounds returns the limits for project records.
func ProjectBounds() Bounds {
	return Bounds{
		MinTitle: MinTitleLen,
		MaxTitle: MaxTitleLen,
		MinBody:  MinBodyLen,
		MaxBody:  MaxProjectBodyLen,
	}
}

// Validator checks user input against a collection's bounds.
type Validator struct {
	bounds Bounds
}

func NewValidator(bounds Bounds) *Validator {
	return &Validator{bounds: bounds}
}

// ValidateFields trims both fields and checks them against the bounds.
// The trimmed values are returned so callers persist exactly what passed.
// Failures wrap ErrValidation and never reach the store.
func (v *Validator) ValidateFields(title, body string) (string, string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return "", "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if n := utf8.RuneCountInString(title); n < v.bounds.MinTitle || n > v.bounds.MaxTitle {
		return "", "", fmt.Errorf("%w: title must be %d-%d characters, got %d",
			ErrValidation, v.bounds.MinTitle, v.bounds.MaxTitle, n)
	}

	if body == "" {
		return "", "", fmt.Errorf("%w: body is required", ErrValidation)
	}
	if n := utf8.RuneCountInString(body); n < v.bounds.MinBody || n > v.bounds.MaxBody {
		return "", "", fmt.Errorf("%w: body must be %d-%d characters, got %d",
			ErrValidation, v.bounds.MinBody, v.bounds.MaxBody, n)
	}

	return title, body, nil
}

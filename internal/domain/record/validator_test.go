package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateFields_TrimsInput(t *testing.T) {
	v := NewValidator(JournalBounds())

	title, body, err := v.ValidateFields("  Day One  ", "\tfirst entry of the journal\n")

	assert.NoError(t, err)
	assert.Equal(t, "Day One", title)
	assert.Equal(t, "first entry of the journal", body)
}

func TestValidator_ValidateFields_EmptyTitle(t *testing.T) {
	v := NewValidator(JournalBounds())

	_, _, err := v.ValidateFields("   ", "a perfectly fine body")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidator_ValidateFields_EmptyBody(t *testing.T) {
	v := NewValidator(JournalBounds())

	_, _, err := v.ValidateFields("Day One", "   ")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidator_ValidateFields_TitleBounds(t *testing.T) {
	v := NewValidator(JournalBounds())
	body := "a perfectly fine body"

	_, _, err := v.ValidateFields("ab", body)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = v.ValidateFields("abc", body)
	assert.NoError(t, err)

	_, _, err = v.ValidateFields(strings.Repeat("x", MaxTitleLen), body)
	assert.NoError(t, err)

	_, _, err = v.ValidateFields(strings.Repeat("x", MaxTitleLen+1), body)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidator_ValidateFields_BodyBounds(t *testing.T) {
	v := NewValidator(JournalBounds())

	_, _, err := v.ValidateFields("Day One", "too short")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = v.ValidateFields("Day One", strings.Repeat("x", MaxJournalBodyLen))
	assert.NoError(t, err)

	_, _, err = v.ValidateFields("Day One", strings.Repeat("x", MaxJournalBodyLen+1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidator_ValidateFields_ProjectBodyCap(t *testing.T) {
	v := NewValidator(ProjectBounds())

	_, _, err := v.ValidateFields("Site", strings.Repeat("x", MaxProjectBodyLen))
	assert.NoError(t, err)

	_, _, err = v.ValidateFields("Site", strings.Repeat("x", MaxProjectBodyLen+1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidator_ValidateFields_CountsRunesNotBytes(t *testing.T) {
	v := NewValidator(JournalBounds())

	// Three runes, nine bytes. Valid by rune count.
	title, _, err := v.ValidateFields("день", "запись о прошедшем дне")

	assert.NoError(t, err)
	assert.Equal(t, "день", title)
}

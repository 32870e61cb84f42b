package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"full_name" validate:"required,valid_name,no_emoji"`
	Phone  *string  `json:"phone" validate:"omitnil,valid_phone"`
	Plan   string   `json:"plan" validate:"omitempty,oneof=free starter"`
	Skills []string `json:"skills" validate:"omitempty,dive,min=1"`
	Title  string   `json:"title" validate:"no_emoji"`
}

func strPtr(s string) *string { return &s }

func TestValidators(t *testing.T) {
	v := New()

	t.Run("valid payload passes", func(t *testing.T) {
		err := v.Struct(sample{Name: "Ada O'Neil", Phone: strPtr("+1 (555) 123-4567"), Plan: "free", Skills: []string{"go"}})
		assert.NoError(t, err)
	})

	t.Run("digits in name fail", func(t *testing.T) {
		err := v.Struct(sample{Name: "R2D2"})
		require.Error(t, err)
		assert.Equal(t, []string{"Full name: only letters, spaces and common punctuation (. ' - /) are allowed"}, FormatValidationErrors(err))
	})

	t.Run("emoji fails", func(t *testing.T) {
		err := v.Struct(sample{Name: "Ada", Title: "Lead 🚀"})
		require.Error(t, err)
		assert.Equal(t, []string{"Title: must not contain emoji or special symbols"}, FormatValidationErrors(err))
	})

	t.Run("bad phone", func(t *testing.T) {
		err := v.Struct(sample{Name: "Ada", Phone: strPtr("12ab")})
		require.Error(t, err)
		assert.Equal(t, []string{"Phone number: invalid phone number (7-15 digits, optional +)"}, FormatValidationErrors(err))
	})

	t.Run("oneof lists options", func(t *testing.T) {
		err := v.Struct(sample{Name: "Ada", Plan: "gold"})
		require.Error(t, err)
		assert.Equal(t, []string{"Plan: must be one of: free, starter"}, FormatValidationErrors(err))
	})

	t.Run("slice element label", func(t *testing.T) {
		err := v.Struct(sample{Name: "Ada", Skills: []string{""}})
		require.Error(t, err)
		assert.Equal(t, []string{"Skills[0]: must be at least 1 characters"}, FormatValidationErrors(err))
	})

	t.Run("required", func(t *testing.T) {
		err := v.Struct(sample{})
		require.Error(t, err)
		assert.Equal(t, []string{"Full name: is required"}, FormatValidationErrors(err))
	})
}

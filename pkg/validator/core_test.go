package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("joins field messages", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "name", Message: "too long"})
		assert.Equal(t, "validation failed: email: is required; name: too long", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "email", Message: "is required"},
		{Field: "email", Message: "must be a valid email address"},
		{Field: "party_size", Message: "must be at least 1"},
	}

	assert.Empty(t, errs.Get("phone"))
	assert.Equal(t, []string{"is required", "must be a valid email address"}, errs.Get("email"))
	assert.Equal(t, []string{"email", "party_size"}, errs.Fields())
	assert.Equal(t, map[string][]string{
		"email":      {"is required", "must be a valid email address"},
		"party_size": {"must be at least 1"},
	}, errs.Map())
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "Jane Doe"),
			validator.ValidEmail("email", "jane@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", " "),
			validator.ValidEmail("email", "nope"),
			validator.MinNum("party_size", 0, 1),
		)
		require.Error(t, err)
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 3)
		assert.Equal(t, []string{"name", "email", "party_size"}, verrs.Fields())
	})

	t.Run("wrapped errors are still detected", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.Required("name", ""))
		wrapped := fmt.Errorf("submit: %w", err)

		assert.True(t, validator.IsValidationError(wrapped))
		assert.True(t, errors.Is(wrapped, validator.ErrValidationFailed))
		assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)
	})

	t.Run("non validation errors", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestWhen(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.When(false, validator.ValidPhone("phone", "abc"))))
	assert.Error(t, validator.Apply(validator.When(true, validator.ValidPhone("phone", "abc"))))
	assert.NoError(t, validator.Apply(validator.When(true, validator.ValidPhone("phone", "555-123-4567"))))
}

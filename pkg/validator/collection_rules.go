package validator

import (
	"fmt"
	"slices"
	"strings"
)

// RequiredSlice validates that a multi-value field has at least one entry.
func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Check: func() bool {
			return len(value) > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "select at least one option",
			TranslationKey: "validation.required_choice",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// InList validates that value is one of allowed.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowed,
			},
		},
	}
}

// EachInList validates that every entry of values is one of allowed.
func EachInList(field string, values []string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if !slices.Contains(allowed, v) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("each value must be one of: %s", strings.Join(allowed, ", ")),
			TranslationKey: "validation.each_in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowed,
			},
		},
	}
}

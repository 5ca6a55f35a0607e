package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	// Digits with an optional leading plus after separators are removed.
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

// ValidEmail validates that a string is a single bare email address with a
// dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidPhone validates a phone number written with common separators, e.g.
// "(555) 123-4567", "555.123.4567" or "+1 555 123 4567".
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return phoneRegex.MatchString(phoneSeparators.Replace(strings.TrimSpace(value)))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid phone number",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

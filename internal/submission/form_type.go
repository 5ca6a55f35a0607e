package submission

import "fmt"

// FormType identifies a form variant. It doubles as the store category.
type FormType string

// Known form types.
const (
	FormContact     FormType = "contact"
	FormRealmSignup FormType = "realm_signup"
	FormTableGroup  FormType = "table_group_signup"
	FormOverflow    FormType = "overflow_signup"
)

// FormTypes lists every known form type in display order.
func FormTypes() []FormType {
	return []FormType{FormContact, FormRealmSignup, FormTableGroup, FormOverflow}
}

// ParseFormType maps a raw string onto a known FormType.
func ParseFormType(s string) (FormType, error) {
	switch ft := FormType(s); ft {
	case FormContact, FormRealmSignup, FormTableGroup, FormOverflow:
		return ft, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormType, s)
	}
}

// String returns the wire name, e.g. "table_group_signup".
func (t FormType) String() string { return string(t) }

// Category is the name of the collection submissions of this type go to.
func (t FormType) Category() string { return string(t) }

package submission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/validator"
)

func TestParseFormType(t *testing.T) {
	t.Parallel()

	for _, ft := range submission.FormTypes() {
		got, err := submission.ParseFormType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, got)
		assert.Equal(t, string(ft), got.Category())
	}

	_, err := submission.ParseFormType("newsletter")
	assert.ErrorIs(t, err, submission.ErrUnknownFormType)
}

func TestForms_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		form          submission.Form
		invalidFields []string
	}{
		{
			name: "valid contact",
			form: submission.ContactForm{Name: "Jane Doe", Email: "jane@example.com", Subject: "prayer", Message: "Please pray for my family"},
		},
		{
			name:          "contact missing fields",
			form:          submission.ContactForm{Email: "not-an-email"},
			invalidFields: []string{"name", "email", "subject", "message"},
		},
		{
			name:          "contact bad optional phone",
			form:          submission.ContactForm{Name: "Jane", Email: "jane@example.com", Phone: "12", Subject: "s", Message: "m"},
			invalidFields: []string{"phone"},
		},
		{
			name: "valid realm signup",
			form: submission.RealmSignupForm{Name: "Jane", Email: "jane@example.com", Phone: "(555) 123-4567", MaritalStatus: "married"},
		},
		{
			name:          "realm signup requires phone and known marital status",
			form:          submission.RealmSignupForm{Name: "Jane", Email: "jane@example.com", MaritalStatus: "complicated"},
			invalidFields: []string{"phone", "maritalStatus"},
		},
		{
			name: "valid table group",
			form: submission.TableGroupForm{Name: "Jane", Email: "jane@example.com", PartySize: 4, Availability: []string{"Monday", "Friday"}},
		},
		{
			name:          "table group party size zero",
			form:          submission.TableGroupForm{Name: "Jane", Email: "jane@example.com", PartySize: 0, Availability: []string{"Monday"}},
			invalidFields: []string{"partySize"},
		},
		{
			name:          "table group empty and unknown availability",
			form:          submission.TableGroupForm{Name: "Jane", Email: "jane@example.com", PartySize: 21},
			invalidFields: []string{"partySize", "availability"},
		},
		{
			name:          "table group unknown day",
			form:          submission.TableGroupForm{Name: "Jane", Email: "jane@example.com", PartySize: 2, Availability: []string{"Someday"}},
			invalidFields: []string{"availability"},
		},
		{
			name: "valid overflow",
			form: submission.OverflowForm{Name: "Jane", Email: "jane@example.com", PartySize: 3, ServiceTime: "9:00 AM"},
		},
		{
			name:          "overflow missing service time",
			form:          submission.OverflowForm{Name: "Jane", Email: "jane@example.com", PartySize: 3},
			invalidFields: []string{"serviceTime"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.form.Validate()
			if len(tt.invalidFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, submission.ErrValidation)
			verrs := validator.ExtractValidationErrors(err)
			require.NotNil(t, verrs)
			assert.ElementsMatch(t, tt.invalidFields, verrs.Fields())
		})
	}
}

func TestForms_SubjectAndFields(t *testing.T) {
	t.Parallel()

	contact := submission.ContactForm{Name: "Jane Doe", Email: "jane@example.com", Subject: "prayer", Message: "Please pray for my family"}
	assert.Equal(t, "Contact Form: prayer", contact.MailSubject())
	assert.Equal(t, []submission.Field{
		{Label: "Name", Value: "Jane Doe"},
		{Label: "Email", Value: "jane@example.com"},
		{Label: "Phone", Value: submission.NotProvided},
		{Label: "Subject", Value: "prayer"},
		{Label: "Message", Value: "Please pray for my family"},
	}, contact.Fields())

	realm := submission.RealmSignupForm{Name: "Jane", Email: "jane@example.com", Phone: "5551234567"}
	assert.Equal(t, "Realm Signup: Jane", realm.MailSubject())
	assert.Equal(t, submission.NotProvided, realm.Fields()[4].Value)

	group := submission.TableGroupForm{Name: "Sam", Email: "sam@example.com", PartySize: 2, Availability: []string{"Monday", "Tuesday"}}
	assert.Equal(t, "Table Group Signup: Sam", group.MailSubject())
	fields := group.Fields()
	assert.Equal(t, "2", fields[3].Value)
	assert.Equal(t, "Monday, Tuesday", fields[4].Value)
	assert.Equal(t, submission.NotProvided, fields[5].Value)
	assert.Equal(t, 2, group.Payload()["partySize"])

	overflow := submission.OverflowForm{Name: "Ann", Email: "ann@example.com", PartySize: 1, ServiceTime: "11:00"}
	assert.Equal(t, "Overflow Signup: Ann", overflow.MailSubject())
	assert.Equal(t, "11:00", overflow.Payload()["serviceTime"])
}

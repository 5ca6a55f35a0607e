package submission

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cornerstone-church/site/pkg/validator"
)

// NotProvided replaces a blank optional value in a relayed message.
const NotProvided = "Not provided"

// Field is one labelled line of a relayed message.
type Field struct {
	Label string
	Value string
}

// Form is implemented by every form variant. Adding a variant means adding a
// FormType constant and a type that satisfies this interface.
type Form interface {
	// Type names the variant and its store category.
	Type() FormType
	// Validate returns an error wrapping ErrValidation with field details.
	Validate() error
	// MailSubject is the subject line of the relayed message.
	MailSubject() string
	// Fields returns the message lines in their fixed order.
	Fields() []Field
	// Payload returns the submitted values keyed by their wire names.
	Payload() map[string]any
}

var (
	maritalStatuses = []string{"single", "married", "widowed", "divorced", "other"}
	weekdays        = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

const (
	maxNameLen    = 100
	maxShortLen   = 200
	maxMessageLen = 5000
	maxPartySize  = 20
)

func optional(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotProvided
	}
	return v
}

func validate(rules ...validator.Rule) error {
	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrValidation, err)
	}
	return nil
}

func contactRules(name, email, phone string, phoneRequired bool) []validator.Rule {
	return []validator.Rule{
		validator.Required("name", name),
		validator.MaxLen("name", name, maxNameLen),
		validator.Required("email", email),
		validator.When(email != "", validator.ValidEmail("email", email)),
		validator.When(phoneRequired, validator.Required("phone", phone)),
		validator.When(strings.TrimSpace(phone) != "", validator.ValidPhone("phone", phone)),
	}
}

func partySizeRules(size int) []validator.Rule {
	return []validator.Rule{
		validator.MinNum("partySize", size, 1),
		validator.MaxNum("partySize", size, maxPartySize),
	}
}

// ContactForm is the general contact form.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Type implements Form.
func (f ContactForm) Type() FormType { return FormContact }

// Validate requires name, email, subject and message. Phone is optional but
// must be well formed when given.
func (f ContactForm) Validate() error {
	rules := contactRules(f.Name, f.Email, f.Phone, false)
	rules = append(rules,
		validator.Required("subject", f.Subject),
		validator.MaxLen("subject", f.Subject, maxShortLen),
		validator.Required("message", f.Message),
		validator.MaxLen("message", f.Message, maxMessageLen),
	)
	return validate(rules...)
}

// MailSubject is "Contact Form: " followed by the subject the sender typed.
func (f ContactForm) MailSubject() string { return "Contact Form: " + f.Subject }

// Fields implements Form. A blank phone reads NotProvided.
func (f ContactForm) Fields() []Field {
	return []Field{
		{"Name", f.Name},
		{"Email", f.Email},
		{"Phone", optional(f.Phone)},
		{"Subject", f.Subject},
		{"Message", f.Message},
	}
}

// Payload implements Form.
func (f ContactForm) Payload() map[string]any {
	return map[string]any{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"subject": f.Subject,
		"message": f.Message,
	}
}

// RealmSignupForm signs someone up for a realm (small group). Phone is
// required here, unlike the other forms.
type RealmSignupForm struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	MaritalStatus string
	Realm         string
}

// Type implements Form.
func (f RealmSignupForm) Type() FormType { return FormRealmSignup }

// Validate requires name, email and phone. A marital status, when given,
// must be one of the listed values.
func (f RealmSignupForm) Validate() error {
	rules := contactRules(f.Name, f.Email, f.Phone, true)
	rules = append(rules,
		validator.MaxLen("address", f.Address, maxShortLen),
		validator.When(f.MaritalStatus != "", validator.InList("maritalStatus", f.MaritalStatus, maritalStatuses)),
		validator.MaxLen("realm", f.Realm, maxNameLen),
	)
	return validate(rules...)
}

// MailSubject implements Form.
func (f RealmSignupForm) MailSubject() string { return "Realm Signup: " + f.Name }

// Fields implements Form.
func (f RealmSignupForm) Fields() []Field {
	return []Field{
		{"Name", f.Name},
		{"Email", f.Email},
		{"Phone", f.Phone},
		{"Address", optional(f.Address)},
		{"Marital Status", optional(f.MaritalStatus)},
		{"Realm", optional(f.Realm)},
	}
}

// Payload implements Form.
func (f RealmSignupForm) Payload() map[string]any {
	return map[string]any{
		"name":          f.Name,
		"email":         f.Email,
		"phone":         f.Phone,
		"address":       f.Address,
		"maritalStatus": f.MaritalStatus,
		"realm":         f.Realm,
	}
}

// TableGroupForm signs a party up for a table group on one or more weekdays.
type TableGroupForm struct {
	Name         string
	Email        string
	Phone        string
	PartySize    int
	Availability []string
	Notes        string
}

// Type implements Form.
func (f TableGroupForm) Type() FormType { return FormTableGroup }

// Validate requires at least one weekday and a party size from 1 to 20.
func (f TableGroupForm) Validate() error {
	rules := contactRules(f.Name, f.Email, f.Phone, false)
	rules = append(rules, partySizeRules(f.PartySize)...)
	rules = append(rules,
		validator.RequiredSlice("availability", f.Availability),
		validator.EachInList("availability", f.Availability, weekdays),
		validator.MaxLen("notes", f.Notes, maxMessageLen),
	)
	return validate(rules...)
}

// MailSubject implements Form.
func (f TableGroupForm) MailSubject() string { return "Table Group Signup: " + f.Name }

// Fields lists availability as one comma separated line.
func (f TableGroupForm) Fields() []Field {
	availability := strings.Join(f.Availability, ", ")
	return []Field{
		{"Name", f.Name},
		{"Email", f.Email},
		{"Phone", optional(f.Phone)},
		{"Party Size", strconv.Itoa(f.PartySize)},
		{"Availability", optional(availability)},
		{"Notes", optional(f.Notes)},
	}
}

// Payload copies Availability so the caller's slice is not shared.
func (f TableGroupForm) Payload() map[string]any {
	return map[string]any{
		"name":         f.Name,
		"email":        f.Email,
		"phone":        f.Phone,
		"partySize":    f.PartySize,
		"availability": append([]string(nil), f.Availability...),
		"notes":        f.Notes,
	}
}

// OverflowForm reserves overflow seating for a service.
type OverflowForm struct {
	Name        string
	Email       string
	Phone       string
	PartySize   int
	ServiceTime string
	Notes       string
}

// Type implements Form.
func (f OverflowForm) Type() FormType { return FormOverflow }

// Validate requires a service time and a party size from 1 to 20.
func (f OverflowForm) Validate() error {
	rules := contactRules(f.Name, f.Email, f.Phone, false)
	rules = append(rules, partySizeRules(f.PartySize)...)
	rules = append(rules,
		validator.Required("serviceTime", f.ServiceTime),
		validator.MaxLen("serviceTime", f.ServiceTime, maxNameLen),
		validator.MaxLen("notes", f.Notes, maxMessageLen),
	)
	return validate(rules...)
}

// MailSubject implements Form.
func (f OverflowForm) MailSubject() string { return "Overflow Signup: " + f.Name }

// Fields implements Form.
func (f OverflowForm) Fields() []Field {
	return []Field{
		{"Name", f.Name},
		{"Email", f.Email},
		{"Phone", optional(f.Phone)},
		{"Party Size", strconv.Itoa(f.PartySize)},
		{"Service Time", f.ServiceTime},
		{"Notes", optional(f.Notes)},
	}
}

// Payload implements Form.
func (f OverflowForm) Payload() map[string]any {
	return map[string]any{
		"name":        f.Name,
		"email":       f.Email,
		"phone":       f.Phone,
		"partySize":   f.PartySize,
		"serviceTime": f.ServiceTime,
		"notes":       f.Notes,
	}
}

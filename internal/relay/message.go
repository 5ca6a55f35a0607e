package relay

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cornerstone-church/site/internal/submission"
)

// Message is the relayed form of a submission.
type Message struct {
	To        string
	Subject   string
	Body      string
	FormType  submission.FormType
	Timestamp time.Time
	Lines     []submission.Field
	Fields    map[string]any
}

// Compose builds the message for form. The body lists the form's fields in
// their fixed order, one "Label: value" per line.
func Compose(form submission.Form, to string, now time.Time) Message {
	lines := form.Fields()

	var b strings.Builder
	for i, f := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		value := f.Value
		if strings.TrimSpace(value) == "" {
			value = submission.NotProvided
		}
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(value)
	}

	return Message{
		To:        to,
		Subject:   form.MailSubject(),
		Body:      b.String(),
		FormType:  form.Type(),
		Timestamp: now.UTC(),
		Lines:     lines,
		Fields:    form.Payload(),
	}
}

var titleCaser = cases.Title(language.English)

// Heading is a human label for the message's form type, e.g.
// "Table Group Signup".
func (m Message) Heading() string {
	return titleCaser.String(strings.ReplaceAll(m.FormType.String(), "_", " "))
}

// envelope is the JSON document posted to the relay endpoint. Form fields are
// flattened next to the envelope keys; the envelope keys win on collision.
func (m Message) envelope() map[string]any {
	doc := make(map[string]any, len(m.Fields)+5)
	for k, v := range m.Fields {
		doc[k] = v
	}
	doc["to"] = m.To
	doc["subject"] = m.Subject
	doc["message"] = m.Body
	doc["formType"] = m.FormType.String()
	doc["timestamp"] = m.Timestamp.Format(time.RFC3339)
	return doc
}

package relay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cornerstone-church/site/internal/relay"
	"github.com/cornerstone-church/site/internal/submission"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestCompose(t *testing.T) {
	t.Parallel()

	form := submission.ContactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "prayer",
		Message: "Please pray for my family",
	}

	msg := relay.Compose(form, "office@example.com", fixedNow)

	assert.Equal(t, "office@example.com", msg.To)
	assert.Equal(t, "Contact Form: prayer", msg.Subject)
	assert.Equal(t, submission.FormContact, msg.FormType)
	assert.Equal(t, fixedNow, msg.Timestamp)
	assert.Equal(t, "Name: Jane Doe\nEmail: jane@example.com\nPhone: Not provided\nSubject: prayer\nMessage: Please pray for my family", msg.Body)
	assert.Equal(t, "jane@example.com", msg.Fields["email"])
	assert.Equal(t, "Contact", msg.Heading())
}

func TestCompose_Deterministic(t *testing.T) {
	t.Parallel()

	form := submission.TableGroupForm{Name: "Sam", Email: "sam@example.com", PartySize: 3, Availability: []string{"Sunday"}}
	a := relay.Compose(form, "office@example.com", fixedNow)
	b := relay.Compose(form, "office@example.com", fixedNow)

	assert.Equal(t, a.Body, b.Body)
	assert.Equal(t, "Table Group Signup: Sam", a.Subject)
	assert.Equal(t, "Table Group Signup", a.Heading())
	assert.Contains(t, a.Body, "Party Size: 3\nAvailability: Sunday\nNotes: Not provided")
}

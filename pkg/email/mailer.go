package email

import (
	"context"
	"errors"
	"strings"

	"github.com/cornerstone-church/site/pkg/validator"
)

// EmailSender delivers a single transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	BodyText string `json:"body_text,omitempty"`
	// ReplyTo overrides the configured support address, e.g. to let staff
	// answer the person who filled in a form.
	ReplyTo string `json:"reply_to,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// Validate checks that the recipient, subject and HTML body are present and
// that addresses are well formed.
func (p SendEmailParams) Validate() error {
	err := validator.Apply(
		validator.Required("SendTo", p.SendTo),
		validator.When(strings.TrimSpace(p.SendTo) != "", validator.ValidEmail("SendTo", p.SendTo)),
		validator.Required("Subject", p.Subject),
		validator.Required("BodyHTML", p.BodyHTML),
		validator.When(p.ReplyTo != "", validator.ValidEmail("ReplyTo", p.ReplyTo)),
	)
	if err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}

package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/email"
	"github.com/cornerstone-church/site/pkg/email/templates"
	"github.com/cornerstone-church/site/pkg/logger"
)

// MailerRelay delivers messages through an email.EmailSender.
type MailerRelay struct {
	sender email.EmailSender
	to     string
	now    func() time.Time
	log    *slog.Logger
}

// MailerOption configures a MailerRelay.
type MailerOption func(*MailerRelay)

// WithMailerClock sets the clock used for the message timestamp.
func WithMailerClock(now func() time.Time) MailerOption {
	return func(r *MailerRelay) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMailerLogger sets the logger. A nil logger keeps the discard default.
func WithMailerLogger(l *slog.Logger) MailerOption {
	return func(r *MailerRelay) {
		if l != nil {
			r.log = l
		}
	}
}

// NewMailerRelay sends every message to the to mailbox through sender. Both
// are required.
func NewMailerRelay(sender email.EmailSender, to string, opts ...MailerOption) (*MailerRelay, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: email sender is required", ErrInvalidConfig)
	}
	if to == "" {
		return nil, fmt.Errorf("%w: RELAY_TO is required", ErrInvalidConfig)
	}

	r := &MailerRelay{
		sender: sender,
		to:     to,
		now:    time.Now,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("relay.mailer"))
	return r, nil
}

// Relay renders the message and sends it once. The submitter's address, when
// present, becomes the reply-to.
func (r *MailerRelay) Relay(ctx context.Context, form submission.Form) error {
	msg := Compose(form, r.to, r.now())

	rows := make([]templates.Row, 0, len(msg.Lines))
	for _, l := range msg.Lines {
		rows = append(rows, templates.Row{Label: l.Label, Value: l.Value})
	}

	html, err := templates.Render(ctx, templates.Layout(msg.Heading(), templates.FieldTable(rows)))
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}

	replyTo, _ := msg.Fields["email"].(string)

	err = r.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   msg.To,
		Subject:  msg.Subject,
		BodyHTML: html,
		BodyText: msg.Body,
		ReplyTo:  replyTo,
		Tag:      msg.FormType.String(),
	})
	if err != nil {
		if errors.Is(err, email.ErrFailedToSendEmail) {
			return errors.Join(ErrRejected, err)
		}
		return errors.Join(ErrTransport, err)
	}

	r.log.DebugContext(ctx, "message sent", logger.FormType(msg.FormType.String()))
	return nil
}

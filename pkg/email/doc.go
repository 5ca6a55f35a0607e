// Package email sends transactional emails through a provider-agnostic
// EmailSender.
//
// Two senders are provided: the Postmark client for production and DevSender,
// which writes each message to disk as HTML plus JSON metadata so local runs
// never reach a real inbox.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "office@example.org",
//	    Subject:  "Contact Form: prayer",
//	    BodyHTML: html,
//	    ReplyTo:  "jane@example.com",
//	    Tag:      "contact",
//	})
//
// HTML bodies are built from templ components in the templates subpackage and
// rendered with templates.Render.
//
// Errors are sentinel values (ErrInvalidConfig, ErrInvalidParams,
// ErrFailedToSendEmail) joined with the underlying cause; test them with
// errors.Is.
package email

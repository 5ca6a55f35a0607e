// Package relay delivers validated form submissions to the church office.
//
// Compose turns a form into a Message with a deterministic subject and a body
// of "Label: value" lines. HTTPRelay posts that message to a transactional
// email endpoint; MailerRelay renders it as HTML and hands it to an
// email.EmailSender. Both make exactly one attempt per call.
package relay

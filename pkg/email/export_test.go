package email

import (
	"context"

	"github.com/mrz1836/postmark"
)

// PostmarkAPIFunc adapts a function to the Postmark client subset for tests.
type PostmarkAPIFunc func(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)

func (f PostmarkAPIFunc) SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	return f(ctx, email)
}

func NewPostmarkSenderWithAPI(api PostmarkAPIFunc, cfg Config) EmailSender {
	return &postmarkClient{client: api, config: cfg}
}

var SanitizeFilename = sanitizeFilename

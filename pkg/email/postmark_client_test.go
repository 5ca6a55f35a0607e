package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/pkg/email"
)

func validConfig() email.Config {
	return email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "website@example.org",
		SupportEmail:         "office@example.org",
	}
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *email.Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *email.Config) {}},
		{name: "support email optional", modify: func(c *email.Config) { c.SupportEmail = "" }},
		{name: "missing server token", modify: func(c *email.Config) { c.PostmarkServerToken = "" }, wantErr: "PostmarkServerToken is required"},
		{name: "missing account token", modify: func(c *email.Config) { c.PostmarkAccountToken = "" }, wantErr: "PostmarkAccountToken is required"},
		{name: "missing sender", modify: func(c *email.Config) { c.SenderEmail = "" }, wantErr: "SenderEmail is required"},
		{name: "invalid sender", modify: func(c *email.Config) { c.SenderEmail = "website" }, wantErr: "SenderEmail must be a valid email address"},
		{name: "invalid support", modify: func(c *email.Config) { c.SupportEmail = "office@" }, wantErr: "SupportEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(&cfg)

			client, err := email.NewPostmarkClient(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMustNewPostmarkClient_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		email.MustNewPostmarkClient(email.Config{})
	})
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	params := email.SendEmailParams{
		SendTo:   "office@example.org",
		Subject:  "Contact Form: prayer",
		BodyHTML: "<p>body</p>",
		BodyText: "body",
		Tag:      "contact",
	}

	t.Run("maps params to postmark email", func(t *testing.T) {
		t.Parallel()

		var got postmark.Email
		sender := email.NewPostmarkSenderWithAPI(func(_ context.Context, e postmark.Email) (postmark.EmailResponse, error) {
			got = e
			return postmark.EmailResponse{}, nil
		}, validConfig())

		require.NoError(t, sender.SendEmail(context.Background(), params))
		assert.Equal(t, "website@example.org", got.From)
		assert.Equal(t, "office@example.org", got.To)
		assert.Equal(t, "office@example.org", got.ReplyTo)
		assert.Equal(t, "Contact Form: prayer", got.Subject)
		assert.Equal(t, "<p>body</p>", got.HTMLBody)
		assert.Equal(t, "body", got.TextBody)
		assert.Equal(t, "contact", got.Tag)
	})

	t.Run("reply-to override", func(t *testing.T) {
		t.Parallel()

		var got postmark.Email
		sender := email.NewPostmarkSenderWithAPI(func(_ context.Context, e postmark.Email) (postmark.EmailResponse, error) {
			got = e
			return postmark.EmailResponse{}, nil
		}, validConfig())

		p := params
		p.ReplyTo = "jane@example.com"
		require.NoError(t, sender.SendEmail(context.Background(), p))
		assert.Equal(t, "jane@example.com", got.ReplyTo)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		sender := email.NewPostmarkSenderWithAPI(func(context.Context, postmark.Email) (postmark.EmailResponse, error) {
			return postmark.EmailResponse{}, errors.New("connection refused")
		}, validConfig())

		err := sender.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("api error code", func(t *testing.T) {
		t.Parallel()

		sender := email.NewPostmarkSenderWithAPI(func(context.Context, postmark.Email) (postmark.EmailResponse, error) {
			return postmark.EmailResponse{ErrorCode: 406, Message: "Inactive recipient"}, nil
		}, validConfig())

		err := sender.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "postmark error: 406 - Inactive recipient")
	})

	t.Run("invalid params never call the api", func(t *testing.T) {
		t.Parallel()

		called := false
		sender := email.NewPostmarkSenderWithAPI(func(context.Context, postmark.Email) (postmark.EmailResponse, error) {
			called = true
			return postmark.EmailResponse{}, nil
		}, validConfig())

		err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "office@example.org"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
		assert.False(t, called)
	})
}

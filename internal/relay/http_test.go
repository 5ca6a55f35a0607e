package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/internal/relay"
	"github.com/cornerstone-church/site/internal/submission"
)

func contactForm() submission.ContactForm {
	return submission.ContactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "prayer",
		Message: "Please pray for my family",
	}
}

func newRelay(t *testing.T, url string, timeout time.Duration) *relay.HTTPRelay {
	t.Helper()

	r, err := relay.NewHTTPRelay(relay.Config{
		Endpoint: url,
		APIKey:   "secret",
		To:       "office@example.com",
		Timeout:  timeout,
	}, relay.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return r
}

func TestNewHTTPRelay_Config(t *testing.T) {
	t.Parallel()

	_, err := relay.NewHTTPRelay(relay.Config{To: "office@example.com"})
	assert.ErrorIs(t, err, relay.ErrInvalidConfig)

	_, err = relay.NewHTTPRelay(relay.Config{Endpoint: "ftp://example.com", To: "office@example.com"})
	assert.ErrorIs(t, err, relay.ErrInvalidConfig)

	_, err = relay.NewHTTPRelay(relay.Config{Endpoint: "https://example.com"})
	assert.ErrorIs(t, err, relay.ErrInvalidConfig)
}

func TestHTTPRelay_Success(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	t.Cleanup(srv.Close)

	err := newRelay(t, srv.URL, time.Second).Relay(context.Background(), contactForm())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "office@example.com", got["to"])
	assert.Equal(t, "Contact Form: prayer", got["subject"])
	assert.Equal(t, "contact", got["formType"])
	assert.Equal(t, "2026-03-01T10:00:00Z", got["timestamp"])
	assert.Equal(t, "Jane Doe", got["name"])
	assert.Equal(t, "jane@example.com", got["email"])
	assert.Contains(t, got["message"], "Phone: Not provided")
}

func TestHTTPRelay_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		reason  string
	}{
		{"error field", http.StatusBadRequest, `{"error":"recipient blocked"}`, relay.ErrRejected, "recipient blocked"},
		{"message field", http.StatusUnprocessableEntity, `{"message":"bad sender"}`, relay.ErrRejected, "bad sender"},
		{"nested error", http.StatusBadRequest, `{"error":{"message":"quota exceeded"}}`, relay.ErrRejected, "quota exceeded"},
		{"status text", http.StatusServiceUnavailable, `oops`, relay.ErrRejected, "503 Service Unavailable"},
		{"non-json ack", http.StatusOK, `OK`, relay.ErrMalformedAck, "OK"},
		{"array ack", http.StatusOK, `[1,2]`, relay.ErrMalformedAck, "[1,2]"},
		{"null ack", http.StatusOK, `null`, relay.ErrMalformedAck, "null"},
		{"long non-json ack", http.StatusOK, "a" + strings.Repeat("é", 100), relay.ErrMalformedAck, "a" + strings.Repeat("é", 59) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			err := newRelay(t, srv.URL, time.Second).Relay(context.Background(), contactForm())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.reason)
			assert.Equal(t, int32(1), calls.Load(), "exactly one attempt")
		})
	}
}

func TestHTTPRelay_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	err := newRelay(t, srv.URL, 50*time.Millisecond).Relay(context.Background(), contactForm())
	assert.ErrorIs(t, err, relay.ErrTransport)
}

func TestHTTPRelay_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newRelay(t, srv.URL, time.Second).Relay(ctx, contactForm())
	assert.ErrorIs(t, err, relay.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/logger"
)

const maxAckSize = 64 << 10

// HTTPRelay posts messages to a JSON email endpoint.
type HTTPRelay struct {
	endpoint string
	apiKey   string
	to       string
	client   *http.Client
	now      func() time.Time
	log      *slog.Logger
}

// HTTPOption configures an HTTPRelay.
type HTTPOption func(*HTTPRelay)

// WithHTTPClient replaces the default client, whose timeout comes from
// Config.Timeout.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(r *HTTPRelay) {
		if c != nil {
			r.client = c
		}
	}
}

// WithClock sets the clock used for the message timestamp.
func WithClock(now func() time.Time) HTTPOption {
	return func(r *HTTPRelay) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger. A nil logger keeps the discard default.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(r *HTTPRelay) {
		if l != nil {
			r.log = l
		}
	}
}

// NewHTTPRelay validates cfg and returns a relay bound to cfg.Endpoint.
func NewHTTPRelay(cfg Config, opts ...HTTPOption) (*HTTPRelay, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: RELAY_ENDPOINT is required", ErrInvalidConfig)
	}
	if !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return nil, fmt.Errorf("%w: RELAY_ENDPOINT must be an http(s) URL", ErrInvalidConfig)
	}
	if cfg.To == "" {
		return nil, fmt.Errorf("%w: RELAY_TO is required", ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	r := &HTTPRelay{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		to:       cfg.To,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("relay.http"))
	return r, nil
}

// Relay sends one request. It succeeds on a 2xx status carrying a JSON object.
func (r *HTTPRelay) Relay(ctx context.Context, form submission.Form) error {
	msg := Compose(form, r.to, r.now())

	body, err := json.Marshal(msg.envelope())
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAckSize))
	if err != nil {
		return errors.Join(ErrTransport, err)
	}

	r.log.DebugContext(ctx, "relay responded",
		logger.FormType(msg.FormType.String()),
		slog.Int("status_code", resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	var ack map[string]any
	decodeErr := json.Unmarshal(raw, &ack)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrRejected, failureReason(resp, ack))
	}
	if decodeErr != nil || ack == nil {
		return fmt.Errorf("%w: expected a JSON object, got %q", ErrMalformedAck, truncate(string(raw), 120))
	}
	return nil
}

// failureReason prefers the endpoint's own error text over the status line.
func failureReason(resp *http.Response, ack map[string]any) string {
	for _, key := range []string{"error", "message"} {
		switch v := ack[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", resp.StatusCode, text)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

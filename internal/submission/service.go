package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cornerstone-church/site/pkg/logger"
)

// Service validates, relays and records form submissions.
type Service struct {
	relay    Relay
	store    Store
	guard    Guard
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	disabled map[FormType]bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides submission id generation.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithGuard enables idempotency keys.
func WithGuard(g Guard) ServiceOption {
	return func(s *Service) {
		s.guard = g
	}
}

// WithDisabledForms turns off the given form types.
func WithDisabledForms(types ...FormType) ServiceOption {
	return func(s *Service) {
		for _, t := range types {
			s.disabled[t] = true
		}
	}
}

// NewService relays forms through relay and records them in store. Without
// WithGuard, idempotency keys are recorded but not enforced.
func NewService(relay Relay, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		relay:    relay,
		store:    store,
		log:      logger.Discard(),
		now:      time.Now,
		newID:    uuid.NewString,
		disabled: make(map[FormType]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("submission"))
	return s
}

// Enabled reports whether submissions of type t are accepted.
func (s *Service) Enabled(t FormType) bool {
	return !s.disabled[t]
}

type submitConfig struct {
	idempotencyKey string
}

// SubmitOption adjusts a single Submit call.
type SubmitOption func(*submitConfig)

// WithIdempotencyKey marks a submission with a client supplied key. A second
// submission with the same key and form type is rejected with ErrDuplicate
// once the first one has been relayed.
func WithIdempotencyKey(key string) SubmitOption {
	return func(c *submitConfig) {
		c.idempotencyKey = key
	}
}

// Submit validates form, relays it, and records it. Nothing is recorded
// unless the relay succeeds.
func (s *Service) Submit(ctx context.Context, form Form, opts ...SubmitOption) (Submission, error) {
	cfg := submitConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	formType := form.Type()
	log := s.log.With(logger.FormType(formType.String()))

	if err := form.Validate(); err != nil {
		return Submission{}, err
	}
	if !s.Enabled(formType) {
		return Submission{}, ErrFormDisabled
	}

	payload, err := NormalizePayload(form.Payload())
	if err != nil {
		return Submission{}, err
	}

	guardKey := ""
	if cfg.idempotencyKey != "" && s.guard != nil {
		guardKey = formType.String() + ":" + cfg.idempotencyKey
		ok, err := s.guard.Acquire(ctx, guardKey)
		if err != nil {
			return Submission{}, fmt.Errorf("acquire idempotency key: %w", err)
		}
		if !ok {
			return Submission{}, ErrDuplicate
		}
	}

	if err := s.relay.Relay(ctx, form); err != nil {
		if guardKey != "" {
			if rerr := s.guard.Release(context.WithoutCancel(ctx), guardKey); rerr != nil {
				log.WarnContext(ctx, "failed to release idempotency key", logger.Error(rerr))
			}
		}
		log.WarnContext(ctx, "relay failed", logger.Error(err))
		return Submission{}, errors.Join(ErrRelayFailed, err)
	}

	sub := Submission{
		ID:             s.newID(),
		FormType:       formType,
		Payload:        payload,
		CreatedAt:      s.now().UTC().Truncate(TimePrecision),
		IdempotencyKey: cfg.idempotencyKey,
	}

	stored, err := s.store.Append(ctx, formType.Category(), sub)
	if err != nil {
		log.ErrorContext(ctx, "submission delivered but not recorded",
			logger.SubmissionID(sub.ID),
			logger.Category(formType.Category()),
			slog.Time("created_at", sub.CreatedAt),
			logger.Payload(sub.Payload),
			logger.Error(err),
		)
		return Submission{}, errors.Join(ErrNotRecorded, err)
	}

	log.InfoContext(ctx, "submission recorded", logger.SubmissionID(stored.ID))
	return stored, nil
}

// List returns the recorded submissions of type t in append order.
func (s *Service) List(ctx context.Context, t FormType) ([]Submission, error) {
	subs, err := s.store.List(ctx, t.Category())
	if err != nil {
		return nil, fmt.Errorf("list %s submissions: %w", t, err)
	}
	return subs, nil
}

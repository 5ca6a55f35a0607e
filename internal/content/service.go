package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cornerstone-church/site/pkg/logger"
)

// Status reports how a listing went. It is rendered verbatim in JSON.
type Status string

const (
	StatusLoaded Status = "loaded" // at least one item
	StatusEmpty  Status = "empty"  // fetched, nothing to show
	StatusFailed Status = "failed" // fetch error, see Result.Err
)

// Result is a listing outcome. Items is never nil; Err is set only when
// Status is StatusFailed.
type Result[T any] struct {
	Items  []T
	Status Status
	Err    error
}

// OK reports whether at least one item loaded.
func (r Result[T]) OK() bool     { return r.Status == StatusLoaded }
// Empty reports a successful fetch with no items.
func (r Result[T]) Empty() bool  { return r.Status == StatusEmpty }
// Failed reports a fetch error. Items is still empty, not nil.
func (r Result[T]) Failed() bool { return r.Status == StatusFailed }

func loaded[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Result[T]{Items: []T{}, Status: StatusEmpty}
	}
	return Result[T]{Items: items, Status: StatusLoaded}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Items: []T{}, Status: StatusFailed, Err: err}
}

// Service reads content for the public pages. Fetch errors are logged and
// returned inside the Result; they never escape as panics.
type Service struct {
	src Source
	log *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger fetch failures are reported to.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService reads content from src.
func NewService(src Source, opts ...ServiceOption) *Service {
	s := &Service{src: src, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("content"))
	return s
}

func (s *Service) fail(ctx context.Context, collection string, err error) {
	s.log.ErrorContext(ctx, "content fetch failed", logger.Collection(collection), logger.Error(err))
}

// ListEvents returns events newest first.
func (s *Service) ListEvents(ctx context.Context) Result[Event] {
	items, err := s.src.Events(ctx)
	if err != nil {
		s.fail(ctx, "events", err)
		return failed[Event](err)
	}
	sortEvents(items)
	return loaded(items)
}

// ListClasses returns classes newest first.
func (s *Service) ListClasses(ctx context.Context) Result[Class] {
	items, err := s.src.Classes(ctx)
	if err != nil {
		s.fail(ctx, "classes", err)
		return failed[Class](err)
	}
	sortClasses(items)
	return loaded(items)
}

// ListMinistries returns active ministries by display order, each joined
// with its features by display order. Any feature fetch failure fails the
// whole listing.
func (s *Service) ListMinistries(ctx context.Context) Result[Ministry] {
	ministries, err := s.src.Ministries(ctx, true)
	if err != nil {
		s.fail(ctx, "ministries", err)
		return failed[Ministry](err)
	}

	out := make([]Ministry, 0, len(ministries))
	for _, m := range ministries {
		if !m.Active {
			continue
		}

		features, err := s.src.Features(ctx, m.ID)
		if err != nil {
			err = fmt.Errorf("features of ministry %s: %w", m.ID, err)
			s.fail(ctx, "ministry_features", err)
			return failed[Ministry](err)
		}
		if features == nil {
			features = []Feature{}
		}
		sortFeatures(features)

		m.Features = features
		out = append(out, m)
	}

	sortMinistries(out)
	return loaded(out)
}

package content

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySource keeps content in process memory. It backs development setups
// and tests, usually populated from a seed file.
type MemorySource struct {
	mu         sync.RWMutex
	now        func() time.Time
	events     []Event
	classes    []Class
	ministries []Ministry
	features   map[string][]Feature
}

// MemoryOption configures a MemorySource.
type MemoryOption func(*MemorySource)

// WithMemoryClock sets the clock that stamps CreatedAt on new items.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemorySource) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemorySource returns an empty source.
func NewMemorySource(opts ...MemoryOption) *MemorySource {
	m := &MemorySource{
		now:      time.Now,
		features: make(map[string][]Feature),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Events returns copies of all events, newest first.
func (m *MemorySource) Events(ctx context.Context) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := slices.Clone(m.events)
	m.mu.RUnlock()

	sortEvents(out)
	return out, nil
}

// Classes returns copies of all classes, newest first.
func (m *MemorySource) Classes(ctx context.Context) ([]Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := slices.Clone(m.classes)
	m.mu.RUnlock()

	sortClasses(out)
	return out, nil
}

// Ministries returns ministries by display order, skipping inactive ones
// when activeOnly is set.
func (m *MemorySource) Ministries(ctx context.Context, activeOnly bool) ([]Ministry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Ministry, 0, len(m.ministries))
	for _, item := range m.ministries {
		if activeOnly && !item.Active {
			continue
		}
		item.Features = nil
		out = append(out, item)
	}
	m.mu.RUnlock()

	sortMinistries(out)
	return out, nil
}

// Features returns the features of a ministry by display order. An unknown
// ministry has none.
func (m *MemorySource) Features(ctx context.Context, ministryID string) ([]Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := slices.Clone(m.features[ministryID])
	m.mu.RUnlock()

	if out == nil {
		out = []Feature{}
	}
	sortFeatures(out)
	return out, nil
}

// CreateEvent assigns an id and, when unset, CreatedAt.
func (m *MemorySource) CreateEvent(_ context.Context, e Event) (Event, error) {
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = uuid.NewString()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.now().UTC()
	}
	m.events = append(m.events, e)
	return e, nil
}

// UpdateEvent replaces an event, keeping its CreatedAt.
func (m *MemorySource) UpdateEvent(_ context.Context, e Event) (Event, error) {
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.events, func(x Event) bool { return x.ID == e.ID })
	if i < 0 {
		return Event{}, ErrNotFound
	}
	e.CreatedAt = m.events[i].CreatedAt
	m.events[i] = e
	return e, nil
}

// DeleteEvent removes an event or returns ErrNotFound.
func (m *MemorySource) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.events, func(x Event) bool { return x.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.events = slices.Delete(m.events, i, i+1)
	return nil
}

// CreateClass assigns an id and, when unset, CreatedAt.
func (m *MemorySource) CreateClass(_ context.Context, c Class) (Class, error) {
	if err := c.Validate(); err != nil {
		return Class{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.now().UTC()
	}
	m.classes = append(m.classes, c)
	return c, nil
}

// UpdateClass replaces a class, keeping its CreatedAt.
func (m *MemorySource) UpdateClass(_ context.Context, c Class) (Class, error) {
	if err := c.Validate(); err != nil {
		return Class{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.classes, func(x Class) bool { return x.ID == c.ID })
	if i < 0 {
		return Class{}, ErrNotFound
	}
	c.CreatedAt = m.classes[i].CreatedAt
	m.classes[i] = c
	return c, nil
}

// DeleteClass removes a class or returns ErrNotFound.
func (m *MemorySource) DeleteClass(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.classes, func(x Class) bool { return x.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.classes = slices.Delete(m.classes, i, i+1)
	return nil
}

// CreateMinistry assigns an id. Features are managed separately.
func (m *MemorySource) CreateMinistry(_ context.Context, item Ministry) (Ministry, error) {
	if err := item.Validate(); err != nil {
		return Ministry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = uuid.NewString()
	item.Features = nil
	m.ministries = append(m.ministries, item)
	return item, nil
}

// UpdateMinistry replaces a ministry. Its features are left alone.
func (m *MemorySource) UpdateMinistry(_ context.Context, item Ministry) (Ministry, error) {
	if err := item.Validate(); err != nil {
		return Ministry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.ministries, func(x Ministry) bool { return x.ID == item.ID })
	if i < 0 {
		return Ministry{}, ErrNotFound
	}
	item.Features = nil
	m.ministries[i] = item
	return item, nil
}

// DeleteMinistry also drops the ministry's features.
func (m *MemorySource) DeleteMinistry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.ministries, func(x Ministry) bool { return x.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.ministries = slices.Delete(m.ministries, i, i+1)
	delete(m.features, id)
	return nil
}

func (m *MemorySource) hasMinistry(id string) bool {
	return slices.ContainsFunc(m.ministries, func(x Ministry) bool { return x.ID == id })
}

// CreateFeature returns ErrNotFound when the ministry does not exist.
func (m *MemorySource) CreateFeature(_ context.Context, f Feature) (Feature, error) {
	if err := f.Validate(); err != nil {
		return Feature{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasMinistry(f.MinistryID) {
		return Feature{}, ErrNotFound
	}
	f.ID = uuid.NewString()
	m.features[f.MinistryID] = append(m.features[f.MinistryID], f)
	return f, nil
}

// UpdateFeature replaces a feature of the given ministry.
func (m *MemorySource) UpdateFeature(_ context.Context, f Feature) (Feature, error) {
	if err := f.Validate(); err != nil {
		return Feature{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.features[f.MinistryID]
	i := slices.IndexFunc(list, func(x Feature) bool { return x.ID == f.ID })
	if i < 0 {
		return Feature{}, ErrNotFound
	}
	list[i] = f
	return f, nil
}

// DeleteFeature removes a feature of the given ministry.
func (m *MemorySource) DeleteFeature(_ context.Context, ministryID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.features[ministryID]
	i := slices.IndexFunc(list, func(x Feature) bool { return x.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.features[ministryID] = slices.Delete(list, i, i+1)
	return nil
}

package content

import (
	"cmp"
	"context"
	"slices"
)

// Source is the queryable content store. Events and Classes come newest
// first; Ministries and Features come by ascending DisplayOrder.
type Source interface {
	Events(ctx context.Context) ([]Event, error)
	Classes(ctx context.Context) ([]Class, error)
	Ministries(ctx context.Context, activeOnly bool) ([]Ministry, error)
	Features(ctx context.Context, ministryID string) ([]Feature, error)
}

// Writer applies admin edits. Update and Delete return ErrNotFound for an
// unknown id; CreateFeature returns it for an unknown ministry.
type Writer interface {
	CreateEvent(ctx context.Context, e Event) (Event, error)
	UpdateEvent(ctx context.Context, e Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error

	CreateClass(ctx context.Context, c Class) (Class, error)
	UpdateClass(ctx context.Context, c Class) (Class, error)
	DeleteClass(ctx context.Context, id string) error

	CreateMinistry(ctx context.Context, m Ministry) (Ministry, error)
	UpdateMinistry(ctx context.Context, m Ministry) (Ministry, error)
	DeleteMinistry(ctx context.Context, id string) error

	CreateFeature(ctx context.Context, f Feature) (Feature, error)
	UpdateFeature(ctx context.Context, f Feature) (Feature, error)
	DeleteFeature(ctx context.Context, ministryID, id string) error
}

// Repository is a Source that can also be edited.
type Repository interface {
	Source
	Writer
}

func sortEvents(items []Event) {
	slices.SortStableFunc(items, func(a, b Event) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}

func sortClasses(items []Class) {
	slices.SortStableFunc(items, func(a, b Class) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}

func sortMinistries(items []Ministry) {
	slices.SortStableFunc(items, func(a, b Ministry) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
}

func sortFeatures(items []Feature) {
	slices.SortStableFunc(items, func(a, b Feature) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
}

package content

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cornerstone-church/site/pkg/pg"
)

// PGSource reads and edits content in PostgreSQL. Ordering happens in SQL.
type PGSource struct {
	db pg.Querier
}

// NewPGSource reads and writes through db, usually a *pgxpool.Pool.
func NewPGSource(db pg.Querier) *PGSource {
	return &PGSource{db: db}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validID rejects ids that cannot be a uuid column value before they reach
// the database.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if pg.IsNotFoundError(err) || pg.IsForeignKeyViolationError(err) {
		return ErrNotFound
	}
	return err
}

func scanEvent(row pgx.CollectableRow) (Event, error) {
	var (
		e    Event
		link *string
		date *time.Time
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Details, &link, &date, &e.CreatedAt); err != nil {
		return e, err
	}
	e.Link = deref(link)
	e.Date = date
	return e, nil
}

func scanClass(row pgx.CollectableRow) (Class, error) {
	var (
		c    Class
		link *string
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &link, &c.CreatedAt); err != nil {
		return c, err
	}
	c.Link = deref(link)
	return c, nil
}

func scanMinistry(row pgx.CollectableRow) (Ministry, error) {
	var (
		m    Ministry
		link *string
	)
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &link, &m.DisplayOrder, &m.Active); err != nil {
		return m, err
	}
	m.Link = deref(link)
	return m, nil
}

func scanFeature(row pgx.CollectableRow) (Feature, error) {
	var f Feature
	err := row.Scan(&f.ID, &f.MinistryID, &f.Text, &f.DisplayOrder)
	return f, err
}

const (
	eventColumns    = `id::text, title, details, link, event_date, created_at`
	classColumns    = `id::text, title, description, link, created_at`
	ministryColumns = `id::text, title, description, link, display_order, active`
	featureColumns  = `id::text, ministry_id::text, text, display_order`
)

// Events returns events newest first.
func (s *PGSource) Events(ctx context.Context) ([]Event, error) {
	rows, err := s.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return pgx.CollectRows(rows, scanEvent)
}

// Classes returns classes newest first.
func (s *PGSource) Classes(ctx context.Context) ([]Class, error) {
	rows, err := s.db.Query(ctx, `SELECT `+classColumns+` FROM classes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	return pgx.CollectRows(rows, scanClass)
}

// Ministries returns ministries by display order, then creation time.
func (s *PGSource) Ministries(ctx context.Context, activeOnly bool) ([]Ministry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+ministryColumns+` FROM ministries WHERE active OR NOT $1 ORDER BY display_order ASC, created_at ASC`,
		activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query ministries: %w", err)
	}
	return pgx.CollectRows(rows, scanMinistry)
}

// Features returns a ministry's features by display order. An id that is
// not a uuid cannot match any row, so it yields an empty list.
func (s *PGSource) Features(ctx context.Context, ministryID string) ([]Feature, error) {
	if err := validID(ministryID); err != nil {
		return []Feature{}, nil
	}
	rows, err := s.db.Query(ctx,
		`SELECT `+featureColumns+` FROM ministry_features WHERE ministry_id = $1 ORDER BY display_order ASC, id`,
		ministryID)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	features, err := pgx.CollectRows(rows, scanFeature)
	if err != nil {
		return nil, err
	}
	if features == nil {
		features = []Feature{}
	}
	return features, nil
}

// CreateEvent inserts e. A zero CreatedAt defaults to now() in the database.
func (s *PGSource) CreateEvent(ctx context.Context, e Event) (Event, error) {
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	created, err := queryOne(ctx, s.db, scanEvent, `
		INSERT INTO events (title, details, link, event_date, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING `+eventColumns,
		e.Title, e.Details, nullable(e.Link), e.Date, zeroAsNull(e.CreatedAt))
	if err != nil {
		return Event{}, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

// UpdateEvent returns ErrNotFound when no row has e.ID.
func (s *PGSource) UpdateEvent(ctx context.Context, e Event) (Event, error) {
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	if err := validID(e.ID); err != nil {
		return Event{}, err
	}
	updated, err := queryOne(ctx, s.db, scanEvent, `
		UPDATE events SET title = $2, details = $3, link = $4, event_date = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		e.ID, e.Title, e.Details, nullable(e.Link), e.Date)
	if err != nil {
		return Event{}, notFound(err)
	}
	return updated, nil
}

// DeleteEvent returns ErrNotFound when no row was deleted.
func (s *PGSource) DeleteEvent(ctx context.Context, id string) error {
	return s.delete(ctx, `DELETE FROM events WHERE id = $1`, id)
}

// CreateClass inserts c. A zero CreatedAt defaults to now() in the database.
func (s *PGSource) CreateClass(ctx context.Context, c Class) (Class, error) {
	if err := c.Validate(); err != nil {
		return Class{}, err
	}
	created, err := queryOne(ctx, s.db, scanClass, `
		INSERT INTO classes (title, description, link, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		RETURNING `+classColumns,
		c.Title, c.Description, nullable(c.Link), zeroAsNull(c.CreatedAt))
	if err != nil {
		return Class{}, fmt.Errorf("insert class: %w", err)
	}
	return created, nil
}

// UpdateClass returns ErrNotFound when no row has c.ID.
func (s *PGSource) UpdateClass(ctx context.Context, c Class) (Class, error) {
	if err := c.Validate(); err != nil {
		return Class{}, err
	}
	if err := validID(c.ID); err != nil {
		return Class{}, err
	}
	updated, err := queryOne(ctx, s.db, scanClass, `
		UPDATE classes SET title = $2, description = $3, link = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+classColumns,
		c.ID, c.Title, c.Description, nullable(c.Link))
	if err != nil {
		return Class{}, notFound(err)
	}
	return updated, nil
}

// DeleteClass returns ErrNotFound when no row was deleted.
func (s *PGSource) DeleteClass(ctx context.Context, id string) error {
	return s.delete(ctx, `DELETE FROM classes WHERE id = $1`, id)
}

// CreateMinistry inserts m and returns it with its new id.
func (s *PGSource) CreateMinistry(ctx context.Context, m Ministry) (Ministry, error) {
	if err := m.Validate(); err != nil {
		return Ministry{}, err
	}
	created, err := queryOne(ctx, s.db, scanMinistry, `
		INSERT INTO ministries (title, description, link, display_order, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+ministryColumns,
		m.Title, m.Description, nullable(m.Link), m.DisplayOrder, m.Active)
	if err != nil {
		return Ministry{}, fmt.Errorf("insert ministry: %w", err)
	}
	return created, nil
}

// UpdateMinistry returns ErrNotFound when no row has m.ID.
func (s *PGSource) UpdateMinistry(ctx context.Context, m Ministry) (Ministry, error) {
	if err := m.Validate(); err != nil {
		return Ministry{}, err
	}
	if err := validID(m.ID); err != nil {
		return Ministry{}, err
	}
	updated, err := queryOne(ctx, s.db, scanMinistry, `
		UPDATE ministries SET title = $2, description = $3, link = $4, display_order = $5, active = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+ministryColumns,
		m.ID, m.Title, m.Description, nullable(m.Link), m.DisplayOrder, m.Active)
	if err != nil {
		return Ministry{}, notFound(err)
	}
	return updated, nil
}

// DeleteMinistry removes a ministry. Its features go with it through
// ON DELETE CASCADE.
func (s *PGSource) DeleteMinistry(ctx context.Context, id string) error {
	return s.delete(ctx, `DELETE FROM ministries WHERE id = $1`, id)
}

// CreateFeature maps a missing ministry (a foreign key violation) to
// ErrNotFound.
func (s *PGSource) CreateFeature(ctx context.Context, f Feature) (Feature, error) {
	if err := f.Validate(); err != nil {
		return Feature{}, err
	}
	if err := validID(f.MinistryID); err != nil {
		return Feature{}, err
	}
	created, err := queryOne(ctx, s.db, scanFeature, `
		INSERT INTO ministry_features (ministry_id, text, display_order)
		VALUES ($1, $2, $3)
		RETURNING `+featureColumns,
		f.MinistryID, f.Text, f.DisplayOrder)
	if err != nil {
		return Feature{}, notFound(err)
	}
	return created, nil
}

// UpdateFeature only matches a feature that belongs to f.MinistryID.
func (s *PGSource) UpdateFeature(ctx context.Context, f Feature) (Feature, error) {
	if err := f.Validate(); err != nil {
		return Feature{}, err
	}
	if err := validID(f.ID); err != nil {
		return Feature{}, err
	}
	if err := validID(f.MinistryID); err != nil {
		return Feature{}, err
	}
	updated, err := queryOne(ctx, s.db, scanFeature, `
		UPDATE ministry_features SET text = $3, display_order = $4
		WHERE id = $1 AND ministry_id = $2
		RETURNING `+featureColumns,
		f.ID, f.MinistryID, f.Text, f.DisplayOrder)
	if err != nil {
		return Feature{}, notFound(err)
	}
	return updated, nil
}

// DeleteFeature returns ErrNotFound unless the feature belongs to ministryID.
func (s *PGSource) DeleteFeature(ctx context.Context, ministryID, id string) error {
	if err := validID(ministryID); err != nil {
		return err
	}
	return s.delete(ctx, `DELETE FROM ministry_features WHERE id = $1 AND ministry_id = $2`, id, ministryID)
}

func (s *PGSource) delete(ctx context.Context, query, id string, args ...any) error {
	if err := validID(id); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// queryOne runs a statement that yields exactly one row. No row maps to
// pgx.ErrNoRows.
func queryOne[T any](ctx context.Context, db pg.Querier, scan pgx.RowToFunc[T], sql string, args ...any) (T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, scan)
}

func zeroAsNull(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

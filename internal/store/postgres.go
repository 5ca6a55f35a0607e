package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/pg"
)

// Postgres stores one row per submission in the submissions table. Rows are
// listed by their bigserial seq, which is append order.
type Postgres struct {
	db pg.Querier
}

// NewPostgres writes through db. The submissions table comes from the goose
// migrations.
func NewPostgres(db pg.Querier) *Postgres {
	return &Postgres{db: db}
}

const insertSubmission = `
INSERT INTO submissions (id, category, form_type, payload, idempotency_key, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`

const listSubmissions = `
SELECT id, form_type, payload, COALESCE(idempotency_key, ''), created_at
FROM submissions
WHERE category = $1
ORDER BY seq ASC`

// Append inserts s. An empty idempotency key is stored as NULL.
func (p *Postgres) Append(ctx context.Context, category string, s submission.Submission) (submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return submission.Submission{}, err
	}

	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("encode payload: %w", err)
	}

	_, err = p.db.Exec(ctx, insertSubmission,
		s.ID, category, string(s.FormType), payload, s.IdempotencyKey, s.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return submission.Submission{}, fmt.Errorf("submission %s already stored: %w", s.ID, err)
		}
		return submission.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return s, nil
}

// List returns the category by seq. CreatedAt comes back in UTC.
func (p *Postgres) List(ctx context.Context, category string) ([]submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, listSubmissions, category)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (submission.Submission, error) {
		var (
			s       submission.Submission
			ft      string
			payload []byte
		)
		if err := row.Scan(&s.ID, &ft, &payload, &s.IdempotencyKey, &s.CreatedAt); err != nil {
			return s, err
		}
		s.FormType = submission.FormType(ft)
		s.CreatedAt = s.CreatedAt.UTC()
		if err := json.Unmarshal(payload, &s.Payload); err != nil {
			return s, fmt.Errorf("%w: submission %s: %v", ErrCorrupt, s.ID, err)
		}
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan submissions: %w", err)
	}
	return out, nil
}

package content_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/internal/content"
)

const (
	ministryA = "6f1c2f4e-8d7a-4b1e-9a3f-0c2d5e6f7a81"
	ministryB = "0b9e8d7c-6a5f-4e3d-8c2b-1a0f9e8d7c6b"
	featureA  = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"
	eventA    = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

var (
	eventCols    = []string{"id", "title", "details", "link", "event_date", "created_at"}
	ministryCols = []string{"id", "title", "description", "link", "display_order", "active"}
	featureCols  = []string{"id", "ministry_id", "text", "display_order"}
	createdAt    = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

func newPGSource(t *testing.T) (*content.PGSource, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return content.NewPGSource(mock), mock
}

func quote(s string) string { return regexp.QuoteMeta(s) }

func TestPGSource_EventsKeepQueryOrder(t *testing.T) {
	t.Parallel()
	src, mock := newPGSource(t)

	date := createdAt.AddDate(0, 1, 0)
	mock.ExpectQuery(quote("FROM events ORDER BY created_at DESC, id")).
		WillReturnRows(pgxmock.NewRows(eventCols).
			AddRow(eventA, "Easter", "Services at 9 and 11", strPtr("https://example.com/easter"), &date, createdAt.Add(time.Hour)).
			AddRow(ministryB, "Picnic", "Bring a dish", (*string)(nil), (*time.Time)(nil), createdAt))

	events, err := src.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Easter", events[0].Title)
	assert.Equal(t, "https://example.com/easter", events[0].Link)
	require.NotNil(t, events[0].Date)
	assert.True(t, date.Equal(*events[0].Date))
	assert.Equal(t, "Picnic", events[1].Title)
	assert.Empty(t, events[1].Link)
	assert.Nil(t, events[1].Date)
}

func TestPGSource_QueryError(t *testing.T) {
	t.Parallel()
	src, mock := newPGSource(t)

	mock.ExpectQuery(quote("FROM classes")).WillReturnError(errors.New("connection reset"))

	_, err := src.Classes(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestPGSource_MinistriesWithFeatures(t *testing.T) {
	t.Parallel()
	src, mock := newPGSource(t)

	mock.ExpectQuery(quote("FROM ministries WHERE active OR NOT $1 ORDER BY display_order ASC")).
		WithArgs(true).
		WillReturnRows(pgxmock.NewRows(ministryCols).
			AddRow(ministryA, "Kids", "Sunday school", (*string)(nil), 1, true).
			AddRow(ministryB, "Choir", "Sing with us", (*string)(nil), 2, true))
	mock.ExpectQuery(quote("FROM ministry_features WHERE ministry_id = $1")).
		WithArgs(ministryA).
		WillReturnRows(pgxmock.NewRows(featureCols).
			AddRow(featureA, ministryA, "Nursery", 1))
	mock.ExpectQuery(quote("FROM ministry_features WHERE ministry_id = $1")).
		WithArgs(ministryB).
		WillReturnRows(pgxmock.NewRows(featureCols))

	res := content.NewService(src).ListMinistries(context.Background())
	require.True(t, res.OK(), "status %s: %v", res.Status, res.Err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "Kids", res.Items[0].Title)
	require.Len(t, res.Items[0].Features, 1)
	assert.Equal(t, "Nursery", res.Items[0].Features[0].Text)

	assert.Equal(t, "Choir", res.Items[1].Title)
	assert.NotNil(t, res.Items[1].Features, "a ministry without features gets an empty list")
	assert.Empty(t, res.Items[1].Features)
}

func TestPGSource_FeatureFailureFailsMinistries(t *testing.T) {
	t.Parallel()
	src, mock := newPGSource(t)

	mock.ExpectQuery(quote("FROM ministries")).
		WithArgs(true).
		WillReturnRows(pgxmock.NewRows(ministryCols).
			AddRow(ministryA, "Kids", "Sunday school", (*string)(nil), 1, true))
	mock.ExpectQuery(quote("FROM ministry_features")).
		WithArgs(ministryA).
		WillReturnError(errors.New("timeout"))

	res := content.NewService(src).ListMinistries(context.Background())
	assert.True(t, res.Failed())
	assert.Empty(t, res.Items)
}

func TestPGSource_FeaturesOfMalformedIDAreEmpty(t *testing.T) {
	t.Parallel()
	src, _ := newPGSource(t)

	features, err := src.Features(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.NotNil(t, features)
	assert.Empty(t, features)
}

func TestPGSource_UpdateNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no row updated", func(t *testing.T) {
		t.Parallel()
		src, mock := newPGSource(t)

		mock.ExpectQuery(quote("UPDATE events SET")).
			WithArgs(eventA, "Easter", "Services", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(eventCols))

		_, err := src.UpdateEvent(ctx, content.Event{ID: eventA, Title: "Easter", Details: "Services"})
		assert.ErrorIs(t, err, content.ErrNotFound)
	})

	t.Run("malformed id skips the database", func(t *testing.T) {
		t.Parallel()
		src, _ := newPGSource(t)

		_, err := src.UpdateEvent(ctx, content.Event{ID: "missing", Title: "Easter", Details: "Services"})
		assert.ErrorIs(t, err, content.ErrNotFound)
	})

	t.Run("invalid input is rejected first", func(t *testing.T) {
		t.Parallel()
		src, _ := newPGSource(t)

		_, err := src.UpdateEvent(ctx, content.Event{ID: eventA})
		assert.ErrorIs(t, err, content.ErrInvalid)
	})
}

func TestPGSource_CreateFeatureUnknownMinistry(t *testing.T) {
	t.Parallel()
	src, mock := newPGSource(t)

	mock.ExpectQuery(quote("INSERT INTO ministry_features")).
		WithArgs(ministryA, "Nursery", 1).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	_, err := src.CreateFeature(context.Background(), content.Feature{MinistryID: ministryA, Text: "Nursery", DisplayOrder: 1})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestPGSource_CreateMinistry(t *testing.T) {
	t.Parallel()
	src, mock := newPGSource(t)

	mock.ExpectQuery(quote("INSERT INTO ministries")).
		WithArgs("Kids", "Sunday school", pgxmock.AnyArg(), 1, true).
		WillReturnRows(pgxmock.NewRows(ministryCols).
			AddRow(ministryA, "Kids", "Sunday school", (*string)(nil), 1, true))

	m, err := src.CreateMinistry(context.Background(), content.Ministry{
		Title: "Kids", Description: "Sunday school", DisplayOrder: 1, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ministryA, m.ID)
}

func TestPGSource_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		src, mock := newPGSource(t)

		mock.ExpectExec(quote("DELETE FROM classes WHERE id = $1")).
			WithArgs(eventA).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, src.DeleteClass(ctx, eventA))
	})

	t.Run("nothing deleted", func(t *testing.T) {
		t.Parallel()
		src, mock := newPGSource(t)

		mock.ExpectExec(quote("DELETE FROM ministry_features WHERE id = $1 AND ministry_id = $2")).
			WithArgs(featureA, ministryA).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, src.DeleteFeature(ctx, ministryA, featureA), content.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		src, _ := newPGSource(t)

		assert.ErrorIs(t, src.DeleteEvent(ctx, "nope"), content.ErrNotFound)
	})
}

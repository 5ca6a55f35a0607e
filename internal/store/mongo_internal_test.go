package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cornerstone-church/site/internal/submission"
)

// mongoRoundTrip encodes s the way Append does and decodes it the way List
// does.
func mongoRoundTrip(t *testing.T, s submission.Submission) submission.Submission {
	t.Helper()
	raw, err := bson.Marshal(toMongo("table_group_signup", 7, s))
	require.NoError(t, err)

	var doc mongoSubmission
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, int64(7), doc.Seq)
	assert.Equal(t, "table_group_signup", doc.Category)

	got, err := fromMongo(doc)
	require.NoError(t, err)
	return got
}

func TestMongoDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	payload, err := submission.NormalizePayload(map[string]any{
		"name":         "Ada",
		"email":        "ada@example.com",
		"partySize":    3,
		"availability": []string{"Monday", "Thursday"},
	})
	require.NoError(t, err)

	s := submission.Submission{
		ID:             "sub-001",
		FormType:       submission.FormTableGroup,
		Payload:        payload,
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 123_000_000, time.UTC),
		IdempotencyKey: "key-1",
	}

	got := mongoRoundTrip(t, s)
	assert.Equal(t, s, got)
	assert.IsType(t, []any{}, got.Payload["availability"])
}

func TestMongoDocument_KeepsMilliseconds(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 10, 0, 0, 123_456_789, time.UTC)
	got := mongoRoundTrip(t, submission.Submission{
		ID:        "sub-002",
		FormType:  submission.FormContact,
		Payload:   map[string]any{},
		CreatedAt: at,
	})

	assert.Equal(t, at.Truncate(submission.TimePrecision), got.CreatedAt)
	assert.Empty(t, got.IdempotencyKey)
}

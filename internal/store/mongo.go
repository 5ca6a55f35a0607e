package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cornerstone-church/site/internal/submission"
)

const (
	mongoSubmissions = "submissions"
	mongoCounters    = "counters"
)

// Mongo stores one document per submission. A per-category counter supplies
// the seq used for ordering.
type Mongo struct {
	submissions *mongo.Collection
	counters    *mongo.Collection
}

// NewMongo stores submissions and their counters in db.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		submissions: db.Collection(mongoSubmissions),
		counters:    db.Collection(mongoCounters),
	}
}

type mongoSubmission struct {
	ID             string         `bson:"_id"`
	Category       string         `bson:"category"`
	Seq            int64          `bson:"seq"`
	FormType       string         `bson:"form_type"`
	Payload        map[string]any `bson:"payload"`
	CreatedAt      time.Time      `bson:"created_at"`
	IdempotencyKey string         `bson:"idempotency_key,omitempty"`
}

// EnsureIndexes creates the list index. Safe to call on every start.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "seq", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create submissions index: %w", err)
	}
	return nil
}

func (m *Mongo) nextSeq(ctx context.Context, category string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": mongoSubmissions + ":" + category},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next seq for %s: %w", category, err)
	}
	return counter.Seq, nil
}

// Append takes the next seq for the category, then inserts s.
func (m *Mongo) Append(ctx context.Context, category string, s submission.Submission) (submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return submission.Submission{}, err
	}

	seq, err := m.nextSeq(ctx, category)
	if err != nil {
		return submission.Submission{}, err
	}

	_, err = m.submissions.InsertOne(ctx, toMongo(category, seq, s))
	if err != nil {
		return submission.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return s, nil
}

// List returns the category by seq. Payloads are normalized after decoding.
func (m *Mongo) List(ctx context.Context, category string) ([]submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	cur, err := m.submissions.Find(ctx,
		bson.M{"category": category},
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}

	var docs []mongoSubmission
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	out := make([]submission.Submission, 0, len(docs))
	for _, d := range docs {
		s, err := fromMongo(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func toMongo(category string, seq int64, s submission.Submission) mongoSubmission {
	return mongoSubmission{
		ID:             s.ID,
		Category:       category,
		Seq:            seq,
		FormType:       string(s.FormType),
		Payload:        s.Payload,
		CreatedAt:      s.CreatedAt,
		IdempotencyKey: s.IdempotencyKey,
	}
}

func fromMongo(d mongoSubmission) (submission.Submission, error) {
	// Arrays decode as bson.A; payloads hold no nested documents.
	payload, err := submission.NormalizePayload(d.Payload)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("%w: submission %s: %v", ErrCorrupt, d.ID, err)
	}
	return submission.Submission{
		ID:             d.ID,
		FormType:       submission.FormType(d.FormType),
		Payload:        payload,
		CreatedAt:      d.CreatedAt.UTC(),
		IdempotencyKey: d.IdempotencyKey,
	}, nil
}

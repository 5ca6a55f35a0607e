package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TimePrecision is the finest CreatedAt resolution every Store keeps.
// Mongo stores milliseconds, so records are stamped at that precision.
const TimePrecision = time.Millisecond

// Submission is a form accepted by the relay and recorded in a Store.
type Submission struct {
	ID             string         `json:"id" bson:"_id" csv:"id"`
	FormType       FormType       `json:"formType" bson:"form_type" csv:"form_type"`
	Payload        map[string]any `json:"payload" bson:"payload" csv:"-"`
	CreatedAt      time.Time      `json:"createdAt" bson:"created_at" csv:"created_at"`
	IdempotencyKey string         `json:"idempotencyKey,omitempty" bson:"idempotency_key,omitempty" csv:"idempotency_key"`
}

// Relay delivers a validated form to its recipients. Implementations make
// exactly one delivery attempt per call.
type Relay interface {
	Relay(ctx context.Context, form Form) error
}

// Store records submissions per category in append order.
type Store interface {
	Append(ctx context.Context, category string, s Submission) (Submission, error)
	List(ctx context.Context, category string) ([]Submission, error)
}

// Guard claims idempotency keys. Acquire reports false when the key is
// already held.
type Guard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// NormalizePayload returns p in the shape a JSON document reads back as:
// numbers become float64, lists []any and nested objects map[string]any.
// Stores keep payloads as JSON or BSON documents, so a record normalized
// before Append is equal to the same record after List.
func NormalizePayload(p map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cornerstone-church/site/internal/submission"
)

const defaultRedisPrefix = "submissions:"

// Redis keeps each category as a list of JSON records. RPUSH is atomic, so
// appends need no coordination.
type Redis struct {
	client redis.Cmdable
	prefix string
}

// NewRedis keeps lists under prefix+category. An empty prefix means
// "submissions:".
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Append pushes s as JSON onto the category list.
func (r *Redis) Append(ctx context.Context, category string, s submission.Submission) (submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return submission.Submission{}, err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("encode submission: %w", err)
	}
	if err := r.client.RPush(ctx, r.prefix+category, raw).Err(); err != nil {
		return submission.Submission{}, fmt.Errorf("rpush %s: %w", category, err)
	}
	return s, nil
}

// List returns the category in push order. An entry that is not valid JSON
// fails the whole listing with ErrCorrupt.
func (r *Redis) List(ctx context.Context, category string) ([]submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	items, err := r.client.LRange(ctx, r.prefix+category, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", category, err)
	}

	out := make([]submission.Submission, 0, len(items))
	for i, item := range items {
		var s submission.Submission
		if err := json.Unmarshal([]byte(item), &s); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrCorrupt, category, i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

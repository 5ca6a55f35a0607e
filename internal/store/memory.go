package store

import (
	"context"
	"sync"

	"github.com/cornerstone-church/site/internal/submission"
)

// Memory keeps submissions in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]submission.Submission
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]submission.Submission)}
}

// Append stores a copy of s.
func (m *Memory) Append(ctx context.Context, category string, s submission.Submission) (submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return submission.Submission{}, err
	}
	if err := ctx.Err(); err != nil {
		return submission.Submission{}, err
	}

	m.mu.Lock()
	m.data[category] = append(m.data[category], clone(s))
	m.mu.Unlock()

	return s, nil
}

// List returns copies in append order, so callers may modify them.
func (m *Memory) List(ctx context.Context, category string) ([]submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]submission.Submission, 0, len(m.data[category]))
	for _, s := range m.data[category] {
		out = append(out, clone(s))
	}
	return out, nil
}

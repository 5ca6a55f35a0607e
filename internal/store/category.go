package store

import (
	"fmt"
	"maps"
	"regexp"
	"sync"

	"github.com/cornerstone-church/site/internal/submission"
)

// Category names end up in file names and object keys.
var categoryPattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

func checkCategory(category string) error {
	if !categoryPattern.MatchString(category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

// categoryLocks hands out one mutex per category.
type categoryLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (c *categoryLocks) lock(category string) func() {
	c.mu.Lock()
	if c.locks == nil {
		c.locks = make(map[string]*sync.Mutex)
	}
	l, ok := c.locks[category]
	if !ok {
		l = &sync.Mutex{}
		c.locks[category] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func clone(s submission.Submission) submission.Submission {
	s.Payload = maps.Clone(s.Payload)
	return s
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cornerstone-church/site/internal/submission"
)

// File keeps each category as one JSON array in <dir>/<category>.json. An
// append rewrites the whole file through a temp file and a rename.
type File struct {
	dir   string
	locks categoryLocks
}

// NewFile creates dir if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: STORE_FILE_DIR is required", ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(category string) string {
	return filepath.Join(f.dir, category+".json")
}

// Append adds s to the end of the category file. Appends to one category
// are serialized within the process.
func (f *File) Append(ctx context.Context, category string, s submission.Submission) (submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return submission.Submission{}, err
	}

	unlock := f.locks.lock(category)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return submission.Submission{}, err
	}

	all, err := f.read(category)
	if err != nil {
		return submission.Submission{}, err
	}
	all = append(all, s)

	if err := f.write(category, all); err != nil {
		return submission.Submission{}, err
	}
	return s, nil
}

// List returns the category in append order. A missing file is an empty
// category.
func (f *File) List(ctx context.Context, category string) ([]submission.Submission, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	unlock := f.locks.lock(category)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.read(category)
}

func (f *File) read(category string) ([]submission.Submission, error) {
	raw, err := os.ReadFile(f.path(category))
	if errors.Is(err, fs.ErrNotExist) {
		return []submission.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", category, err)
	}

	var all []submission.Submission
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, category, err)
	}
	if all == nil {
		all = []submission.Submission{}
	}
	return all, nil
}

func (f *File) write(category string, all []submission.Submission) error {
	raw, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", category, err)
	}

	tmp, err := os.CreateTemp(f.dir, category+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", category, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", category, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", category, err)
	}
	if err := os.Rename(tmpName, f.path(category)); err != nil {
		return fmt.Errorf("replace %s: %w", category, err)
	}
	return nil
}

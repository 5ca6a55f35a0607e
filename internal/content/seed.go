package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML document used to populate a content store:
//
//	events:
//	  - title: Easter Sunday
//	    details: Services at 9 and 11.
//	    date: 2026-04-05
//	ministries:
//	  - title: Kids
//	    description: Sunday school for all ages.
//	    displayOrder: 1
//	    active: true
//	    features:
//	      - text: Nursery available
//	        displayOrder: 1
type Seed struct {
	Events     []Event    `yaml:"events"`
	Classes    []Class    `yaml:"classes"`
	Ministries []Ministry `yaml:"ministries"`
}

// ParseSeed decodes a seed document. Unknown keys are rejected.
func ParseSeed(r io.Reader) (Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return seed, nil
}

// LoadSeedFile reads and parses the seed file at path.
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// Apply writes every item in seed through w. Ministries are created before
// their features.
func (s Seed) Apply(ctx context.Context, w Writer) error {
	for _, e := range s.Events {
		if _, err := w.CreateEvent(ctx, e); err != nil {
			return fmt.Errorf("seed event %q: %w", e.Title, err)
		}
	}
	for _, c := range s.Classes {
		if _, err := w.CreateClass(ctx, c); err != nil {
			return fmt.Errorf("seed class %q: %w", c.Title, err)
		}
	}
	for _, m := range s.Ministries {
		created, err := w.CreateMinistry(ctx, m)
		if err != nil {
			return fmt.Errorf("seed ministry %q: %w", m.Title, err)
		}
		for _, f := range m.Features {
			f.MinistryID = created.ID
			if _, err := w.CreateFeature(ctx, f); err != nil {
				return fmt.Errorf("seed feature %q of %q: %w", f.Text, m.Title, err)
			}
		}
	}
	return nil
}

package content

import (
	"errors"
	"net/url"
	"time"

	"github.com/cornerstone-church/site/pkg/validator"
)

// Event is a dated or undated church event. Date is optional; listings order
// by CreatedAt.
type Event struct {
	ID        string     `json:"id" yaml:"id,omitempty"`
	Title     string     `json:"title" yaml:"title"`
	Details   string     `json:"details" yaml:"details"`
	Link      string     `json:"link,omitempty" yaml:"link,omitempty"`
	Date      *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt,omitempty"`
}

// Class is a course or study group open for enrolment.
type Class struct {
	ID          string    `json:"id" yaml:"id,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Link        string    `json:"link,omitempty" yaml:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt,omitempty"`
}

// Ministry is a church ministry. Features is filled in by Service and is
// never nil in listings.
type Ministry struct {
	ID           string    `json:"id" yaml:"id,omitempty"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
	Link         string    `json:"link,omitempty" yaml:"link,omitempty"`
	DisplayOrder int       `json:"displayOrder" yaml:"displayOrder"`
	Active       bool      `json:"active" yaml:"active"`
	Features     []Feature `json:"features" yaml:"features,omitempty"`
}

// Feature is one bullet point listed under a ministry.
type Feature struct {
	ID           string `json:"id" yaml:"id,omitempty"`
	MinistryID   string `json:"ministryId" yaml:"-"`
	Text         string `json:"text" yaml:"text"`
	DisplayOrder int    `json:"displayOrder" yaml:"displayOrder"`
}

const (
	maxTitleLen = 200
	maxBodyLen  = 20000
)

func validLink(field, link string) validator.Rule {
	return validator.Rule{
		Check: func() bool {
			u, err := url.Parse(link)
			return err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "mailto") && (u.Host != "" || u.Opaque != "")
		},
		Error: validator.ValidationError{
			Field:          field,
			Message:        "must be an http(s) or mailto link",
			TranslationKey: "validation.url",
		},
	}
}

func check(rules ...validator.Rule) error {
	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	return nil
}

// Validate requires a title and details. Errors wrap ErrInvalid.
func (e Event) Validate() error {
	return check(
		validator.Required("title", e.Title),
		validator.MaxLen("title", e.Title, maxTitleLen),
		validator.Required("details", e.Details),
		validator.MaxLen("details", e.Details, maxBodyLen),
		validator.When(e.Link != "", validLink("link", e.Link)),
	)
}

// Validate requires a title and description. Errors wrap ErrInvalid.
func (c Class) Validate() error {
	return check(
		validator.Required("title", c.Title),
		validator.MaxLen("title", c.Title, maxTitleLen),
		validator.Required("description", c.Description),
		validator.MaxLen("description", c.Description, maxBodyLen),
		validator.When(c.Link != "", validLink("link", c.Link)),
	)
}

// Validate requires a title, a description and a non-negative display order.
func (m Ministry) Validate() error {
	return check(
		validator.Required("title", m.Title),
		validator.MaxLen("title", m.Title, maxTitleLen),
		validator.Required("description", m.Description),
		validator.MaxLen("description", m.Description, maxBodyLen),
		validator.When(m.Link != "", validLink("link", m.Link)),
		validator.MinNum("displayOrder", m.DisplayOrder, 0),
	)
}

// Validate requires text and a non-negative display order.
func (f Feature) Validate() error {
	return check(
		validator.Required("text", f.Text),
		validator.MaxLen("text", f.Text, maxTitleLen),
		validator.MinNum("displayOrder", f.DisplayOrder, 0),
	)
}

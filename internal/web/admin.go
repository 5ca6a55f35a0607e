package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/handler"
	"github.com/cornerstone-church/site/pkg/validator"
)

type adminHandler struct {
	submissions SubmissionService
	repo        content.Repository
}

type submissionsRequest struct {
	FormType string `path:"formType"`
}

// listSubmissions answers /admin/submissions/{formType} as JSON and
// /admin/submissions/{formType}.csv as a CSV download.
func (h adminHandler) listSubmissions(ctx handler.Context, req submissionsRequest) handler.Response {
	if name, ok := strings.CutSuffix(req.FormType, ".csv"); ok {
		return h.exportSubmissions(ctx, submissionsRequest{FormType: name})
	}

	ft, err := submission.ParseFormType(req.FormType)
	if err != nil {
		return handler.Fail(err)
	}
	subs, err := h.submissions.List(ctx, ft)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(subs, handler.WithJSONMeta(map[string]any{"count": len(subs)}))
}

// submissionRow flattens a submission for CSV export. Contact fields get
// their own columns; everything else stays in the payload column as JSON.
type submissionRow struct {
	ID             string `csv:"id"`
	FormType       string `csv:"form_type"`
	CreatedAt      string `csv:"created_at"`
	Name           string `csv:"name"`
	Email          string `csv:"email"`
	Phone          string `csv:"phone"`
	IdempotencyKey string `csv:"idempotency_key"`
	Payload        string `csv:"payload"`
}

func toRow(s submission.Submission) submissionRow {
	str := func(k string) string {
		v, _ := s.Payload[k].(string)
		return v
	}
	payload, _ := json.Marshal(s.Payload)
	return submissionRow{
		ID:             s.ID,
		FormType:       string(s.FormType),
		CreatedAt:      s.CreatedAt.UTC().Format(time.RFC3339),
		Name:           str("name"),
		Email:          str("email"),
		Phone:          str("phone"),
		IdempotencyKey: s.IdempotencyKey,
		Payload:        string(payload),
	}
}

func (h adminHandler) exportSubmissions(ctx handler.Context, req submissionsRequest) handler.Response {
	ft, err := submission.ParseFormType(req.FormType)
	if err != nil {
		return handler.Fail(err)
	}
	subs, err := h.submissions.List(ctx, ft)
	if err != nil {
		return handler.Fail(err)
	}

	rows := make([]submissionRow, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, toRow(s))
	}
	return handler.CSV(fmt.Sprintf("%s-%s.csv", ft, time.Now().UTC().Format("20060102")), rows)
}

// idRequest carries the path ids of admin item routes.
type idRequest struct {
	ID        string `path:"id"`
	FeatureID string `path:"featureID"`
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, validator.ValidationErrors{{
			Field:          field,
			Message:        "must be a date like 2026-04-05",
			TranslationKey: "validation.date",
		}}
	}
	return &t, nil
}

type eventRequest struct {
	ID      string  `path:"id" json:"-"`
	Title   string  `json:"title"`
	Details string  `json:"details"`
	Link    string  `json:"link"`
	Date    *string `json:"date"`
}

func (r eventRequest) toEvent() (content.Event, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return content.Event{}, err
	}
	return content.Event{ID: r.ID, Title: r.Title, Details: r.Details, Link: r.Link, Date: date}, nil
}

type classRequest struct {
	ID          string `path:"id" json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (r classRequest) toClass() content.Class {
	return content.Class{ID: r.ID, Title: r.Title, Description: r.Description, Link: r.Link}
}

type ministryRequest struct {
	ID           string `path:"id" json:"-"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	DisplayOrder int    `json:"displayOrder"`
	Active       *bool  `json:"active"`
}

func (r ministryRequest) toMinistry() content.Ministry {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return content.Ministry{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Link:         r.Link,
		DisplayOrder: r.DisplayOrder,
		Active:       active,
	}
}

type featureRequest struct {
	MinistryID   string `path:"id" json:"-"`
	ID           string `path:"featureID" json:"-"`
	Text         string `json:"text"`
	DisplayOrder int    `json:"displayOrder"`
}

func (r featureRequest) toFeature() content.Feature {
	return content.Feature{ID: r.ID, MinistryID: r.MinistryID, Text: r.Text, DisplayOrder: r.DisplayOrder}
}

func created(v any) handler.Response {
	return handler.JSON(v, handler.WithJSONStatus(http.StatusCreated))
}

func result[T any](v T, err error) handler.Response {
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(v)
}

func deleted(err error) handler.Response {
	if err != nil {
		return handler.Fail(err)
	}
	return handler.EmptyWithStatus(http.StatusNoContent)
}

func (h adminHandler) listEvents(ctx handler.Context, _ struct{}) handler.Response {
	return result(h.repo.Events(ctx))
}

func (h adminHandler) createEvent(ctx handler.Context, req eventRequest) handler.Response {
	e, err := req.toEvent()
	if err != nil {
		return handler.Fail(err)
	}
	e, err = h.repo.CreateEvent(ctx, e)
	if err != nil {
		return handler.Fail(err)
	}
	return created(e)
}

func (h adminHandler) updateEvent(ctx handler.Context, req eventRequest) handler.Response {
	e, err := req.toEvent()
	if err != nil {
		return handler.Fail(err)
	}
	return result(h.repo.UpdateEvent(ctx, e))
}

func (h adminHandler) deleteEvent(ctx handler.Context, req idRequest) handler.Response {
	return deleted(h.repo.DeleteEvent(ctx, req.ID))
}

func (h adminHandler) listClasses(ctx handler.Context, _ struct{}) handler.Response {
	return result(h.repo.Classes(ctx))
}

func (h adminHandler) createClass(ctx handler.Context, req classRequest) handler.Response {
	c, err := h.repo.CreateClass(ctx, req.toClass())
	if err != nil {
		return handler.Fail(err)
	}
	return created(c)
}

func (h adminHandler) updateClass(ctx handler.Context, req classRequest) handler.Response {
	return result(h.repo.UpdateClass(ctx, req.toClass()))
}

func (h adminHandler) deleteClass(ctx handler.Context, req idRequest) handler.Response {
	return deleted(h.repo.DeleteClass(ctx, req.ID))
}

func (h adminHandler) listMinistries(ctx handler.Context, _ struct{}) handler.Response {
	return result(h.repo.Ministries(ctx, false))
}

func (h adminHandler) createMinistry(ctx handler.Context, req ministryRequest) handler.Response {
	m, err := h.repo.CreateMinistry(ctx, req.toMinistry())
	if err != nil {
		return handler.Fail(err)
	}
	return created(m)
}

func (h adminHandler) updateMinistry(ctx handler.Context, req ministryRequest) handler.Response {
	return result(h.repo.UpdateMinistry(ctx, req.toMinistry()))
}

func (h adminHandler) deleteMinistry(ctx handler.Context, req idRequest) handler.Response {
	return deleted(h.repo.DeleteMinistry(ctx, req.ID))
}

func (h adminHandler) listFeatures(ctx handler.Context, req idRequest) handler.Response {
	return result(h.repo.Features(ctx, req.ID))
}

func (h adminHandler) createFeature(ctx handler.Context, req featureRequest) handler.Response {
	f, err := h.repo.CreateFeature(ctx, req.toFeature())
	if err != nil {
		return handler.Fail(err)
	}
	return created(f)
}

func (h adminHandler) updateFeature(ctx handler.Context, req featureRequest) handler.Response {
	return result(h.repo.UpdateFeature(ctx, req.toFeature()))
}

func (h adminHandler) deleteFeature(ctx handler.Context, req idRequest) handler.Response {
	return deleted(h.repo.DeleteFeature(ctx, req.ID, req.FeatureID))
}

package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cornerstone-church/site/internal/submission"
	"github.com/cornerstone-church/site/pkg/handler"
	"github.com/cornerstone-church/site/pkg/validator"
)

// IdempotencyHeader carries an optional client key that makes a retried
// submission safe.
const IdempotencyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// SubmissionService is the part of submission.Service the router needs.
type SubmissionService interface {
	Submit(ctx context.Context, form submission.Form, opts ...submission.SubmitOption) (submission.Submission, error)
	List(ctx context.Context, t submission.FormType) ([]submission.Submission, error)
	Enabled(t submission.FormType) bool
}

// submitRequest is the union of every form's fields. PartySize accepts a
// JSON number or a numeric string.
type submitRequest struct {
	FormType string `path:"formType" json:"-" form:"-"`

	Name          string      `json:"name" form:"name"`
	Email         string      `json:"email" form:"email"`
	Phone         string      `json:"phone" form:"phone"`
	Subject       string      `json:"subject" form:"subject"`
	Message       string      `json:"message" form:"message"`
	Address       string      `json:"address" form:"address"`
	MaritalStatus string      `json:"maritalStatus" form:"maritalStatus"`
	Realm         string      `json:"realm" form:"realm"`
	PartySize     json.Number `json:"partySize" form:"partySize"`
	Availability  []string    `json:"availability" form:"availability"`
	ServiceTime   string      `json:"serviceTime" form:"serviceTime"`
	Notes         string      `json:"notes" form:"notes"`
}

func parsePartySize(n json.Number) (int, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, nil
	}
	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Join(submission.ErrValidation, validator.ValidationErrors{{
			Field:          "partySize",
			Message:        "must be a whole number",
			TranslationKey: "validation.integer",
		}})
	}
	return size, nil
}

// toForm builds the variant selected by formType.
func (req submitRequest) toForm(formType submission.FormType) (submission.Form, error) {
	switch formType {
	case submission.FormContact:
		return submission.ContactForm{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Subject: req.Subject,
			Message: req.Message,
		}, nil
	case submission.FormRealmSignup:
		return submission.RealmSignupForm{
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Address:       req.Address,
			MaritalStatus: req.MaritalStatus,
			Realm:         req.Realm,
		}, nil
	case submission.FormTableGroup:
		size, err := parsePartySize(req.PartySize)
		if err != nil {
			return nil, err
		}
		return submission.TableGroupForm{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PartySize:    size,
			Availability: req.Availability,
			Notes:        req.Notes,
		}, nil
	case submission.FormOverflow:
		size, err := parsePartySize(req.PartySize)
		if err != nil {
			return nil, err
		}
		return submission.OverflowForm{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			PartySize:   size,
			ServiceTime: req.ServiceTime,
			Notes:       req.Notes,
		}, nil
	}
	return nil, submission.ErrUnknownFormType
}

type formsHandler struct {
	svc SubmissionService
}

// requireForm rejects unknown and disabled form types before the body is
// read, so they answer 404 regardless of payload.
func (h formsHandler) requireForm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ft, err := submission.ParseFormType(formTypeParam(r))
		if err == nil && !h.svc.Enabled(ft) {
			err = submission.ErrFormDisabled
		}
		if err != nil {
			_ = handler.JSONError(classify(err)).Render(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h formsHandler) submit(ctx handler.Context, req submitRequest) handler.Response {
	ft, err := submission.ParseFormType(req.FormType)
	if err != nil {
		return handler.Fail(err)
	}

	form, err := req.toForm(ft)
	if err != nil {
		return handler.Fail(err)
	}

	var opts []submission.SubmitOption
	if key := strings.TrimSpace(ctx.Request().Header.Get(IdempotencyHeader)); key != "" {
		if len(key) > maxIdempotencyKeyLen {
			return handler.Fail(handler.ErrBadRequest.WithMessage("Idempotency-Key is too long"))
		}
		opts = append(opts, submission.WithIdempotencyKey(key))
	}

	stored, err := h.svc.Submit(ctx, form, opts...)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(stored, handler.WithJSONStatus(http.StatusCreated))
}

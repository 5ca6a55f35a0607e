package submission_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/internal/submission"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func contactForm() submission.ContactForm {
	return submission.ContactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "prayer",
		Message: "Please pray for my family",
	}
}

func newService(relay *MockRelay, store *MockStore, opts ...submission.ServiceOption) *submission.Service {
	opts = append([]submission.ServiceOption{
		submission.WithClock(func() time.Time { return fixedNow }),
		submission.WithIDGenerator(func() string { return "sub-1" }),
	}, opts...)
	return submission.NewService(relay, store, opts...)
}

func TestService_Submit_Success(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	form := contactForm()

	relay.On("Relay", mock.Anything, form).Return(nil).Once()
	store.On("Append", mock.Anything, "contact", mock.MatchedBy(func(s submission.Submission) bool {
		return s.ID == "sub-1" && s.FormType == submission.FormContact && s.CreatedAt.Equal(fixedNow) &&
			s.Payload["subject"] == "prayer"
	})).Return(submission.Submission{
		ID:        "sub-1",
		FormType:  submission.FormContact,
		Payload:   form.Payload(),
		CreatedAt: fixedNow,
	}, nil).Once()

	got, err := newService(relay, store).Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, "Jane Doe", got.Payload["name"])

	relay.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestService_Submit_ValidationSkipsNetwork(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}

	_, err := newService(relay, store).Submit(context.Background(), submission.ContactForm{})
	assert.ErrorIs(t, err, submission.ErrValidation)
	relay.AssertNotCalled(t, "Relay", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Submit_Disabled(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	svc := newService(relay, store, submission.WithDisabledForms(submission.FormOverflow))

	assert.False(t, svc.Enabled(submission.FormOverflow))
	assert.True(t, svc.Enabled(submission.FormContact))

	_, err := svc.Submit(context.Background(), submission.OverflowForm{
		Name: "Ann", Email: "ann@example.com", PartySize: 2, ServiceTime: "9:00",
	})
	assert.ErrorIs(t, err, submission.ErrFormDisabled)
	relay.AssertNotCalled(t, "Relay", mock.Anything, mock.Anything)
}

func TestService_Submit_RelayFailureLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	guard := &MockGuard{}
	relayErr := errors.New("mailbox unavailable")

	guard.On("Acquire", mock.Anything, "contact:key-1").Return(true, nil).Once()
	guard.On("Release", mock.Anything, "contact:key-1").Return(nil).Once()
	relay.On("Relay", mock.Anything, mock.Anything).Return(relayErr).Once()

	svc := newService(relay, store, submission.WithGuard(guard))
	_, err := svc.Submit(context.Background(), contactForm(), submission.WithIdempotencyKey("key-1"))

	require.ErrorIs(t, err, submission.ErrRelayFailed)
	assert.ErrorIs(t, err, relayErr)
	assert.Contains(t, err.Error(), "mailbox unavailable")
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	guard.AssertExpectations(t)
}

func TestService_Submit_StoreFailureIsNotRecorded(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	guard := &MockGuard{}

	guard.On("Acquire", mock.Anything, "contact:key-2").Return(true, nil).Once()
	relay.On("Relay", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("Append", mock.Anything, "contact", mock.Anything).
		Return(submission.Submission{}, errors.New("disk full")).Once()

	svc := newService(relay, store, submission.WithGuard(guard))
	_, err := svc.Submit(context.Background(), contactForm(), submission.WithIdempotencyKey("key-2"))

	require.ErrorIs(t, err, submission.ErrNotRecorded)
	assert.NotErrorIs(t, err, submission.ErrRelayFailed)
	relay.AssertNumberOfCalls(t, "Relay", 1)
	guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestService_Submit_Duplicate(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	guard := &MockGuard{}
	guard.On("Acquire", mock.Anything, "contact:key-3").Return(false, nil).Once()

	svc := newService(relay, store, submission.WithGuard(guard))
	_, err := svc.Submit(context.Background(), contactForm(), submission.WithIdempotencyKey("key-3"))

	assert.ErrorIs(t, err, submission.ErrDuplicate)
	relay.AssertNotCalled(t, "Relay", mock.Anything, mock.Anything)
}

func TestService_Submit_KeyWithoutGuardIsIgnored(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	relay.On("Relay", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("Append", mock.Anything, "contact", mock.MatchedBy(func(s submission.Submission) bool {
		return s.IdempotencyKey == "key-4"
	})).Return(submission.Submission{ID: "sub-1"}, nil).Once()

	_, err := newService(relay, store).Submit(context.Background(), contactForm(), submission.WithIdempotencyKey("key-4"))
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	want := []submission.Submission{{ID: "a"}, {ID: "b"}}
	store.On("List", mock.Anything, "realm_signup").Return(want, nil).Once()
	store.On("List", mock.Anything, "contact").Return(nil, errors.New("boom")).Once()

	svc := newService(relay, store)

	got, err := svc.List(context.Background(), submission.FormRealmSignup)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.List(context.Background(), submission.FormContact)
	assert.Error(t, err)
}

func TestService_Submit_RecordsNormalizedSubmission(t *testing.T) {
	t.Parallel()

	relay := &MockRelay{}
	store := &MockStore{}
	form := submission.TableGroupForm{
		Name:         "Sam",
		Email:        "sam@example.com",
		PartySize:    3,
		Availability: []string{"Monday", "Thursday"},
	}
	stamp := fixedNow.Add(1234567 * time.Nanosecond)

	want := submission.Submission{
		ID:       "sub-1",
		FormType: submission.FormTableGroup,
		Payload: map[string]any{
			"name":         "Sam",
			"email":        "sam@example.com",
			"phone":        "",
			"partySize":    float64(3),
			"availability": []any{"Monday", "Thursday"},
			"notes":        "",
		},
		CreatedAt: fixedNow.Add(time.Millisecond),
	}

	relay.On("Relay", mock.Anything, form).Return(nil).Once()
	store.On("Append", mock.Anything, "table_group_signup", want).Return(want, nil).Once()

	svc := newService(relay, store, submission.WithClock(func() time.Time { return stamp }))
	got, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	relay.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestNormalizePayload(t *testing.T) {
	t.Parallel()

	got, err := submission.NormalizePayload(map[string]any{
		"partySize":    4,
		"availability": []string{"Friday"},
		"name":         "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"partySize":    float64(4),
		"availability": []any{"Friday"},
		"name":         "Ann",
	}, got)

	empty, err := submission.NormalizePayload(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

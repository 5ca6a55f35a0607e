package submission_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cornerstone-church/site/internal/submission"
)

type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Relay(ctx context.Context, form submission.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Append(ctx context.Context, category string, s submission.Submission) (submission.Submission, error) {
	args := m.Called(ctx, category, s)
	return args.Get(0).(submission.Submission), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, category string) ([]submission.Submission, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]submission.Submission), args.Error(1)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

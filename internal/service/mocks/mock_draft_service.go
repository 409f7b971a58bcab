package mocks

import (
	"context"
	"io"
	"time"

	"draftgen/internal/model"
	"draftgen/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDraftService struct {
	mock.Mock
}

var _ service.DraftService = (*MockDraftService)(nil)

func (m *MockDraftService) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockDraftService) DefaultCategory() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDraftService) Generate(ctx context.Context, category string) (*model.Draft, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Draft), args.Error(1)
}

func (m *MockDraftService) List(ctx context.Context, limit, offset int) (*service.DraftListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DraftListResult), args.Error(1)
}

func (m *MockDraftService) Get(ctx context.Context, id string) (*model.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Draft), args.Error(1)
}

func (m *MockDraftService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Draft), args.Error(2)
}

func (m *MockDraftService) Preview(ctx context.Context, id string) (io.ReadCloser, *model.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Draft), args.Error(2)
}

func (m *MockDraftService) Link(ctx context.Context, id string) (string, time.Duration, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *MockDraftService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

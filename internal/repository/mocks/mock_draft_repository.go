package mocks

import (
	"context"
	"time"

	"draftgen/internal/model"
	"draftgen/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Create(ctx context.Context, d *model.Draft) (*model.Draft, error) {
	args := m.Called(ctx, d)
	if f, ok := args.Get(0).(func(context.Context, *model.Draft) *model.Draft); ok {
		return f(ctx, d), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Draft), args.Error(1)
}

func (m *MockDraftRepository) FindByID(ctx context.Context, id string) (*model.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Draft), args.Error(1)
}

func (m *MockDraftRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Draft], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Draft]), args.Error(1)
}

func (m *MockDraftRepository) Touch(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockDraftRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

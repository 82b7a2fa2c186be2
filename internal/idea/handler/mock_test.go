package handler

import (
	"context"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/stretchr/testify/mock"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ParseList(page, limit, query string) (service.ListParams, error) {
	args := m.Called(page, limit, query)
	return args.Get(0).(service.ListParams), args.Error(1)
}

func (m *mockService) List(ctx context.Context, p service.ListParams) (*idea.Page, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idea.Page), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id string) (*idea.WithEmployee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idea.WithEmployee), args.Error(1)
}

func (m *mockService) Create(ctx context.Context, d idea.Draft) (*idea.Idea, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idea.Idea), args.Error(1)
}

func (m *mockService) Vote(ctx context.Context, id string, vt idea.VoteType) (*idea.Idea, error) {
	args := m.Called(ctx, id, vt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idea.Idea), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) Employees(ctx context.Context) ([]idea.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]idea.Employee), args.Error(1)
}

func (m *mockService) Employee(ctx context.Context, id string) (*idea.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idea.Employee), args.Error(1)
}

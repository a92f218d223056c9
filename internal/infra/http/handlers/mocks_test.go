package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/usecase"
)

type MockCapturer struct {
	mock.Mock
}

func (m *MockCapturer) Execute(ctx context.Context, kind entity.LeadKind, input usecase.CaptureLeadInput) (entity.Lead, error) {
	args := m.Called(ctx, kind, input)
	return args.Get(0).(entity.Lead), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, limit int) ([]entity.Lead, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Search(ctx context.Context, filter entity.LeadFilter, search string, limit int) ([]entity.Lead, error) {
	args := m.Called(ctx, filter, search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Stats(ctx context.Context) (entity.LeadStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.LeadStats), args.Error(1)
}

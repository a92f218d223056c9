package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/googleauth"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/sheets"
)

type MockSink struct {
	mock.Mock
	name string
}

func (m *MockSink) Name() string { return m.name }

func (m *MockSink) Send(ctx context.Context, lead entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Token(ctx context.Context) (googleauth.Token, error) {
	args := m.Called(ctx)
	return args.Get(0).(googleauth.Token), args.Error(1)
}

type MockSheetAppender struct {
	mock.Mock
}

func (m *MockSheetAppender) AppendLead(ctx context.Context, accessToken, spreadsheetID string, lead entity.Lead) (*sheets.AppendResult, error) {
	args := m.Called(ctx, accessToken, spreadsheetID, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sheets.AppendResult), args.Error(1)
}

type MockFormSubmitter struct {
	mock.Mock
}

func (m *MockFormSubmitter) Submit(ctx context.Context, lead entity.Lead) (int, error) {
	args := m.Called(ctx, lead)
	return args.Int(0), args.Error(1)
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

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewLead(lead entity.Lead, kind entity.LeadKind) error {
	args := m.Called(lead, kind)
	return args.Error(0)
}

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) Execute(lead entity.Lead) {
	m.Called(lead)
}

type recordedAttempt struct {
	sink    string
	outcome string
}

type fakeMetrics struct {
	mu       sync.Mutex
	attempts []recordedAttempt
}

func (f *fakeMetrics) ObserveSinkAttempt(sink, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, recordedAttempt{sink: sink, outcome: outcome})
}

func (f *fakeMetrics) outcomes() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.attempts))
	for _, a := range f.attempts {
		out[a.sink] = a.outcome
	}
	return out
}

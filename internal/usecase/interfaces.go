package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/googleauth"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/sheets"
)

// LeadSink is one external system that receives a copy of each lead.
type LeadSink interface {
	Name() string
	Send(ctx context.Context, lead entity.Lead) error
}

type TokenSource interface {
	Token(ctx context.Context) (googleauth.Token, error)
}

type SheetAppender interface {
	AppendLead(ctx context.Context, accessToken, spreadsheetID string, lead entity.Lead) (*sheets.AppendResult, error)
}

type FormSubmitter interface {
	Submit(ctx context.Context, lead entity.Lead) (int, error)
}

type SyncMetrics interface {
	ObserveSinkAttempt(sink, outcome string, elapsed time.Duration)
}

type LeadNotifier interface {
	NotifyNewLead(lead entity.Lead, kind entity.LeadKind) error
}

type LeadSyncer interface {
	Execute(lead entity.Lead)
}

type CaptureLeadInput struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	State           string `json:"state"`
	DistrictPin     string `json:"district_pin"`
	City            string `json:"city"`
	InvestmentRange string `json:"investment_range"`
	Timeline        string `json:"timeline"`
	ExperienceYears string `json:"experience_years"`
	OutletCount     string `json:"outlet_count"`
	CurrentBusiness string `json:"current_business"`
	BusinessType    string `json:"business_type"`
	Notes           string `json:"notes"`
	SourcePage      string `json:"source_page"`
}

type noopMetrics struct{}

func (noopMetrics) ObserveSinkAttempt(string, string, time.Duration) {}

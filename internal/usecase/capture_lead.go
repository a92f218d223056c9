package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

// CaptureLeadUseCase is the primary submission path: store, notify, then
// hand the stored lead to the sync dispatcher. Only validation can fail it.
type CaptureLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Notifier LeadNotifier
	Sync     LeadSyncer

	log logger.Logger
	bg  *Background
}

func NewCaptureLeadUseCase(
	repo entity.LeadRepositoryInterface,
	notifier LeadNotifier,
	sync LeadSyncer,
	bg *Background,
	log logger.Logger,
) *CaptureLeadUseCase {
	if bg == nil {
		bg = &Background{}
	}
	return &CaptureLeadUseCase{
		Repo:     repo,
		Notifier: notifier,
		Sync:     sync,
		log:      log,
		bg:       bg,
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, kind entity.LeadKind, input CaptureLeadInput) (entity.Lead, error) {
	if err := validateLeadInput(kind, input); err != nil {
		return entity.Lead{}, err
	}

	lead := buildLead(kind, input)
	log := uc.log.WithFields(map[string]interface{}{"kind": string(kind), "source_page": lead.SourcePage})

	if uc.Repo == nil {
		log.Warn("database not configured, lead goes out by email and sync only", nil)
	} else if err := uc.Repo.Create(ctx, &lead); err != nil {
		log.WithError(err).Error("❌ failed to store lead (non-critical)", nil)
	} else {
		log.Info("📥 lead stored", map[string]interface{}{"lead_id": lead.ID})
	}

	if uc.Notifier != nil {
		snapshot := lead
		uc.bg.Go(func() {
			if err := uc.Notifier.NotifyNewLead(snapshot, kind); err != nil {
				log.WithError(err).Warn("⚠️ lead notification failed (non-critical)", map[string]interface{}{"lead_id": snapshot.ID})
			}
		})
	}

	if uc.Sync != nil {
		uc.Sync.Execute(lead)
	}

	return lead, nil
}

// Wait lets shutdown finish pending notifications.
func (uc *CaptureLeadUseCase) Wait(ctx context.Context) error {
	return uc.bg.Wait(ctx)
}

func buildLead(kind entity.LeadKind, input CaptureLeadInput) entity.Lead {
	lead := entity.Lead{
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		Email:           strings.TrimSpace(input.Email),
		State:           strings.TrimSpace(input.State),
		DistrictPin:     strings.TrimSpace(input.DistrictPin),
		InvestmentRange: strings.TrimSpace(input.InvestmentRange),
		Timeline:        strings.TrimSpace(input.Timeline),
		ExperienceYears: strings.TrimSpace(input.ExperienceYears),
		OutletCount:     strings.TrimSpace(input.OutletCount),
		CurrentBusiness: strings.TrimSpace(input.CurrentBusiness),
		BusinessType:    strings.TrimSpace(input.BusinessType),
		Notes:           strings.TrimSpace(input.Notes),
		SourcePage:      strings.TrimSpace(input.SourcePage),
		Priority:        entity.PriorityFor(kind),
	}

	// The retail form only asks for a city.
	if lead.DistrictPin == "" {
		lead.DistrictPin = strings.TrimSpace(input.City)
	}
	if lead.BusinessType == "" {
		lead.BusinessType = string(kind)
	}
	if lead.SourcePage == "" {
		lead.SourcePage = "/" + string(kind)
	}
	return lead
}

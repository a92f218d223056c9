package entity

import (
	"context"
	"strings"
	"time"
)

type LeadKind string

const (
	LeadKindRetail      LeadKind = "retail"
	LeadKindDistributor LeadKind = "distributor"
)

const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
)

// Lead is one prospective-franchisee inquiry. It is passed by value so every
// sink reads its own snapshot; nothing downstream of the handler mutates it.
type Lead struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	State           string    `json:"state"`
	DistrictPin     string    `json:"district_pin"`
	InvestmentRange string    `json:"investment_range"`
	Timeline        string    `json:"timeline"`
	ExperienceYears string    `json:"experience_years"`
	OutletCount     string    `json:"outlet_count"`
	CurrentBusiness string    `json:"current_business"`
	BusinessType    string    `json:"business_type"`
	Notes           string    `json:"notes"`
	Priority        string    `json:"priority"`
	SourcePage      string    `json:"source_page"`
	CreatedAt       time.Time `json:"created_at"`
}

// Location is the combined "state - district" string shown to the sales team.
func (l Lead) Location() string {
	state := strings.TrimSpace(l.State)
	district := strings.TrimSpace(l.DistrictPin)
	switch {
	case state != "" && district != "":
		return state + " - " + district
	case state != "":
		return state
	case district != "":
		return district
	default:
		return "Not specified"
	}
}

// PriorityFor returns the default priority for leads coming from a form kind.
func PriorityFor(kind LeadKind) string {
	if kind == LeadKindDistributor {
		return PriorityHigh
	}
	return PriorityMedium
}

// LeadFilter narrows the admin dashboard. The zero value shows everything.
type LeadFilter string

const (
	LeadFilterAll         LeadFilter = ""
	LeadFilterToday       LeadFilter = "today"
	LeadFilterWeek        LeadFilter = "week"
	LeadFilterMonth       LeadFilter = "month"
	LeadFilterDistributor LeadFilter = "distributor"
	LeadFilterRetail      LeadFilter = "retail"
)

// DashboardLimit caps the rows shown on the admin dashboard.
const DashboardLimit = 100

// ParseLeadFilter maps a query value to a filter; unknown values mean all.
func ParseLeadFilter(raw string) LeadFilter {
	switch f := LeadFilter(raw); f {
	case LeadFilterToday, LeadFilterWeek, LeadFilterMonth, LeadFilterDistributor, LeadFilterRetail:
		return f
	}
	return LeadFilterAll
}

type LeadStats struct {
	Total        int
	Today        int
	Week         int
	Distributors int
	Retail       int
}

// Kind recovers the form a stored lead came from.
func (l Lead) Kind() LeadKind {
	if l.Priority == PriorityHigh {
		return LeadKindDistributor
	}
	return LeadKindRetail
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context, limit int) ([]Lead, error)
	Search(ctx context.Context, filter LeadFilter, search string, limit int) ([]Lead, error)
	Stats(ctx context.Context) (LeadStats, error)
}

package gforms

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

// Fields lists every lead field the form has a question for.
var Fields = []string{
	"name",
	"phone",
	"email",
	"state",
	"district_pin",
	"investment_range",
	"timeline",
	"experience_years",
	"outlet_count",
	"current_business",
	"business_type",
	"notes",
}

var fieldValues = map[string]func(entity.Lead) string{
	"name":             func(l entity.Lead) string { return l.Name },
	"phone":            func(l entity.Lead) string { return l.Phone },
	"email":            func(l entity.Lead) string { return l.Email },
	"state":            func(l entity.Lead) string { return l.State },
	"district_pin":     func(l entity.Lead) string { return l.DistrictPin },
	"investment_range": func(l entity.Lead) string { return l.InvestmentRange },
	"timeline":         func(l entity.Lead) string { return l.Timeline },
	"experience_years": func(l entity.Lead) string { return l.ExperienceYears },
	"outlet_count":     func(l entity.Lead) string { return l.OutletCount },
	"current_business": func(l entity.Lead) string { return l.CurrentBusiness },
	"business_type":    func(l entity.Lead) string { return l.BusinessType },
	"notes":            func(l entity.Lead) string { return l.Notes },
}

// EntryMap associates a lead field with the form's "entry.<n>" parameter.
type EntryMap map[string]string

// ParseEntryMap reads FORM_ENTRY_MAP, a JSON object of field -> entry id.
// Ids may be given as "entry.123" or "123". Every field in Fields must be
// present and nothing else may be.
func ParseEntryMap(raw string) (EntryMap, error) {
	var decoded map[string]string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, &entity.ConfigurationError{Sink: SinkName, Field: "FORM_ENTRY_MAP", Reason: "is not a JSON object of strings"}
	}

	entries := make(EntryMap, len(Fields))
	for _, field := range Fields {
		id, ok := decoded[field]
		if !ok || strings.TrimSpace(id) == "" {
			return nil, &entity.ConfigurationError{Sink: SinkName, Field: field, Reason: "has no form entry id"}
		}
		normalized, ok := normalizeEntryID(id)
		if !ok {
			return nil, &entity.ConfigurationError{Sink: SinkName, Field: field, Reason: "entry id " + id + " is not numeric"}
		}
		entries[field] = normalized
	}

	var unknown []string
	for field := range decoded {
		if _, ok := fieldValues[field]; !ok {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &entity.ConfigurationError{Sink: SinkName, Field: strings.Join(unknown, ","), Reason: "is not a lead field"}
	}

	return entries, nil
}

func normalizeEntryID(id string) (string, bool) {
	id = strings.TrimPrefix(strings.TrimSpace(id), "entry.")
	if id == "" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return "entry." + id, true
}

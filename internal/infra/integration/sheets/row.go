package sheets

import (
	"time"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

// Columns is the header row the target sheet must carry, in order. The API
// appends by position, so if the sheet's columns are ever reordered the data
// lands under the wrong headers without any error.
var Columns = []string{
	"id",
	"name",
	"phone",
	"email",
	"state",
	"investment_range",
	"timeline",
	"current_business",
	"experience_years",
	"outlet_count",
	"business_type",
	"priority",
	"source_page",
	"notes",
	"created_at",
}

var fieldValues = []func(entity.Lead) string{
	func(l entity.Lead) string { return l.ID },
	func(l entity.Lead) string { return l.Name },
	func(l entity.Lead) string { return l.Phone },
	func(l entity.Lead) string { return l.Email },
	func(l entity.Lead) string { return l.State },
	func(l entity.Lead) string { return l.InvestmentRange },
	func(l entity.Lead) string { return l.Timeline },
	func(l entity.Lead) string { return l.CurrentBusiness },
	func(l entity.Lead) string { return l.ExperienceYears },
	func(l entity.Lead) string { return l.OutletCount },
	func(l entity.Lead) string { return l.BusinessType },
	func(l entity.Lead) string { return l.Priority },
	func(l entity.Lead) string { return l.SourcePage },
	func(l entity.Lead) string { return l.Notes },
}

// TimestampLayout matches JavaScript's toISOString, which the sheet's
// existing rows were written with.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Row maps a lead to one sheet row. It always has len(Columns) cells; the
// last one is the append time, not the submission time.
func Row(lead entity.Lead, appendedAt time.Time) []string {
	row := make([]string, 0, len(Columns))
	for _, value := range fieldValues {
		row = append(row, value(lead))
	}
	return append(row, appendedAt.UTC().Format(TimestampLayout))
}

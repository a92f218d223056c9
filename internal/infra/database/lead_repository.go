package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Create inserts the lead and fills in the generated id and created_at.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			name, phone, email, state, district_pin, investment_range, timeline,
			experience_years, outlet_count, current_business, business_type,
			notes, priority, source_page
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	var id int64
	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Name,
		lead.Phone,
		nullString(lead.Email),
		nullString(lead.State),
		nullString(lead.DistrictPin),
		nullString(lead.InvestmentRange),
		nullString(lead.Timeline),
		nullString(lead.ExperienceYears),
		nullString(lead.OutletCount),
		nullString(lead.CurrentBusiness),
		nullString(lead.BusinessType),
		nullString(lead.Notes),
		lead.Priority,
		nullString(lead.SourcePage),
	).Scan(&id, &lead.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert lead")
	}

	lead.ID = strconv.FormatInt(id, 10)
	lead.CreatedAt = lead.CreatedAt.UTC()
	return nil
}

// List returns the newest leads first.
func (r *LeadRepository) List(ctx context.Context, limit int) ([]entity.Lead, error) {
	if limit <= 0 {
		limit = 1000
	}

	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list leads")
	}
	defer rows.Close()

	return scanLeads(rows)
}

const leadColumns = `id, name, phone, email, state, district_pin, investment_range, timeline,
			experience_years, outlet_count, current_business, business_type,
			notes, priority, source_page, created_at`

// filterClauses maps dashboard filters to WHERE conditions. Lead kind is
// read from priority, which the service derives itself; business_type is
// free text from the form.
var filterClauses = map[entity.LeadFilter]string{
	entity.LeadFilterToday:       "created_at >= date_trunc('day', NOW())",
	entity.LeadFilterWeek:        "created_at >= NOW() - INTERVAL '7 days'",
	entity.LeadFilterMonth:       "created_at >= NOW() - INTERVAL '30 days'",
	entity.LeadFilterDistributor: "priority = '" + entity.PriorityHigh + "'",
	entity.LeadFilterRetail:      "priority = '" + entity.PriorityMedium + "'",
}

// Search backs the admin dashboard: newest first, narrowed by filter and a
// case-insensitive match on name, phone, email or location.
func (r *LeadRepository) Search(ctx context.Context, filter entity.LeadFilter, search string, limit int) ([]entity.Lead, error) {
	if limit <= 0 {
		limit = entity.DashboardLimit
	}

	var (
		conditions []string
		args       []interface{}
	)
	if clause, ok := filterClauses[filter]; ok {
		conditions = append(conditions, clause)
	}
	if search = strings.TrimSpace(search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions,
			"(name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1 OR state ILIKE $1 OR district_pin ILIKE $1)")
	}
	args = append(args, limit)

	query := "SELECT " + leadColumns + " FROM leads"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "search leads")
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Stats counts leads for the dashboard header in a single pass.
func (r *LeadRepository) Stats(ctx context.Context) (entity.LeadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE ` + filterClauses[entity.LeadFilterToday] + `),
			COUNT(*) FILTER (WHERE ` + filterClauses[entity.LeadFilterWeek] + `),
			COUNT(*) FILTER (WHERE ` + filterClauses[entity.LeadFilterDistributor] + `),
			COUNT(*) FILTER (WHERE ` + filterClauses[entity.LeadFilterRetail] + `)
		FROM leads
	`

	var stats entity.LeadStats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Today, &stats.Week, &stats.Distributors, &stats.Retail,
	)
	if err != nil {
		return entity.LeadStats{}, errors.Wrap(err, "lead stats")
	}
	return stats, nil
}

func scanLeads(rows *sql.Rows) ([]entity.Lead, error) {
	var leads []entity.Lead
	for rows.Next() {
		var (
			l                                            entity.Lead
			id                                           int64
			email, state, district, investment, timeline sql.NullString
			experience, outlets, business, businessType  sql.NullString
			notes, sourcePage                            sql.NullString
		)
		err := rows.Scan(
			&id, &l.Name, &l.Phone, &email, &state, &district, &investment, &timeline,
			&experience, &outlets, &business, &businessType,
			&notes, &l.Priority, &sourcePage, &l.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan lead")
		}

		l.ID = strconv.FormatInt(id, 10)
		l.Email = email.String
		l.State = state.String
		l.DistrictPin = district.String
		l.InvestmentRange = investment.String
		l.Timeline = timeline.String
		l.ExperienceYears = experience.String
		l.OutletCount = outlets.String
		l.CurrentBusiness = business.String
		l.BusinessType = businessType.String
		l.Notes = notes.String
		l.SourcePage = sourcePage.String
		l.CreatedAt = l.CreatedAt.UTC()
		leads = append(leads, l)
	}

	return leads, errors.Wrap(rows.Err(), "iterate leads")
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

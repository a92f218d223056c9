package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

const exportLimit = 10000

var exportHeader = []string{
	"ID", "Name", "Phone", "Email", "Location", "Investment Range",
	"Timeline", "Experience", "Business Type", "Priority", "Created At",
}

type ExportHandler struct {
	Repo entity.LeadRepositoryInterface
	log  logger.Logger
	now  func() time.Time
}

func NewExportHandler(repo entity.LeadRepositoryInterface, log logger.Logger) *ExportHandler {
	return &ExportHandler{Repo: repo, log: log, now: time.Now}
}

// Handle streams stored leads as CSV, newest first. ?limit=N caps the rows.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "Database not configured", http.StatusInternalServerError)
		return
	}

	limit := exportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		if n < limit {
			limit = n
		}
	}

	leads, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		h.log.WithError(err).Error("❌ failed to export leads", nil)
		http.Error(w, "Error exporting leads", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("london-slush-leads-%s.csv", h.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, l := range leads {
		cw.Write([]string{
			l.ID,
			l.Name,
			l.Phone,
			l.Email,
			l.Location(),
			l.InvestmentRange,
			l.Timeline,
			l.ExperienceYears,
			l.BusinessType,
			l.Priority,
			l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		h.log.WithError(err).Warn("lead export interrupted", map[string]interface{}{"rows": len(leads)})
	}
}

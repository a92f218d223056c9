package handlers

import (
	"net/http"
	"strings"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/render"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

const maxSearchLength = 100

type AdminLeadsHandler struct {
	Repo entity.LeadRepositoryInterface
	log  logger.Logger
}

func NewAdminLeadsHandler(repo entity.LeadRepositoryInterface, log logger.Logger) *AdminLeadsHandler {
	return &AdminLeadsHandler{Repo: repo, log: log}
}

// Handle renders the newest leads with header counts.
// ?filter=today|week|month|distributor|retail narrows the list and ?search
// matches name, phone, email or location.
func (h *AdminLeadsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		h.page(w, http.StatusInternalServerError, "<h1>Database not configured</h1>")
		return
	}

	filter := entity.ParseLeadFilter(r.URL.Query().Get("filter"))
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	if len(search) > maxSearchLength {
		search = search[:maxSearchLength]
	}

	leads, err := h.Repo.Search(r.Context(), filter, search, entity.DashboardLimit)
	if err != nil {
		h.log.WithError(err).Error("❌ failed to load leads for dashboard", map[string]interface{}{"filter": string(filter)})
		h.page(w, http.StatusInternalServerError, "<h1>Error loading leads</h1>")
		return
	}

	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		h.log.WithError(err).Error("❌ failed to load lead stats", nil)
		h.page(w, http.StatusInternalServerError, "<h1>Error loading leads</h1>")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	view := render.AdminLeadsView{Stats: stats, Leads: leads, Filter: filter, Search: search}
	if err := render.AdminLeads(w, view); err != nil {
		h.log.WithError(err).Error("failed to render lead dashboard", nil)
	}
}

func (h *AdminLeadsHandler) page(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

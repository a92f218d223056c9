package handlers

import (
	"bytes"
	"net/http"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/render"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

type ThankYouHandler struct {
	log logger.Logger
}

func NewThankYouHandler(log logger.Logger) *ThankYouHandler {
	return &ThankYouHandler{log: log}
}

func (h *ThankYouHandler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var page bytes.Buffer
	if err := render.ThankYou(&page, entity.LeadKind(q.Get("type")), q.Get("name")); err != nil {
		h.log.WithError(err).Error("failed to render thank-you page", nil)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page.Bytes())
}

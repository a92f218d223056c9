package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/middleware"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/render"
	"github.com/xavierca1/londonslush-leads/internal/logger"
	"github.com/xavierca1/londonslush-leads/internal/usecase"
)

const (
	maxLeadBodyBytes     = 1 << 20
	submissionsPerMinute = 10
)

type LeadCapturer interface {
	Execute(ctx context.Context, kind entity.LeadKind, input usecase.CaptureLeadInput) (entity.Lead, error)
}

type LeadHandler struct {
	capture     LeadCapturer
	rateLimiter *RateLimiter
	log         logger.Logger
}

func NewLeadHandler(capture LeadCapturer, log logger.Logger) *LeadHandler {
	return &LeadHandler{
		capture:     capture,
		rateLimiter: NewRateLimiter(submissionsPerMinute, time.Minute),
		log:         log,
	}
}

// Close stops the rate limiter's sweeper.
func (h *LeadHandler) Close() {
	h.rateLimiter.Stop()
}

type CaptureLeadResponse struct {
	Success  bool   `json:"success"`
	LeadID   string `json:"lead_id,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (h *LeadHandler) SubmitRetail(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, entity.LeadKindRetail)
}

func (h *LeadHandler) SubmitDistributor(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, entity.LeadKindDistributor)
}

// submit accepts the landing-page form post (urlencoded or multipart) and
// JSON. Browsers are redirected to the thank-you page; JSON callers get JSON.
func (h *LeadHandler) submit(w http.ResponseWriter, r *http.Request, kind entity.LeadKind) {
	jsonClient := wantsJSON(r)

	if !h.rateLimiter.Allow(clientKey(r)) {
		if jsonClient {
			writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
			return
		}
		http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLeadBodyBytes)
	input, err := decodeLeadInput(r)
	if err != nil {
		h.log.WithError(err).Warn("could not parse lead submission", map[string]interface{}{"kind": string(kind)})
		if jsonClient {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
			return
		}
		h.submissionError(w, http.StatusBadRequest)
		return
	}

	lead, err := h.capture.Execute(r.Context(), kind, input)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			if jsonClient {
				writeErrorResponse(w, http.StatusBadRequest, domainErr.Code, domainErr.Message)
				return
			}
			h.submissionError(w, http.StatusBadRequest)
			return
		}

		h.log.WithError(err).Error("❌ failed to capture lead", map[string]interface{}{"kind": string(kind)})
		if jsonClient {
			writeErrorResponse(w, http.StatusInternalServerError, "CAPTURE_FAILED", "Error submitting form. Please call 800-699-9805")
			return
		}
		h.submissionError(w, http.StatusInternalServerError)
		return
	}

	middleware.RecordLeadCaptured(string(kind))

	redirect := ThankYouURL(kind, lead.Name)
	if jsonClient {
		writeJSON(w, http.StatusCreated, CaptureLeadResponse{
			Success:  true,
			LeadID:   lead.ID,
			Redirect: redirect,
		})
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *LeadHandler) submissionError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.SubmissionError(w); err != nil {
		h.log.WithError(err).Error("failed to render submission error page", nil)
	}
}

func ThankYouURL(kind entity.LeadKind, name string) string {
	q := url.Values{}
	q.Set("type", string(kind))
	q.Set("name", name)
	return "/thank-you?" + q.Encode()
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func decodeLeadInput(r *http.Request) (usecase.CaptureLeadInput, error) {
	var input usecase.CaptureLeadInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseMultipartForm(maxLeadBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return input, err
	}

	input = usecase.CaptureLeadInput{
		Name:            r.PostFormValue("name"),
		Phone:           r.PostFormValue("phone"),
		Email:           r.PostFormValue("email"),
		State:           r.PostFormValue("state"),
		DistrictPin:     r.PostFormValue("district_pin"),
		City:            r.PostFormValue("city"),
		InvestmentRange: r.PostFormValue("investment_range"),
		Timeline:        r.PostFormValue("timeline"),
		ExperienceYears: r.PostFormValue("experience_years"),
		OutletCount:     r.PostFormValue("outlet_count"),
		CurrentBusiness: r.PostFormValue("current_business"),
		BusinessType:    r.PostFormValue("business_type"),
		Notes:           r.PostFormValue("notes"),
		SourcePage:      r.PostFormValue("source_page"),
	}
	return input, nil
}

// clientKey identifies the submitter for rate limiting. chimw.RealIP has
// already folded trusted proxy headers into RemoteAddr, so headers on the
// request itself are not consulted again.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

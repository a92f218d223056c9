package gforms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

const (
	SinkName       = "forms"
	DefaultBaseURL = "https://docs.google.com"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	FormID     string
	Entries    EntryMap

	log logger.Logger
}

func NewClient(baseURL, formID string, entries EntryMap, timeout time.Duration, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		FormID:     formID,
		Entries:    entries,
		log:        log,
	}
}

// Payload builds the urlencoded body. Every mapped field is sent, empty when
// the lead has no value for it.
func Payload(entries EntryMap, lead entity.Lead) url.Values {
	values := url.Values{}
	for _, field := range Fields {
		id, ok := entries[field]
		if !ok {
			continue
		}
		values.Set(id, fieldValues[field](lead))
	}
	return values
}

func (c *Client) formURL() string {
	return fmt.Sprintf("%s/forms/d/e/%s/formResponse", c.BaseURL, url.PathEscape(c.FormID))
}

// SubmitLead is the fire-and-forget form of Submit: every failure ends as a
// log line.
func (c *Client) SubmitLead(ctx context.Context, lead entity.Lead) {
	status, err := c.Submit(ctx, lead)
	if err != nil {
		c.log.WithError(err).Warn("⚠️ google form submission failed (non-critical)", map[string]interface{}{
			"sink":    SinkName,
			"lead_id": lead.ID,
			"kind":    entity.ErrorKind(err),
		})
		return
	}
	c.log.Info("✅ lead submitted to google form", map[string]interface{}{
		"sink":    SinkName,
		"lead_id": lead.ID,
		"status":  status,
	})
}

// Submit posts lead to the form. Forms answers with an HTML page we have no
// use for, so any HTTP status counts as delivered; only configuration and
// transport failures are returned.
func (c *Client) Submit(ctx context.Context, lead entity.Lead) (int, error) {
	if c.FormID == "" || len(c.Entries) == 0 {
		return 0, &entity.ConfigurationError{Sink: SinkName, Reason: "form id or entry map missing"}
	}

	body := Payload(c.Entries, lead).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.formURL(), strings.NewReader(body))
	if err != nil {
		return 0, &entity.ConfigurationError{Sink: SinkName, Field: "FORMS_BASE_URL", Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, entity.NewTransportError(SinkName, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	return resp.StatusCode, nil
}

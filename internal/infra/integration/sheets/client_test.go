package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	c := NewClient(baseURL, timeout)
	c.now = func() time.Time { return appendedAt }
	return c
}

func TestAppendLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-abc/values/Sheet1:append", r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "json", r.URL.Query().Get("alt"))
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body struct {
			Values [][]string `json:"values"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if assert.Len(t, body.Values, 1) {
			assert.Len(t, body.Values[0], len(Columns))
			assert.Equal(t, "Asha Rao", body.Values[0][1])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"sheet-abc","tableRange":"Sheet1!A1:O9","updates":{"updatedRange":"Sheet1!A10:O10","updatedRows":1,"updatedCells":15}}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, time.Second).
		AppendLead(context.Background(), "ya29.token", "sheet-abc", entity.Lead{Name: "Asha Rao"})

	require.NoError(t, err)
	assert.Equal(t, "sheet-abc", result.SpreadsheetID)
	assert.Equal(t, 1, result.Updates.UpdatedRows)
	assert.Contains(t, string(result.Raw), "Sheet1!A10:O10")
}

func TestAppendLeadMinimalAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, time.Second).
		AppendLead(context.Background(), "t", "id", entity.Lead{})

	require.NoError(t, err)
	assert.Empty(t, result.Updates.UpdatedRange)
	assert.NotEmpty(t, result.Raw)
}

func TestAppendLeadEscapesSheetName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-abc/values/Leads 2026:append", r.URL.Path)
		w.Write([]byte(`{"spreadsheetId":"sheet-abc"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Second)
	c.SheetName = "Leads 2026"
	result, err := c.AppendLead(context.Background(), "t", "sheet-abc", entity.Lead{})

	require.NoError(t, err)
	assert.Equal(t, "sheet-abc", result.SpreadsheetID)
}

func TestAppendLeadAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend error"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).
		AppendLead(context.Background(), "t", "id", entity.Lead{})

	var sinkErr *entity.SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, entity.SheetAPIError, sinkErr.Kind)
	assert.Equal(t, "500 Internal Server Error", sinkErr.Detail)
	assert.Contains(t, sinkErr.Error(), "backend error")
}

func TestAppendLeadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestClient(srv.URL, 50*time.Millisecond).
		AppendLead(context.Background(), "t", "id", entity.Lead{})

	assert.True(t, entity.IsSinkError(err, entity.Timeout), "got %v", err)
}

func TestAppendLeadTransportFailure(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1", time.Second).
		AppendLead(context.Background(), "t", "id", entity.Lead{})

	assert.True(t, entity.IsSinkError(err, entity.TransportFailure), "got %v", err)
}

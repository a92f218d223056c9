package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

const (
	SinkName         = "sheets"
	DefaultBaseURL   = "https://sheets.googleapis.com"
	DefaultSheetName = "Sheet1"

	valueInputOption = "RAW"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	SheetName  string

	now func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SheetName:  DefaultSheetName,
		now:        time.Now,
	}
}

// AppendResult is the API acknowledgement. Callers treat it as opaque; the
// decoded fields are only there for diagnostics.
type AppendResult struct {
	SpreadsheetID string
	TableRange    string
	Updates       struct {
		UpdatedRange string
		UpdatedRows  int
		UpdatedCells int
	}

	Raw json.RawMessage
}

// service wires a Sheets client that sends accessToken on every request.
// The token comes from our own provider, so the library's credential lookup
// is bypassed through WithHTTPClient.
func (c *Client) service(ctx context.Context, accessToken string) (*sheetsapi.Service, error) {
	authClient := &http.Client{
		Timeout: c.HTTPClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
			Base:   c.HTTPClient.Transport,
		},
	}
	return sheetsapi.NewService(ctx,
		option.WithHTTPClient(authClient),
		option.WithEndpoint(c.BaseURL+"/"),
	)
}

// AppendLead appends one row for lead to the configured tab.
func (c *Client) AppendLead(ctx context.Context, accessToken, spreadsheetID string, lead entity.Lead) (*AppendResult, error) {
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, &entity.SinkError{Sink: SinkName, Kind: entity.TransportFailure, Err: err}
	}

	row := Row(lead, c.now())
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	resp, err := srv.Spreadsheets.Values.
		Append(spreadsheetID, c.SheetName, &sheetsapi.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapAppendError(err)
	}

	result := &AppendResult{
		SpreadsheetID: resp.SpreadsheetId,
		TableRange:    resp.TableRange,
	}
	if resp.Updates != nil {
		result.Updates.UpdatedRange = resp.Updates.UpdatedRange
		result.Updates.UpdatedRows = int(resp.Updates.UpdatedRows)
		result.Updates.UpdatedCells = int(resp.Updates.UpdatedCells)
	}
	// The raw ack is diagnostics only.
	result.Raw, _ = json.Marshal(resp)
	return result, nil
}

func mapAppendError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &entity.SinkError{
			Sink:   SinkName,
			Kind:   entity.SheetAPIError,
			Detail: fmt.Sprintf("%d %s", apiErr.Code, http.StatusText(apiErr.Code)),
			Err:    apiErr,
		}
	}
	return entity.NewTransportError(SinkName, err)
}

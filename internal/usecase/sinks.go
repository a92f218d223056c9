package usecase

import (
	"context"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/gforms"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/sheets"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

// SheetsSink obtains a token and appends the lead as one row.
type SheetsSink struct {
	Tokens        TokenSource
	Client        SheetAppender
	SpreadsheetID string

	log logger.Logger
}

func NewSheetsSink(tokens TokenSource, client SheetAppender, spreadsheetID string, log logger.Logger) *SheetsSink {
	return &SheetsSink{
		Tokens:        tokens,
		Client:        client,
		SpreadsheetID: spreadsheetID,
		log:           log,
	}
}

func (s *SheetsSink) Name() string { return sheets.SinkName }

func (s *SheetsSink) Send(ctx context.Context, lead entity.Lead) error {
	tok, err := s.Tokens.Token(ctx)
	if err != nil {
		return err
	}

	result, err := s.Client.AppendLead(ctx, tok.AccessToken, s.SpreadsheetID, lead)
	if err != nil {
		return err
	}

	s.log.Debug("sheet append acknowledged", map[string]interface{}{
		"lead_id":       lead.ID,
		"updated_range": result.Updates.UpdatedRange,
	})
	return nil
}

// FormsSink posts the lead to the form. The form's response body is ignored;
// configuration and transport failures are reported to the dispatcher.
type FormsSink struct {
	Client FormSubmitter
}

func NewFormsSink(client FormSubmitter) *FormsSink {
	return &FormsSink{Client: client}
}

func (s *FormsSink) Name() string { return gforms.SinkName }

func (s *FormsSink) Send(ctx context.Context, lead entity.Lead) error {
	_, err := s.Client.Submit(ctx, lead)
	return err
}

package main

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/londonslush-leads/internal/config"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/handlers"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/gforms"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

func entryMapJSON(t *testing.T) string {
	t.Helper()
	m := map[string]string{}
	for i, field := range gforms.Fields {
		m[field] = fmt.Sprintf("entry.%d", 1000+i)
	}
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	return string(raw)
}

func sinkNames(t *testing.T, cfg *config.Config) ([]string, map[string]string) {
	t.Helper()
	sinks, status := buildSinks(cfg, nil, logger.NewTestLogger(t))
	names := make([]string, 0, len(sinks))
	for _, s := range sinks {
		names = append(names, s.Name())
	}
	return names, status
}

func TestBuildSinksNothingConfigured(t *testing.T) {
	names, status := sinkNames(t, &config.Config{SyncTimeout: 10 * time.Second})

	assert.Empty(t, names)
	assert.Equal(t, map[string]string{
		config.SinkSheets: handlers.SinkDisabled,
		config.SinkForms:  handlers.SinkDisabled,
	}, status)
}

func TestBuildSinksBothEnabled(t *testing.T) {
	names, status := sinkNames(t, &config.Config{
		SpreadsheetCredentials: `{"client_email":"x@example.com","private_key":"not a key"}`,
		SpreadsheetID:          "sheet-1",
		FormID:                 "form-1",
		FormEntryMap:           entryMapJSON(t),
		SyncTimeout:            10 * time.Second,
	})

	assert.Equal(t, []string{config.SinkSheets, config.SinkForms}, names)
	assert.Equal(t, handlers.SinkEnabled, status[config.SinkSheets])
	assert.Equal(t, handlers.SinkEnabled, status[config.SinkForms])
}

func TestBuildSinksMisconfiguredSinkIsDropped(t *testing.T) {
	names, status := sinkNames(t, &config.Config{
		SpreadsheetID: "sheet-1",
		FormID:        "form-1",
		FormEntryMap:  `{"name":"entry.XXXXXX"}`,
		SyncTimeout:   10 * time.Second,
	})

	assert.Empty(t, names)
	assert.Contains(t, status[config.SinkSheets], "SPREADSHEET_CREDENTIALS")
	assert.Contains(t, status[config.SinkForms], "entry.XXXXXX is not numeric")
}

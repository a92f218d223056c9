package main

import (
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/londonslush-leads/internal/config"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/handlers"
	"github.com/xavierca1/londonslush-leads/internal/infra/http/middleware"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/gforms"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/googleauth"
	"github.com/xavierca1/londonslush-leads/internal/infra/integration/sheets"
	"github.com/xavierca1/londonslush-leads/internal/logger"
	"github.com/xavierca1/londonslush-leads/internal/usecase"
)

// buildSinks returns the sinks to dispatch to and the startup state of each,
// for /health. A misconfigured sink is dropped with a warning; the service
// keeps running.
func buildSinks(cfg *config.Config, rdb *redis.Client, log logger.Logger) ([]usecase.LeadSink, map[string]string) {
	var sinks []usecase.LeadSink
	status := map[string]string{}

	disable := func(name string, err error) {
		log.WithError(err).Warn("⚠️ lead sync sink disabled", map[string]interface{}{"sink": name})
		middleware.RecordSinkDisabled(name)
		status[name] = err.Error()
	}

	switch enabled, err := cfg.SheetsEnabled(); {
	case err != nil:
		disable(config.SinkSheets, err)
	case !enabled:
		status[config.SinkSheets] = handlers.SinkDisabled
	default:
		if _, err := googleauth.ParseCredentials(cfg.SpreadsheetCredentials); err != nil {
			// Kept enabled: every attempt will report MALFORMED_CREDENTIALS.
			log.WithError(err).Warn("SPREADSHEET_CREDENTIALS cannot be parsed", nil)
		}

		var cache googleauth.TokenCache = googleauth.NewMemoryCache()
		if rdb != nil {
			cache = googleauth.NewRedisCache(rdb, log)
		}
		tokens := googleauth.NewTokenProvider(cfg.SpreadsheetCredentials, log, googleauth.WithCache(cache))
		client := sheets.NewClient(cfg.SheetsBaseURL, cfg.SyncTimeout)

		sinks = append(sinks, usecase.NewSheetsSink(tokens, client, cfg.SpreadsheetID, log))
		status[config.SinkSheets] = handlers.SinkEnabled
	}

	switch enabled, err := cfg.FormsEnabled(); {
	case err != nil:
		disable(config.SinkForms, err)
	case !enabled:
		status[config.SinkForms] = handlers.SinkDisabled
	default:
		entries, err := gforms.ParseEntryMap(cfg.FormEntryMap)
		if err != nil {
			disable(config.SinkForms, err)
			break
		}
		client := gforms.NewClient(cfg.FormsBaseURL, cfg.FormID, entries, cfg.SyncTimeout, log)

		sinks = append(sinks, usecase.NewFormsSink(client))
		status[config.SinkForms] = handlers.SinkEnabled
	}

	return sinks, status
}

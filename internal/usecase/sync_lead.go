package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// SyncLeadUseCase copies a stored lead to every configured sink. Each sink is
// attempted once, on its own goroutine and deadline, detached from the
// request. A failing sink only produces a log line and a metric.
type SyncLeadUseCase struct {
	Sinks   []LeadSink
	Timeout time.Duration
	Metrics SyncMetrics

	log logger.Logger
	bg  *Background
}

func NewSyncLeadUseCase(
	sinks []LeadSink,
	timeout time.Duration,
	metrics SyncMetrics,
	bg *Background,
	log logger.Logger,
) *SyncLeadUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if bg == nil {
		bg = &Background{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SyncLeadUseCase{
		Sinks:   sinks,
		Timeout: timeout,
		Metrics: metrics,
		log:     log,
		bg:      bg,
	}
}

// Execute returns immediately; attempts finish in the background.
func (uc *SyncLeadUseCase) Execute(lead entity.Lead) {
	if len(uc.Sinks) == 0 {
		uc.log.Debug("lead sync skipped: no sinks configured", map[string]interface{}{"lead_id": lead.ID})
		return
	}

	syncID := uuid.NewString()
	for _, sink := range uc.Sinks {
		snapshot := lead
		uc.bg.Go(func() { uc.attempt(syncID, sink, snapshot) })
	}
}

// Wait drains in-flight attempts, e.g. during shutdown.
func (uc *SyncLeadUseCase) Wait(ctx context.Context) error {
	return uc.bg.Wait(ctx)
}

func (uc *SyncLeadUseCase) attempt(syncID string, sink LeadSink, lead entity.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.Timeout)
	defer cancel()

	start := time.Now()
	err := uc.send(ctx, sink, lead)
	elapsed := time.Since(start)

	fields := map[string]interface{}{
		"sync_id":     syncID,
		"sink":        sink.Name(),
		"lead_id":     lead.ID,
		"duration_ms": elapsed.Milliseconds(),
	}

	if err != nil {
		fields["outcome"] = OutcomeFailure
		fields["error_kind"] = entity.ErrorKind(err)
		uc.log.WithError(err).Warn("⚠️ lead sync attempt failed (non-critical)", fields)
		uc.Metrics.ObserveSinkAttempt(sink.Name(), OutcomeFailure, elapsed)
		return
	}

	fields["outcome"] = OutcomeSuccess
	uc.log.Info("✅ lead sync attempt finished", fields)
	uc.Metrics.ObserveSinkAttempt(sink.Name(), OutcomeSuccess, elapsed)
}

func (uc *SyncLeadUseCase) send(ctx context.Context, sink LeadSink, lead entity.Lead) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink %s panicked: %v", sink.Name(), r)
		}
	}()
	return sink.Send(ctx, lead)
}

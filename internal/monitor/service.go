package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/datastore"
	"github.com/aleister1102/careerwatch/internal/differ"
	"github.com/aleister1102/careerwatch/internal/extractor"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/aleister1102/careerwatch/internal/notifier"
	"github.com/rs/zerolog"
)

// sourceState tracks a source through the per-run state machine.
type sourceState string

const (
	statePending        sourceState = "PENDING"
	stateExtracted      sourceState = "EXTRACTED"
	stateCompared       sourceState = "COMPARED"
	stateNotifyEligible sourceState = "NOTIFY_ELIGIBLE"
	stateSkipped        sourceState = "SKIPPED"
	stateFailed         sourceState = "FAILED"
)

// Service orchestrates one monitoring run: it walks the configured sources
// strictly sequentially, extracts each, diffs against the persisted
// snapshots, sends one batched digest for the eligible sources, and persists
// the merged snapshots at the end of the run.
type Service struct {
	gCfg       *config.GlobalConfig
	logger     zerolog.Logger
	store      *datastore.SnapshotStore
	history    *datastore.RunHistoryStore
	differ     *differ.SnapshotDiffer
	notifier   notifier.Notifier
	extractors map[string]extractor.SourceExtractor
	policy     NotifyPolicy
}

// NewService wires a monitoring service from its collaborators. history may
// be nil; run auditing is then skipped. extractors maps an extraction mode
// ("browser", "static") to the extractor serving it.
func NewService(
	gCfg *config.GlobalConfig,
	store *datastore.SnapshotStore,
	history *datastore.RunHistoryStore,
	notif notifier.Notifier,
	extractors map[string]extractor.SourceExtractor,
	logger zerolog.Logger,
) *Service {
	return &Service{
		gCfg:       gCfg,
		logger:     logger.With().Str("component", "MonitorService").Logger(),
		store:      store,
		history:    history,
		differ:     differ.NewSnapshotDiffer(logger),
		notifier:   notif,
		extractors: extractors,
		policy:     ParseNotifyPolicy(gCfg.NotificationConfig.NotifyPolicy),
	}
}

// Run executes one monitoring run. Per-source failures never fail the run;
// the returned error is reserved for failures of the run as a whole.
func (s *Service) Run(ctx context.Context) error {
	startedAt := time.Now()
	runID := fmt.Sprintf("run-%s", startedAt.Format("20060102-150405"))
	runLogger := s.logger.With().Str("run_id", runID).Logger()

	runLogger.Info().
		Int("sources", len(s.gCfg.Sources)).
		Str("policy", string(s.policy)).
		Msg("Monitoring run started")

	historyID := s.recordRunStart(runID, startedAt)

	prevCounts, prevTitles := s.store.Load()

	// Snapshots staged this run start from the previous state so sources that
	// fail extraction keep their old entries through the end-of-run save.
	nextCounts := prevCounts.Clone()
	nextTitles := prevTitles.Clone()

	var eligible []models.ChangeRecord
	summary := models.RunSummary{
		RunID:     runID,
		StartedAt: startedAt,
		Status:    models.RunCompleted,
	}

	for _, src := range s.gCfg.Sources {
		record, state := s.checkSource(ctx, src, prevCounts, prevTitles, runLogger)
		summary.SourcesChecked++

		switch state {
		case stateFailed:
			summary.SourcesFailed++
			continue
		case stateNotifyEligible:
			summary.SourcesChanged++
			eligible = append(eligible, record)
		}

		// Terminal DONE for every non-failed source: stage the new observation.
		nextCounts[src.ID] = record.CurrentCount
		nextTitles[src.ID] = record.CurrentTitles
	}

	summary.DigestSent = s.sendDigest(eligible, runLogger)

	if err := s.store.Save(nextCounts, nextTitles); err != nil {
		runLogger.Warn().Err(err).Msg("Snapshot save was incomplete, continuing")
	}

	summary.EndedAt = time.Now()
	s.recordRunCompletion(historyID, summary)

	runLogger.Info().
		Int("checked", summary.SourcesChecked).
		Int("failed", summary.SourcesFailed).
		Int("changed", summary.SourcesChanged).
		Bool("digest_sent", summary.DigestSent).
		Msg("Monitoring run finished")
	return nil
}

// checkSource drives one source through PENDING -> EXTRACTED -> COMPARED ->
// {NOTIFY_ELIGIBLE | SKIPPED}. Any extraction failure short-circuits to
// FAILED and the source's old snapshot entry is preserved by the caller.
func (s *Service) checkSource(
	ctx context.Context,
	src config.SourceConfig,
	prevCounts models.CountSnapshot,
	prevTitles models.TitleSnapshot,
	runLogger zerolog.Logger,
) (models.ChangeRecord, sourceState) {
	sourceLogger := runLogger.With().Str("source_id", src.ID).Logger()
	sourceLogger.Debug().Str("state", string(statePending)).Msg("Checking source")

	ext, ok := s.extractors[src.EffectiveMode()]
	if !ok {
		sourceLogger.Error().Str("mode", src.EffectiveMode()).Msg("No extractor for source mode")
		return models.ChangeRecord{}, stateFailed
	}

	result, err := ext.Extract(ctx, src)
	if err != nil {
		sourceLogger.Warn().Err(err).Msg("Extraction failed, keeping previous snapshot for source")
		return models.ChangeRecord{}, stateFailed
	}
	sourceLogger.Debug().Str("state", string(stateExtracted)).Msg("Extraction finished")

	var previousCount *int
	if count, observed := prevCounts[src.ID]; observed {
		previousCount = &count
	}

	record := s.differ.BuildChangeRecord(src, previousCount, prevTitles[src.ID], result)
	sourceLogger.Debug().Str("state", string(stateCompared)).Msg("Comparison finished")

	state := stateSkipped
	if s.policy.Eligible(record) {
		state = stateNotifyEligible
	}

	sourceLogger.Info().
		Str("state", string(state)).
		Str("count_outcome", string(record.CountChange.Outcome)).
		Int("count", record.CurrentCount).
		Int("title_deltas", len(record.TitleDeltas)).
		Msg("Source checked")
	return record, state
}

// sendDigest delivers one batched digest for all eligible sources. Delivery
// failure is logged and absorbed; snapshots are still saved afterwards.
func (s *Service) sendDigest(eligible []models.ChangeRecord, runLogger zerolog.Logger) bool {
	if len(eligible) == 0 {
		runLogger.Info().Msg("No eligible changes, skipping digest")
		return false
	}

	if err := s.notifier.Notify(eligible); err != nil {
		runLogger.Warn().Err(err).Msg("Digest delivery failed, continuing")
		return false
	}
	return true
}

// recordRunStart writes the run's start row, best effort.
func (s *Service) recordRunStart(runID string, startedAt time.Time) int64 {
	if s.history == nil {
		return 0
	}
	id, err := s.history.RecordRunStart(runID, startedAt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record run start")
		return 0
	}
	return id
}

// recordRunCompletion completes the run's history row, best effort.
func (s *Service) recordRunCompletion(historyID int64, summary models.RunSummary) {
	if s.history == nil || historyID == 0 {
		return
	}
	if err := s.history.UpdateRunCompletion(historyID, summary); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record run completion")
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/datastore"
	"github.com/aleister1102/careerwatch/internal/extractor"
	"github.com/aleister1102/careerwatch/internal/logger"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/aleister1102/careerwatch/internal/monitor"
	"github.com/aleister1102/careerwatch/internal/notifier"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Flags
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")
	flag.Parse()

	// Consolidate alias flags
	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}

	// Optional .env file for SMTP credentials and config path overrides.
	_ = godotenv.Load()

	gCfg, err := config.LoadGlobalConfig(*globalConfigFile)
	if err != nil {
		log.Printf("[FATAL] Main: Could not load global config using path '%s': %v", *globalConfigFile, err)
		return 1
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Printf("[FATAL] Main: Could not initialize logger: %v", err)
		return 1
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Error().Err(err).Msg("Configuration validation failed")
		return 1
	}
	zLogger.Info().Int("sources", len(gCfg.Sources)).Msg("Configuration loaded and validated")

	// Scheduler invocations may overlap when a run is slow. The run lock makes
	// the late invocation exit cleanly instead of racing the snapshot files.
	runLock := datastore.NewRunLock(gCfg.StorageConfig.LockFilePath, zLogger)
	acquired, err := runLock.TryAcquire()
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not set up run lock")
		return 1
	}
	if !acquired {
		zLogger.Info().Msg("Another run is in progress, exiting")
		recordUnstartedRun(gCfg.StorageConfig.RunHistoryDBPath, zLogger, models.RunSkipped)
		return 0
	}
	defer runLock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	extractors, cleanup, err := buildExtractors(gCfg, zLogger)
	if err != nil {
		// A dead automation driver means no source can be observed; no
		// snapshot is touched for this run.
		zLogger.Error().Err(err).Msg("Failed to initialize extraction layer")
		recordUnstartedRun(gCfg.StorageConfig.RunHistoryDBPath, zLogger, models.RunFailed)
		return 1
	}
	defer cleanup()

	// Run history is auditing only; a broken sqlite file never blocks a run.
	var history *datastore.RunHistoryStore
	if gCfg.StorageConfig.RunHistoryDBPath != "" {
		history, err = datastore.NewRunHistoryStore(gCfg.StorageConfig.RunHistoryDBPath, zLogger)
		if err != nil {
			zLogger.Warn().Err(err).Msg("Run history store unavailable, continuing without run auditing")
			history = nil
		} else {
			defer history.Close()
		}
	}

	store := datastore.NewSnapshotStore(gCfg.StorageConfig, zLogger)
	emailNotifier := notifier.NewEmailNotifier(gCfg.NotificationConfig, zLogger)
	service := monitor.NewService(gCfg, store, history, emailNotifier, extractors, zLogger)

	if err := service.Run(ctx); err != nil {
		zLogger.Error().Err(err).Msg("Monitoring run failed")
		return 1
	}
	return 0
}

// recordUnstartedRun writes a history row for an invocation that never
// reached the source loop, so lock contention and extraction-layer failures
// stay visible in the run audit. Best effort only.
func recordUnstartedRun(dbPath string, zLogger zerolog.Logger, status models.RunStatus) {
	if dbPath == "" {
		return
	}
	history, err := datastore.NewRunHistoryStore(dbPath, zLogger)
	if err != nil {
		zLogger.Warn().Err(err).Msg("Run history store unavailable, run not recorded")
		return
	}
	defer history.Close()

	now := time.Now()
	runID := fmt.Sprintf("run-%s", now.Format("20060102-150405"))
	dbID, err := history.RecordRunStart(runID, now)
	if err != nil {
		zLogger.Warn().Err(err).Msg("Failed to record run start")
		return
	}

	summary := models.RunSummary{
		RunID:     runID,
		StartedAt: now,
		EndedAt:   now,
		Status:    status,
	}
	if err := history.UpdateRunCompletion(dbID, summary); err != nil {
		zLogger.Warn().Err(err).Msg("Failed to record run completion")
	}
}

// buildExtractors initializes one extractor per extraction mode that the
// configured sources actually use. The browser is launched only when some
// source needs it; launch failure aborts the whole run.
func buildExtractors(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (map[string]extractor.SourceExtractor, func(), error) {
	modes := make(map[string]bool)
	for _, src := range gCfg.Sources {
		modes[src.EffectiveMode()] = true
	}

	extractors := make(map[string]extractor.SourceExtractor)

	if modes["static"] {
		extractors["static"] = extractor.NewStaticExtractor(gCfg.ExtractorConfig, zLogger)
	}
	if modes["browser"] {
		browserExtractor, err := extractor.NewBrowserExtractor(gCfg.ExtractorConfig, zLogger)
		if err != nil {
			return nil, func() {}, err
		}
		extractors["browser"] = browserExtractor
	}

	cleanup := func() {
		for mode, ext := range extractors {
			if err := ext.Close(); err != nil {
				zLogger.Warn().Err(err).Str("mode", mode).Msg("Extractor shutdown reported an error")
			}
		}
	}
	return extractors, cleanup, nil
}

package extractor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// BrowserExtractor drives a headless Chromium instance via rod. One browser
// is launched per run and its navigation context is reused across sources; a
// launch failure is fatal to the whole run.
type BrowserExtractor struct {
	cfg      config.ExtractorConfig
	logger   zerolog.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowserExtractor launches the headless browser and connects to it.
func NewBrowserExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) (*BrowserExtractor, error) {
	extractorLogger := logger.With().Str("component", "BrowserExtractor").Logger()

	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if cfg.ChromePath != "" {
		l = l.Bin(cfg.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to launch browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, errorwrapper.WrapError(err, "failed to connect to browser")
	}

	extractorLogger.Info().Msg("Headless browser launched")
	return &BrowserExtractor{
		cfg:      cfg,
		logger:   extractorLogger,
		launcher: l,
		browser:  browser,
	}, nil
}

// Close shuts down the browser and cleans up the launcher.
func (be *BrowserExtractor) Close() error {
	var err error
	if be.browser != nil {
		err = be.browser.Close()
	}
	if be.launcher != nil {
		be.launcher.Cleanup()
	}
	be.logger.Info().Msg("Headless browser stopped")
	return err
}

// Extract navigates to the source URL, waits for the count element, and reads
// count plus titles. Every failure mode maps to an ExtractionError so the
// orchestrator can mark the source failed and continue.
func (be *BrowserExtractor) Extract(ctx context.Context, src config.SourceConfig) (models.ExtractResult, error) {
	var result models.ExtractResult

	loadCtx, cancel := context.WithTimeout(ctx, be.cfg.PageLoadTimeout())
	defer cancel()

	page, err := be.browser.Context(loadCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return result, errorwrapper.NewExtractionError(src.ID, "failed to create page", err)
	}
	defer page.Close()

	if be.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: be.cfg.UserAgent}); err != nil {
			be.logger.Warn().Err(err).Str("source_id", src.ID).Msg("Failed to set user agent")
		}
	}

	if err := page.Navigate(src.URL); err != nil {
		return result, errorwrapper.NewExtractionError(src.ID, "navigation failed", err)
	}
	if err := page.WaitLoad(); err != nil {
		return result, errorwrapper.NewExtractionError(src.ID, "page load timed out", err)
	}

	count, err := be.extractCount(page, src)
	if err != nil {
		return result, err
	}
	result.Count = count

	if src.TitleSelector != "" {
		result.Titles = be.extractTitles(page, src)
	}

	if be.cfg.CaptureScreenshots {
		result.ScreenshotPath = be.captureScreenshot(page, src.ID)
	}

	be.logger.Debug().
		Str("source_id", src.ID).
		Int("count", result.Count).
		Int("titles", len(result.Titles)).
		Msg("Extraction finished")
	return result, nil
}

// extractCount waits for the count element within the selector timeout and
// parses its text.
func (be *BrowserExtractor) extractCount(page *rod.Page, src config.SourceConfig) (int, error) {
	element, err := page.Timeout(be.cfg.SelectorTimeout()).Element(src.CountSelector)
	if err != nil {
		return 0, errorwrapper.NewExtractionError(src.ID, "count selector not found", errorwrapper.ErrSelectorTimeout)
	}

	text, err := element.Text()
	if err != nil {
		return 0, errorwrapper.NewExtractionError(src.ID, "failed to read count element text", err)
	}

	count, ok := parseCount(text)
	if !ok {
		be.logger.Warn().Str("source_id", src.ID).Str("raw_text", text).Msg("Count text is not numeric")
		return 0, errorwrapper.NewExtractionError(src.ID, "count text is not numeric", errorwrapper.ErrNonNumericCount)
	}
	return count, nil
}

// extractTitles reads the title elements in document order. Title extraction
// is best effort; a missing title selector only produces an empty list.
func (be *BrowserExtractor) extractTitles(page *rod.Page, src config.SourceConfig) []string {
	elements, err := page.Timeout(be.cfg.SelectorTimeout()).Elements(src.TitleSelector)
	if err != nil {
		be.logger.Warn().Err(err).Str("source_id", src.ID).Msg("Title selector lookup failed")
		return nil
	}

	raw := make([]string, 0, len(elements))
	for _, element := range elements {
		text, err := element.Text()
		if err != nil {
			continue
		}
		raw = append(raw, text)
	}
	return collectTitles(raw, src.EffectiveMaxTitles())
}

// captureScreenshot saves a full-page screenshot next to the other artifacts
// for the source. Best effort only.
func (be *BrowserExtractor) captureScreenshot(page *rod.Page, sourceID string) string {
	if err := os.MkdirAll(be.cfg.ScreenshotDir, 0755); err != nil {
		be.logger.Warn().Err(err).Msg("Failed to create screenshot directory")
		return ""
	}

	data, err := page.Screenshot(true, nil)
	if err != nil {
		be.logger.Warn().Err(err).Str("source_id", sourceID).Msg("Failed to capture screenshot")
		return ""
	}

	path := filepath.Join(be.cfg.ScreenshotDir, sourceID+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		be.logger.Warn().Err(err).Str("path", path).Msg("Failed to write screenshot")
		return ""
	}
	return path
}

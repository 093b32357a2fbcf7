package extractor

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

// StaticExtractor fetches a source page with a plain HTTP GET and evaluates
// the selectors against the server-rendered HTML. It serves sources whose
// results page does not need JavaScript, and costs far less than a browser.
type StaticExtractor struct {
	cfg    config.ExtractorConfig
	logger zerolog.Logger
}

// NewStaticExtractor creates a new StaticExtractor.
func NewStaticExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) *StaticExtractor {
	return &StaticExtractor{
		cfg:    cfg,
		logger: logger.With().Str("component", "StaticExtractor").Logger(),
	}
}

// Close is a no-op; the static extractor holds no long-lived resources.
func (se *StaticExtractor) Close() error {
	return nil
}

// Extract visits the source URL once and reads count and titles from the
// response document.
func (se *StaticExtractor) Extract(ctx context.Context, src config.SourceConfig) (models.ExtractResult, error) {
	var result models.ExtractResult

	collector := colly.NewCollector(
		colly.UserAgent(se.cfg.UserAgent),
		colly.StdlibContext(ctx),
	)
	collector.SetRequestTimeout(se.cfg.PageLoadTimeout())

	var (
		countText  string
		countFound bool
		rawTitles  []string
		visitErr   error
	)

	collector.OnHTML(src.CountSelector, func(e *colly.HTMLElement) {
		if countFound {
			return
		}
		countFound = true
		countText = selectionText(e.DOM)
	})

	if src.TitleSelector != "" {
		collector.OnHTML(src.TitleSelector, func(e *colly.HTMLElement) {
			rawTitles = append(rawTitles, selectionText(e.DOM))
		})
	}

	collector.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	if err := collector.Visit(src.URL); err != nil {
		return result, errorwrapper.NewExtractionError(src.ID, "request failed", err)
	}
	collector.Wait()

	if visitErr != nil {
		return result, errorwrapper.NewExtractionError(src.ID, "request failed", visitErr)
	}
	if !countFound {
		return result, errorwrapper.NewExtractionError(src.ID, "count selector not found", errorwrapper.ErrElementMissing)
	}

	count, ok := parseCount(countText)
	if !ok {
		se.logger.Warn().Str("source_id", src.ID).Str("raw_text", countText).Msg("Count text is not numeric")
		return result, errorwrapper.NewExtractionError(src.ID, "count text is not numeric", errorwrapper.ErrNonNumericCount)
	}

	result.Count = count
	result.Titles = collectTitles(rawTitles, src.EffectiveMaxTitles())

	se.logger.Debug().
		Str("source_id", src.ID).
		Int("count", result.Count).
		Int("titles", len(result.Titles)).
		Msg("Static extraction finished")
	return result, nil
}

// selectionText returns the text of the first node of the selection.
func selectionText(sel *goquery.Selection) string {
	return sel.First().Text()
}

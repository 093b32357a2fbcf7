package extractor

import (
	"context"
	"strconv"
	"strings"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/models"
)

// SourceExtractor loads one source's results page and returns the displayed
// result count plus up to MaxTitles top job titles in document order.
type SourceExtractor interface {
	// Extract loads the source page and reads count and titles. A selector
	// timeout, missing element, or non-numeric count text is returned as an
	// *errorwrapper.ExtractionError.
	Extract(ctx context.Context, src config.SourceConfig) (models.ExtractResult, error)

	// Close releases the extractor's resources.
	Close() error
}

// parseCount parses the trimmed text of the count element. The page renders a
// bare integer; anything else means the selector matched the wrong element
// and the extraction must fail rather than guess.
func parseCount(text string) (int, bool) {
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return count, true
}

// collectTitles trims raw title texts, drops empties, and caps the list at max.
func collectTitles(raw []string, max int) []string {
	titles := make([]string, 0, max)
	for _, text := range raw {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		titles = append(titles, trimmed)
		if len(titles) == max {
			break
		}
	}
	return titles
}

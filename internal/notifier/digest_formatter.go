package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/careerwatch/internal/models"
)

// BuildDigestSubject builds the subject line for a digest covering the given
// change records. The signed net count movement across all sources is carried
// in the subject so the inbox row alone tells the direction.
func BuildDigestSubject(records []models.ChangeRecord) string {
	netChange := 0
	for _, record := range records {
		netChange += record.CountChange.SignedDelta()
	}

	if len(records) == 1 {
		return fmt.Sprintf("Careers Alert: %s changed (%s)", records[0].SourceName, formatSignedDelta(netChange))
	}
	return fmt.Sprintf("Careers Alert: %d sources changed (%s)", len(records), formatSignedDelta(netChange))
}

// BuildDigestBody builds the plain-text digest body, one section per source.
func BuildDigestBody(records []models.ChangeRecord, now time.Time) string {
	var body strings.Builder

	body.WriteString("Careers Monitoring Digest\n\n")

	for _, record := range records {
		writeSourceSection(&body, record)
	}

	body.WriteString(fmt.Sprintf("Time: %s\n", now.Format("2006-01-02 15:04:05")))
	body.WriteString("\nThis is an automated alert from careerwatch.\n")
	return body.String()
}

// writeSourceSection renders one source's change section.
func writeSourceSection(body *strings.Builder, record models.ChangeRecord) {
	body.WriteString(fmt.Sprintf("== %s ==\n", record.SourceName))

	if record.PreviousCount != nil {
		body.WriteString(fmt.Sprintf("Previous count: %d\n", *record.PreviousCount))
	}
	body.WriteString(fmt.Sprintf("Current count: %d\n", record.CurrentCount))

	switch record.CountChange.Outcome {
	case models.CountIncreased, models.CountDecreased:
		body.WriteString(fmt.Sprintf("Change: %s jobs\n", formatSignedDelta(record.CountChange.SignedDelta())))
	case models.CountUnchanged:
		body.WriteString("Change: none\n")
	}

	if len(record.TitleDeltas) > 0 {
		body.WriteString("Top listings:\n")
		for _, delta := range record.TitleDeltas {
			body.WriteString(fmt.Sprintf("  - %s\n", delta.String()))
		}
	}

	body.WriteString(fmt.Sprintf("View jobs: %s\n\n", record.SourceURL))
}

// formatSignedDelta renders a delta with an explicit sign, "+3" or "-2".
func formatSignedDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

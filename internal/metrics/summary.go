package metrics

import (
	"github.com/drew/xunitmerge/internal/model"
	"github.com/joshdk/go-junit"
)

// Summarize parses a JUnit/XUnit XML file and returns aggregate stats.
// Uses github.com/joshdk/go-junit for robust parsing of all JUnit XML
// variants (single <testsuite>, <testsuites>, nested suites), so it gives
// an independent read of what a downstream consumer will see in the
// merged report.
func Summarize(path string) (*model.ReportStats, error) {
	suites, err := junit.IngestFile(path)
	if err != nil {
		return nil, err
	}

	stats := &model.ReportStats{}
	for _, suite := range suites {
		collect(suite, stats)
	}
	return stats, nil
}

func collect(suite junit.Suite, stats *model.ReportStats) {
	stats.Tests += len(suite.Tests)
	for _, test := range suite.Tests {
		switch test.Status {
		case junit.StatusFailed:
			stats.Failures++
		case junit.StatusError:
			stats.Errors++
		case junit.StatusSkipped:
			stats.Skipped++
		}
		stats.Time += test.Duration.Seconds()
	}
	for _, nested := range suite.Suites {
		collect(nested, stats)
	}
}

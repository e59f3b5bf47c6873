package model

// ReportStats is the aggregate summary of a merged report
type ReportStats struct {
	Tests    int     `json:"tests"`
	Failures int     `json:"failures"`
	Errors   int     `json:"errors"`
	Skipped  int     `json:"skipped"`
	Time     float64 `json:"time"`
}

// Passed returns the number of tests that neither failed, errored, nor
// were skipped
func (s *ReportStats) Passed() int {
	return s.Tests - s.Failures - s.Errors - s.Skipped
}

// OK reports whether the merged run is green
func (s *ReportStats) OK() bool {
	return s.Failures == 0 && s.Errors == 0
}

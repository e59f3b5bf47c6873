package model

import "testing"

func TestReportStats(t *testing.T) {
	tests := []struct {
		name       string
		stats      ReportStats
		wantPassed int
		wantOK     bool
	}{
		{
			name:       "all green",
			stats:      ReportStats{Tests: 5, Time: 1.2},
			wantPassed: 5,
			wantOK:     true,
		},
		{
			name:       "failures and skips",
			stats:      ReportStats{Tests: 10, Failures: 2, Skipped: 1},
			wantPassed: 7,
			wantOK:     false,
		},
		{
			name:       "errors only",
			stats:      ReportStats{Tests: 3, Errors: 1},
			wantPassed: 2,
			wantOK:     false,
		},
		{
			name:       "skips do not fail the run",
			stats:      ReportStats{Tests: 4, Skipped: 4},
			wantPassed: 0,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Passed(); got != tt.wantPassed {
				t.Errorf("Passed() = %d, want %d", got, tt.wantPassed)
			}
			if got := tt.stats.OK(); got != tt.wantOK {
				t.Errorf("OK() = %v, want %v", got, tt.wantOK)
			}
		})
	}
}

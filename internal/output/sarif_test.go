package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/codesweep/internal/review"
)

func TestSARIFWriterStructure(t *testing.T) {
	var buf strings.Builder
	if err := (&SARIFWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal([]byte(buf.String()), &log); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if log.Version != "2.1.0" {
		t.Errorf("Version = %q, want 2.1.0", log.Version)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("Runs = %d, want 1", len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "codesweep" {
		t.Errorf("driver name = %q", run.Tool.Driver.Name)
	}
	if len(run.Results) != 3 {
		t.Errorf("Results = %d, want 3", len(run.Results))
	}
	if len(run.Tool.Driver.Rules) != 3 {
		t.Errorf("Rules = %d, want 3 unique rules", len(run.Tool.Driver.Rules))
	}
	if run.Results[0].Level != "error" {
		t.Errorf("critical should map to error, got %q", run.Results[0].Level)
	}
	loc := run.Results[0].Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "deploy.sh" || loc.Region.StartLine != 3 {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestSARIFLevelMapping(t *testing.T) {
	tests := []struct {
		severity review.Severity
		want     string
	}{
		{review.SeverityCritical, "error"},
		{review.SeverityHigh, "error"},
		{review.SeverityMedium, "warning"},
		{review.SeverityLow, "note"},
		{review.SeverityInfo, "note"},
	}
	for _, tt := range tests {
		if got := sarifLevel(tt.severity); got != tt.want {
			t.Errorf("sarifLevel(%s) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestSARIFDedupesRules(t *testing.T) {
	report := sampleReport()
	report.Findings = append(report.Findings, report.Findings[0])
	report.Summary = review.ComputeSummary(report.Findings)

	log := buildSARIF(report)

	if len(log.Runs[0].Tool.Driver.Rules) != 3 {
		t.Errorf("Rules = %d, want 3 despite repeated finding", len(log.Runs[0].Tool.Driver.Rules))
	}
	if len(log.Runs[0].Results) != 4 {
		t.Errorf("Results = %d, want 4", len(log.Runs[0].Results))
	}
}

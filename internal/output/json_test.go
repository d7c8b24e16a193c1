package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/codesweep/internal/review"
)

func TestJSONWriterRoundTrip(t *testing.T) {
	var buf strings.Builder
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var decoded review.Report
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.File != "deploy.sh" {
		t.Errorf("File = %q, want %q", decoded.File, "deploy.sh")
	}
	if len(decoded.Findings) != 3 {
		t.Errorf("Findings = %d, want 3", len(decoded.Findings))
	}
	if decoded.Summary.Critical != 1 {
		t.Errorf("Summary.Critical = %d, want 1", decoded.Summary.Critical)
	}
	if decoded.Guidance == nil {
		t.Fatal("missing guidance")
	}
	if decoded.Findings[0].Severity != review.SeverityCritical {
		t.Errorf("Findings[0].Severity = %q, want critical", decoded.Findings[0].Severity)
	}
}

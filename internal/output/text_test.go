package output

import (
	"strings"
	"testing"
)

func TestTextWriterFindings(t *testing.T) {
	var buf strings.Builder
	w := &TextWriter{}

	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "deploy.sh") {
		t.Error("missing file name")
	}
	if !strings.Contains(out, "3 total") {
		t.Error("missing total count")
	}
	if !strings.Contains(out, "1 critical") || !strings.Contains(out, "1 medium") {
		t.Error("missing severity counts")
	}
	if !strings.Contains(out, "deploy.sh:3") {
		t.Error("missing finding location")
	}
	if !strings.Contains(out, "command-injection") {
		t.Error("missing rule id")
	}
	if !strings.Contains(out, "Pass arguments as a list") {
		t.Error("missing suggestion")
	}
	if !strings.Contains(out, "Never build shell commands") {
		t.Error("missing guidance section")
	}
}

func TestTextWriterSeverityOrder(t *testing.T) {
	var buf strings.Builder
	if err := (&TextWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	critical := strings.Index(out, "CRITICAL")
	medium := strings.Index(out, "MEDIUM")
	info := strings.Index(out, "INFO")
	if critical < 0 || medium < 0 || info < 0 {
		t.Fatal("missing severity sections")
	}
	if !(critical < medium && medium < info) {
		t.Errorf("severity sections out of order: %d, %d, %d", critical, medium, info)
	}
}

func TestTextWriterEmpty(t *testing.T) {
	var buf strings.Builder
	if err := (&TextWriter{}).Write(&buf, emptyReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "No issues found") {
		t.Error("missing clean message")
	}
	if strings.Contains(out, "Guidance") {
		t.Error("clean report should not render a guidance section")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if got := strings.Join(lines, " "); got != "one two three four five" {
		t.Errorf("wrapped text lost words: %q", got)
	}
}

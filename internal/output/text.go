package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/codesweep/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

var severityColors = map[review.Severity]*color.Color{
	review.SeverityCritical: color.New(color.FgRed, color.Bold),
	review.SeverityHigh:     color.New(color.FgRed),
	review.SeverityMedium:   color.New(color.FgYellow),
	review.SeverityLow:      color.New(color.FgCyan),
	review.SeverityInfo:     color.New(color.FgWhite),
}

func severityLabel(s review.Severity) string {
	label := strings.ToUpper(string(s))
	if c, ok := severityColors[s]; ok {
		return c.Sprint(label)
	}
	return label
}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	total := report.Summary.Total()
	ew.printf("Codesweep Review — %s\n", report.File)
	ew.println(strings.Repeat("─", 60))
	ew.printf("Findings: %d total", total)
	if total > 0 {
		ew.printf(" (%d critical, %d high, %d medium, %d low, %d info)",
			report.Summary.Critical,
			report.Summary.High,
			report.Summary.Medium,
			report.Summary.Low,
			report.Summary.Info,
		)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.println("\nNo issues found. Looks good!")
		writeGuidanceText(ew, report.Guidance)
		return ew.err
	}

	grouped := groupBySeverity(report.Findings)
	for _, sev := range severityOrder {
		findings := grouped[sev]
		if len(findings) == 0 {
			continue
		}

		ew.printf("\n%s\n", severityLabel(sev))
		ew.println(strings.Repeat("─", 40))

		for _, f := range findings {
			ew.printf("\n  %s:%d", f.File, f.Line)
			if f.Column > 0 {
				ew.printf(":%d", f.Column)
			}
			ew.printf("  [%s] %s\n", f.Tool, f.Rule)

			for _, line := range wrapText(f.Message, 70) {
				ew.printf("    %s\n", line)
			}

			if f.Suggestion != "" {
				ew.println("  Suggestion:")
				for _, line := range wrapText(f.Suggestion, 70) {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	writeGuidanceText(ew, report.Guidance)

	ew.printf("\nReviewed in %dms (checks: %dms, scanners: %dms)\n",
		report.Timing.TotalMs, report.Timing.ChecksMs, report.Timing.ScanMs)

	return ew.err
}

func writeGuidanceText(ew *errWriter, g *review.Guidance) {
	if g == nil || g.Clean {
		return
	}

	ew.println("\n" + strings.Repeat("─", 60))
	ew.println("Guidance")
	ew.println(strings.Repeat("─", 60))
	ew.printf("  %s\n", g.Reminder)
	if g.Pattern != "" {
		ew.printf("  Problem: %s\n", g.Pattern)
	}
	if g.Action != "" {
		ew.printf("  Action:  %s\n", g.Action)
	}
	if g.BadExample != "" {
		ew.printf("  Avoid:   %s\n", g.BadExample)
	}
	if g.GoodExample != "" {
		ew.printf("  Prefer:  %s\n", g.GoodExample)
	}
	for i, step := range g.Steps {
		ew.printf("  %d. %s\n", i+1, step)
	}
	if g.Reflection != "" {
		ew.printf("  Consider: %s\n", g.Reflection)
	}
}

// errWriter accumulates the first write error so the writer body stays
// free of per-line error checks.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}

// wrapText wraps s at width characters, breaking on spaces.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

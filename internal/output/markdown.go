package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	total := report.Summary.Total()

	fmt.Fprintf(w, "## Codesweep Review — `%s`\n\n", report.File)

	fmt.Fprintf(w, "| Severity | Count |\n")
	fmt.Fprintf(w, "|----------|-------|\n")
	fmt.Fprintf(w, "| Critical | %d    |\n", report.Summary.Critical)
	fmt.Fprintf(w, "| High     | %d    |\n", report.Summary.High)
	fmt.Fprintf(w, "| Medium   | %d    |\n", report.Summary.Medium)
	fmt.Fprintf(w, "| Low      | %d    |\n", report.Summary.Low)
	fmt.Fprintf(w, "| Info     | %d    |\n", report.Summary.Info)
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", total)

	if total == 0 {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		return nil
	}

	grouped := groupBySeverity(report.Findings)
	for _, sev := range severityOrder {
		findings := grouped[sev]
		if len(findings) == 0 {
			continue
		}

		icon := mdSeverityIcon(sev)
		label := strings.ToUpper(string(sev))

		fmt.Fprintf(w, "<details>\n<summary>%s %s (%d)</summary>\n\n", icon, label, len(findings))

		for _, f := range findings {
			fmt.Fprintf(w, "### %s\n\n", f.Rule)
			fmt.Fprintf(w, "**`%s:%d`** | %s | reported by %s\n\n", f.File, f.Line, f.Category, f.Tool)
			fmt.Fprintf(w, "%s\n\n", f.Message)

			if f.Suggestion != "" {
				fmt.Fprintf(w, "**Suggestion:**\n\n> %s\n\n",
					strings.ReplaceAll(f.Suggestion, "\n", "\n> "))
			}

			fmt.Fprintf(w, "---\n\n")
		}

		fmt.Fprintf(w, "</details>\n\n")
	}

	if g := report.Guidance; g != nil && !g.Clean {
		fmt.Fprintf(w, "### Guidance\n\n")
		fmt.Fprintf(w, "**%s**\n\n", g.Reminder)
		if g.Action != "" {
			fmt.Fprintf(w, "%s\n\n", g.Action)
		}
		if g.BadExample != "" && g.GoodExample != "" {
			fmt.Fprintf(w, "```\n// avoid\n%s\n\n// prefer\n%s\n```\n\n", g.BadExample, g.GoodExample)
		}
		for i, step := range g.Steps {
			fmt.Fprintf(w, "%d. %s\n", i+1, step)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "*Reviewed in %dms (checks: %dms, scanners: %dms)*\n",
		report.Timing.TotalMs, report.Timing.ChecksMs, report.Timing.ScanMs)

	return nil
}

func mdSeverityIcon(s review.Severity) string {
	switch s {
	case review.SeverityCritical:
		return ":stop_sign:"
	case review.SeverityHigh:
		return ":red_circle:"
	case review.SeverityMedium:
		return ":orange_circle:"
	case review.SeverityLow:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

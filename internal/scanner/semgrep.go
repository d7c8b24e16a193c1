package scanner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// semgrepOutput mirrors the parts of Semgrep's JSON report we consume.
type semgrepOutput struct {
	Results []struct {
		CheckID string `json:"check_id"`
		Path    string `json:"path"`
		Start   struct {
			Line int `json:"line"`
			Col  int `json:"col"`
		} `json:"start"`
		Extra struct {
			Message  string `json:"message"`
			Severity string `json:"severity"` // INFO|WARNING|ERROR
			Fix      string `json:"fix"`
		} `json:"extra"`
	} `json:"results"`
}

var semgrepSeverity = map[string]review.Severity{
	"error":   review.SeverityHigh,
	"warning": review.SeverityMedium,
	"info":    review.SeverityInfo,
}

// ParseSemgrep normalizes Semgrep JSON output.
func ParseSemgrep(raw []byte, path string) ([]review.Finding, error) {
	var doc semgrepOutput
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("semgrep output: %w", err)
	}

	findings := make([]review.Finding, 0, len(doc.Results))
	for _, r := range doc.Results {
		sev, ok := semgrepSeverity[strings.ToLower(strings.TrimSpace(r.Extra.Severity))]
		if !ok {
			sev = review.SeverityInfo
		}
		findings = append(findings, review.Finding{
			Severity:   sev,
			Rule:       r.CheckID,
			Message:    r.Extra.Message,
			File:       path,
			Line:       normalizeLine(r.Start.Line),
			Column:     r.Start.Col,
			Suggestion: r.Extra.Fix,
			Tool:       "semgrep",
			Category:   review.CategorySecurity,
		})
	}
	return findings, nil
}

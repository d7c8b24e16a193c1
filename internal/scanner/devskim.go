package scanner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// devskimIssue is one entry of DevSkim's flat JSON array output.
type devskimIssue struct {
	RuleID      string `json:"rule_id"`
	RuleName    string `json:"rule_name"`
	Severity    string `json:"severity"`
	Filename    string `json:"filename"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	FixIt       string `json:"fix_it"`
	Description string `json:"description"`
}

// devskimSeverity maps DevSkim's severity vocabulary to the canonical
// scale. The mapping is total: anything unrecognized falls back to info
// rather than dropping the finding.
var devskimSeverity = map[string]review.Severity{
	"critical":      review.SeverityCritical,
	"important":     review.SeverityHigh,
	"moderate":      review.SeverityMedium,
	"bestpractice":  review.SeverityLow,
	"best-practice": review.SeverityLow,
	"manualreview":  review.SeverityInfo,
	"manual-review": review.SeverityInfo,
}

// ParseDevSkim normalizes DevSkim JSON output.
func ParseDevSkim(raw []byte, path string) ([]review.Finding, error) {
	var issues []devskimIssue
	if err := json.Unmarshal(raw, &issues); err != nil {
		return nil, fmt.Errorf("devskim output: %w", err)
	}

	findings := make([]review.Finding, 0, len(issues))
	for _, is := range issues {
		sev, ok := devskimSeverity[strings.ToLower(strings.TrimSpace(is.Severity))]
		if !ok {
			sev = review.SeverityInfo
		}
		msg := is.Description
		if msg == "" {
			msg = is.RuleName
		}
		findings = append(findings, review.Finding{
			Severity:   sev,
			Rule:       is.RuleID,
			Message:    msg,
			File:       path,
			Line:       normalizeLine(is.StartLine),
			Column:     is.StartColumn,
			Suggestion: is.FixIt,
			Tool:       "devskim",
			Category:   review.CategorySecurity,
		})
	}
	return findings, nil
}

func normalizeLine(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

package scanner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// sarifReport mirrors the parts of CodeQL's SARIF v2.1.0 output we
// consume.
type sarifReport struct {
	Runs []struct {
		Results []struct {
			RuleID  string `json:"ruleId"`
			Level   string `json:"level"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

var codeqlSeverity = map[string]review.Severity{
	"error":   review.SeverityHigh,
	"warning": review.SeverityMedium,
	"note":    review.SeverityInfo,
	"none":    review.SeverityInfo,
}

// codeqlDefaultSeverity applies when a result carries no recognizable
// level; CodeQL security queries default to warning-level reporting.
const codeqlDefaultSeverity = review.SeverityMedium

// ParseCodeQL normalizes CodeQL SARIF output.
func ParseCodeQL(raw []byte, path string) ([]review.Finding, error) {
	var doc sarifReport
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("codeql output: %w", err)
	}

	var findings []review.Finding
	for _, run := range doc.Runs {
		for _, r := range run.Results {
			sev, ok := codeqlSeverity[strings.ToLower(strings.TrimSpace(r.Level))]
			if !ok {
				sev = codeqlDefaultSeverity
			}
			line, col := 1, 0
			if len(r.Locations) > 0 {
				region := r.Locations[0].PhysicalLocation.Region
				line = normalizeLine(region.StartLine)
				col = region.StartColumn
			}
			findings = append(findings, review.Finding{
				Severity: sev,
				Rule:     r.RuleID,
				Message:  r.Message.Text,
				File:     path,
				Line:     line,
				Column:   col,
				Tool:     "codeql",
				Category: review.CategorySecurity,
			})
		}
	}
	return findings, nil
}

package review

import (
	"fmt"
	"sort"
)

// Aggregate deduplicates and sorts findings into the final ordered list.
// Input order matters for dedup: callers concatenate pattern findings,
// then standards findings, then scanner findings in registration order,
// and the first finding for a (file, line, rule) key wins.
func Aggregate(findings []Finding) []Finding {
	return SortFindings(Deduplicate(findings))
}

// Deduplicate removes findings that share a (file, line, rule) key,
// keeping the first encountered. Two tools reporting the same rule at
// the same location collapse to one finding.
func Deduplicate(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	result := make([]Finding, 0, len(findings))
	for _, f := range findings {
		key := dedupeKey(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, f)
	}
	return result
}

func dedupeKey(f Finding) string {
	return fmt.Sprintf("%s|%d|%s", f.File, f.Line, f.Rule)
}

// SortFindings orders findings by severity (critical first), then line
// number ascending. The sort is stable: findings with equal severity and
// line keep their relative input order.
func SortFindings(findings []Finding) []Finding {
	sort.SliceStable(findings, func(i, j int) bool {
		ri := SeverityRank(findings[i].Severity)
		rj := SeverityRank(findings[j].Severity)
		if ri != rj {
			return ri > rj
		}
		return findings[i].Line < findings[j].Line
	})
	return findings
}

package review

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
// Unknown severities rank below info.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return SeverityRank(s) >= SeverityRank(Severity(threshold))
}

// ValidThreshold reports whether s names a usable severity threshold:
// "none", the empty string, or one of the five severity levels. Anything
// else would rank at zero and trip on every finding, so it is rejected
// up front.
func ValidThreshold(s string) bool {
	if s == "" || s == "none" {
		return true
	}
	return SeverityRank(Severity(s)) > 0
}

// Category represents the kind of finding.
type Category string

const (
	CategorySecurity    Category = "security"
	CategoryStandards   Category = "standards"
	CategoryMethodology Category = "methodology"
	CategoryLanguage    Category = "language-specific"
)

// ToolPattern is the tool name for findings produced by the in-process
// pattern matcher. External scanner findings carry the scanner name
// ("devskim", "semgrep", "codeql"); standards findings carry
// "standard:<id>" or "methodology:<id>".
const ToolPattern = "pattern"

// Finding represents a single normalized review finding.
type Finding struct {
	Severity   Severity `json:"severity"`
	Rule       string   `json:"rule"`
	Message    string   `json:"message"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Tool       string   `json:"tool"`
	Category   Category `json:"category,omitempty"`
}

// Summary holds counts by severity level.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// Total returns the total number of counted findings.
func (s Summary) Total() int {
	return s.Critical + s.High + s.Medium + s.Low + s.Info
}

// Guidance is remediation content derived from the most severe finding.
// It is display data only and never feeds back into the finding list.
type Guidance struct {
	Reminder      string   `json:"reminder"`
	Pattern       string   `json:"pattern"`
	Action        string   `json:"action"`
	Context       string   `json:"context,omitempty"`
	BadExample    string   `json:"badExample,omitempty"`
	GoodExample   string   `json:"goodExample,omitempty"`
	Steps         []string `json:"steps,omitempty"`
	Reflection    string   `json:"reflection,omitempty"`
	Reinforcement string   `json:"reinforcement,omitempty"`
	Clean         bool     `json:"clean,omitempty"`
}

// Timing contains performance metrics.
type Timing struct {
	ChecksMs int64 `json:"checksMs"`
	ScanMs   int64 `json:"scanMs"`
	TotalMs  int64 `json:"totalMs"`
}

// Report is the top-level output structure for one reviewed file.
type Report struct {
	Tool     string    `json:"tool"`
	Version  string    `json:"version"`
	RunID    string    `json:"runId"`
	File     string    `json:"file"`
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
	Guidance *Guidance `json:"guidance,omitempty"`
	Timing   Timing    `json:"timing"`
}

// ComputeSummary calculates the summary from findings. Counting is
// independent of finding order.
func ComputeSummary(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityHigh:
			s.High++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}

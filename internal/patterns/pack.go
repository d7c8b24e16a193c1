package patterns

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dshills/codesweep/internal/review"
)

// packEntry is the YAML shape of one user-supplied pattern.
type packEntry struct {
	ID         string   `yaml:"id"`
	Category   string   `yaml:"category"`
	Severity   string   `yaml:"severity"`
	Message    string   `yaml:"message"`
	Suggestion string   `yaml:"suggestion"`
	Regex      string   `yaml:"regex"`
	Extensions []string `yaml:"extensions"`
	SkipTests  bool     `yaml:"skipTests"`
}

type packFile struct {
	Patterns []packEntry `yaml:"patterns"`
}

// LoadPack loads user patterns from a YAML file. Returns nil patterns
// and nil error if path is empty.
func LoadPack(path string) ([]Pattern, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading patterns file: %w", err)
	}
	var pf packFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing patterns file: %w", err)
	}

	patterns := make([]Pattern, 0, len(pf.Patterns))
	for _, e := range pf.Patterns {
		if e.ID == "" {
			return nil, fmt.Errorf("patterns file: entry missing id")
		}
		re, err := regexp.Compile(e.Regex)
		if err != nil {
			return nil, fmt.Errorf("patterns file: compiling %q: %w", e.ID, err)
		}
		sev := review.Severity(e.Severity)
		if review.SeverityRank(sev) == 0 {
			sev = review.SeverityMedium
		}
		patterns = append(patterns, Pattern{
			ID:         e.ID,
			Category:   review.Category(e.Category),
			Severity:   sev,
			Message:    e.Message,
			Suggestion: e.Suggestion,
			Regexp:     re,
			Extensions: e.Extensions,
			SkipTests:  e.SkipTests,
		})
	}
	return patterns, nil
}

// Package guidance selects remediation content for a review result.
//
// Templates are looked up by rule id in a table populated at startup;
// rules without a specific template get a generic entry parameterized by
// the finding. Guidance is derived display data and never modifies the
// finding list it was built from.
package guidance

import (
	"fmt"

	"github.com/dshills/codesweep/internal/review"
)

// Catalog maps rule ids to guidance templates.
type Catalog struct {
	templates map[string]review.Guidance
}

// NewCatalog returns a Catalog with the built-in templates installed.
func NewCatalog() *Catalog {
	c := &Catalog{templates: make(map[string]review.Guidance)}
	for rule, g := range builtinTemplates {
		c.Register(rule, g)
	}
	return c
}

// Register installs a template for a rule id, replacing any existing one.
func (c *Catalog) Register(rule string, g review.Guidance) {
	c.templates[rule] = g
}

// Build derives guidance from a final, sorted finding list. The first
// finding is the most severe because the aggregator already ordered the
// list by severity and line. An empty list yields a positive clean
// result rather than remediation content.
func (c *Catalog) Build(findings []review.Finding) *review.Guidance {
	if len(findings) == 0 {
		return &review.Guidance{
			Clean:         true,
			Reminder:      "No issues found in this review.",
			Pattern:       "The file passed every enabled pattern, standard, and scanner check.",
			Action:        "Keep changes small and reviewed; no remediation needed.",
			Reinforcement: "Clean reviews keep the baseline trustworthy.",
		}
	}

	top := findings[0]
	if tmpl, ok := c.templates[top.Rule]; ok {
		g := tmpl
		return &g
	}
	return genericGuidance(top, countRule(findings, top.Rule))
}

func countRule(findings []review.Finding, rule string) int {
	n := 0
	for _, f := range findings {
		if f.Rule == rule {
			n++
		}
	}
	return n
}

func genericGuidance(f review.Finding, count int) *review.Guidance {
	g := &review.Guidance{
		Reminder: fmt.Sprintf("Review flagged %d %s issue(s); the most severe is %q at %s:%d.",
			count, f.Rule, f.Severity, f.File, f.Line),
		Pattern: f.Message,
		Action:  "Address the most severe finding first, then re-run the review.",
		Steps: []string{
			fmt.Sprintf("Open %s:%d and read the flagged code in context.", f.File, f.Line),
			"Fix the root cause rather than suppressing the rule.",
			"Re-run the review to confirm the finding is gone.",
		},
		Reflection: "Could this class of issue be prevented earlier, e.g. by a lint rule or template?",
	}
	if f.Suggestion != "" {
		g.Action = f.Suggestion
	}
	return g
}

var builtinTemplates = map[string]review.Guidance{
	"command-injection": {
		Reminder:    "Never build shell commands from untrusted input.",
		Pattern:     "A shell command interpolates a variable directly into its command string.",
		Action:      "Invoke the program with an argument vector and pass user input as discrete arguments.",
		Context:     "Shell interpolation lets crafted input inject additional commands or flags.",
		BadExample:  `exec("bash -c \"echo $USER_INPUT\"")`,
		GoodExample: `run("echo", []string{userInput})`,
		Steps: []string{
			"Replace string-built commands with an argument-vector API.",
			"Validate or allowlist any value that must influence the command.",
			"Add a regression test with shell metacharacters in the input.",
		},
		Reflection:    "Where else does this codebase spawn processes from composed strings?",
		Reinforcement: "Argument vectors make injection structurally impossible.",
	},
	"hardcoded-secret": {
		Reminder:    "Secrets do not belong in source control.",
		Pattern:     "A credential literal is assigned directly in the source.",
		Action:      "Rotate the exposed credential, then load it from the environment or a secret manager.",
		Context:     "Committed secrets persist in history even after removal.",
		BadExample:  `apiKey := "sk-live-abcdef123456"`,
		GoodExample: `apiKey := os.Getenv("API_KEY")`,
		Steps: []string{
			"Rotate the credential immediately.",
			"Move the value into configuration injected at runtime.",
			"Add a secret-scanning hook to block reintroduction.",
		},
		Reinforcement: "Rotation plus externalized config turns a leak into a non-event.",
	},
	"sql-injection": {
		Reminder:    "Queries and data travel separately.",
		Pattern:     "A SQL statement is concatenated with a runtime value.",
		Action:      "Use parameterized queries or a query builder with bound arguments.",
		BadExample:  `db.Query("SELECT * FROM users WHERE name = '" + name + "'")`,
		GoodExample: `db.Query("SELECT * FROM users WHERE name = ?", name)`,
		Steps: []string{
			"Convert the statement to placeholders with bound parameters.",
			"Audit surrounding queries built the same way.",
		},
		Reflection: "Is there a data-access layer where binding could be enforced once?",
	},
	"weak-hash": {
		Reminder: "MD5 and SHA-1 are broken for security purposes.",
		Pattern:  "A weak hash algorithm is used where collision resistance matters.",
		Action:   "Switch to SHA-256 or stronger; for passwords use a dedicated KDF such as bcrypt or argon2.",
		Steps: []string{
			"Identify whether the hash protects integrity, identity, or passwords.",
			"Pick the matching modern primitive and migrate stored values.",
		},
	},
	"eval-usage": {
		Reminder:    "Dynamic code execution is an injection surface.",
		Pattern:     "eval runs data as code.",
		Action:      "Replace eval with explicit parsing, a lookup table, or a restricted expression evaluator.",
		BadExample:  `eval(userExpression)`,
		GoodExample: `handlers[op](args)`,
	},
}

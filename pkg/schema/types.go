// Package schema defines the rule-set document format read by cmdlens.
//
// A rule-set document describes how the output of one tool (git, npm, docker, ...)
// is translated. Documents may be written in JSON or YAML; unknown fields are ignored.
package schema

// Category labels used by rule sets.
// The set is open: rule authors may use other labels, they are passed through untouched.
const (
	CategoryInfo     = "info"
	CategorySuccess  = "success"
	CategoryWarning  = "warning"
	CategoryError    = "error"
	CategoryProgress = "progress"
)

// RuleSetDocument is the on-disk shape of one rule set.
type RuleSetDocument struct {
	Patterns []PatternDef          `json:"patterns" yaml:"patterns"`
	Commands map[string]CommandDef `json:"commands,omitempty" yaml:"commands,omitempty"` // nil when absent
}

// PatternDef is a single translation rule as written by rule authors.
type PatternDef struct {
	Regex       string  `json:"regex" yaml:"regex"`
	Translation string  `json:"translation" yaml:"translation"` // "$1", "$2" refer to capture groups
	Emoji       string  `json:"emoji" yaml:"emoji"`
	Category    string  `json:"category" yaml:"category"`
	Suggestion  *string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// CommandDef carries descriptive metadata about a command.
type CommandDef struct {
	Description  string   `json:"description" yaml:"description"`
	CommonErrors []string `json:"common_errors,omitempty" yaml:"common_errors,omitempty"`
}

// SuggestionText returns the suggestion or "" when the document left it null.
func (p PatternDef) SuggestionText() string {
	if p.Suggestion == nil {
		return ""
	}
	return *p.Suggestion
}

// Package patterns loads rule-set documents and matches output lines against them.
package patterns

import (
	"fmt"
	"regexp"

	"github.com/DevSymphony/cmdlens/pkg/schema"
)

// Rule is a compiled translation rule. Rules are immutable once loaded.
type Rule struct {
	Pattern    *regexp.Regexp
	Template   string // translation with $1, $2 ... placeholders
	Emoji      string
	Category   string
	Suggestion string // "" when the rule has none
	Source     string // name of the rule set the rule was loaded from
}

// IsAlert reports whether the rule's category takes over the best-match slot.
func (r *Rule) IsAlert() bool {
	return r.Category == schema.CategoryError || r.Category == schema.CategoryWarning
}

// RuleSet is the compiled form of one rule-set document.
type RuleSet struct {
	Name     string
	Rules    []Rule
	Commands map[string]schema.CommandDef // passed through, not used for matching
}

// Match is the outcome of matching one line.
type Match struct {
	Rule   *Rule
	Groups []string // index 0 is the whole match
	Text   string   // template with placeholders substituted
}

// compileRule turns a pattern definition into a Rule.
// Patterns are compiled in multi-line mode so ^ and $ anchor to line boundaries.
func compileRule(source string, def schema.PatternDef) (Rule, error) {
	re, err := regexp.Compile("(?m)" + def.Regex)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid regex %q: %w", def.Regex, err)
	}
	return Rule{
		Pattern:    re,
		Template:   def.Translation,
		Emoji:      def.Emoji,
		Category:   def.Category,
		Suggestion: def.SuggestionText(),
		Source:     source,
	}, nil
}

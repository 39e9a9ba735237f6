package patterns

import (
	"strconv"
	"strings"
)

// Matcher holds the flat, ordered rule list of all loaded rule sets.
// It is read-only after construction and safe for concurrent use.
type Matcher struct {
	rules []Rule
}

// NewMatcher flattens rule sets in the given order.
// Earlier sets take priority, and rule order within a set is preserved.
func NewMatcher(sets []RuleSet) *Matcher {
	n := 0
	for _, set := range sets {
		n += len(set.Rules)
	}
	rules := make([]Rule, 0, n)
	for _, set := range sets {
		rules = append(rules, set.Rules...)
	}
	return &Matcher{rules: rules}
}

// Len returns the number of rules.
func (m *Matcher) Len() int {
	return len(m.rules)
}

// MatchLine returns the first rule whose pattern matches anywhere in line.
func (m *Matcher) MatchLine(line string) (Match, bool) {
	for i := range m.rules {
		rule := &m.rules[i]
		loc := rule.Pattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		groups := make([]string, len(loc)/2)
		for g := range groups {
			start, end := loc[2*g], loc[2*g+1]
			if start >= 0 && end >= 0 {
				groups[g] = line[start:end]
			}
		}
		return Match{
			Rule:   rule,
			Groups: groups,
			Text:   Substitute(rule.Template, groups),
		}, true
	}
	return Match{}, false
}

// Substitute replaces $n placeholders in template with groups[n].
//
// The template is scanned once from left to right, so text coming from a group is
// never substituted again. $0, indexes without a group and a bare $ stay literal.
// A group that did not participate in the match substitutes as "".
func Substitute(template string, groups []string) string {
	if !strings.Contains(template, "$") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(template) && template[j] >= '0' && template[j] <= '9' {
			j++
		}
		idx, width := groupIndex(template[i+1:j], len(groups))
		if width == 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteString(groups[idx])
		i += width
	}
	return b.String()
}

// groupIndex picks the longest digit prefix that names a group in [1, count).
func groupIndex(digits string, count int) (idx, width int) {
	for w := len(digits); w > 0; w-- {
		n, err := strconv.Atoi(digits[:w])
		if err == nil && n >= 1 && n < count {
			return n, w
		}
	}
	return 0, 0
}

// Better returns the rule that should represent a whole output after seeing candidate.
// The first matched rule wins by default; error and warning rules always take over,
// so the last of them wins.
func Better(current, candidate *Rule) *Rule {
	if current == nil || candidate.IsAlert() {
		return candidate
	}
	return current
}

package patterns

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/cmdlens/pkg/schema"
)

func mustRule(t *testing.T, def schema.PatternDef) Rule {
	t.Helper()
	rule, err := compileRule("test", def)
	require.NoError(t, err)
	return rule
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		groups   []string
		want     string
	}{
		{"no placeholders", "plain text", []string{"x"}, "plain text"},
		{"single group", "エラー: $1", []string{"error: boom", "boom"}, "エラー: boom"},
		{"two groups", "$2 -> $1", []string{"all", "a", "b"}, "b -> a"},
		{"missing group stays literal", "$1 and $2", []string{"all", "a"}, "a and $2"},
		{"group zero never substituted", "$0/$1", []string{"all", "a"}, "$0/a"},
		{"bare dollar", "cost $ $1", []string{"all", "5"}, "cost $ 5"},
		{"trailing dollar", "end$", []string{"all"}, "end$"},
		{"group text is not rescanned", "[$1] $2", []string{"all", "$2", "b"}, "[$2] b"},
		{"non participating group", "<$1>", []string{"all", ""}, "<>"},
		{"digit prefix", "$12", []string{"all", "a"}, "a2"},
		{"two digit group", "$10", []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "ten"}, "ten"},
		{"no groups at all", "$1", nil, "$1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.template, tt.groups))
		})
	}
}

func TestMatcher_MatchLine(t *testing.T) {
	errRule := schema.PatternDef{Regex: "error: (.+)", Translation: "エラー: $1", Emoji: "❌", Category: "error"}

	t.Run("substitutes capture groups", func(t *testing.T) {
		m := NewMatcher([]RuleSet{{Name: "common", Rules: []Rule{mustRule(t, errRule)}}})

		match, ok := m.MatchLine("error: file not found")
		require.True(t, ok)
		assert.Equal(t, "エラー: file not found", match.Text)
		assert.Equal(t, "❌", match.Rule.Emoji)
		assert.Equal(t, []string{"error: file not found", "file not found"}, match.Groups)
	})

	t.Run("first match wins across rule sets", func(t *testing.T) {
		first := mustRule(t, schema.PatternDef{Regex: "fatal", Translation: "first", Emoji: "1️⃣", Category: "info"})
		second := mustRule(t, schema.PatternDef{Regex: "fatal: (.+)", Translation: "second $1", Emoji: "2️⃣", Category: "error"})
		m := NewMatcher([]RuleSet{
			{Name: "git", Rules: []Rule{first}},
			{Name: "common", Rules: []Rule{second}},
		})

		match, ok := m.MatchLine("fatal: bad object")
		require.True(t, ok)
		assert.Equal(t, "first", match.Text)
		assert.Equal(t, "1️⃣", match.Rule.Emoji)
	})

	t.Run("anchors bind to the line", func(t *testing.T) {
		m := NewMatcher([]RuleSet{{Rules: []Rule{
			mustRule(t, schema.PatternDef{Regex: "^done$", Translation: "完了", Category: "success"}),
		}}})

		_, ok := m.MatchLine("not done")
		assert.False(t, ok)
		_, ok = m.MatchLine("done")
		assert.True(t, ok)
	})

	t.Run("no rules", func(t *testing.T) {
		m := NewMatcher(nil)
		_, ok := m.MatchLine("anything")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})
}

func TestCompileRule(t *testing.T) {
	suggestion := "try again"
	rule, err := compileRule("git", schema.PatternDef{
		Regex: "^x$", Translation: "t", Emoji: "e", Category: "warning", Suggestion: &suggestion,
	})
	require.NoError(t, err)
	assert.Equal(t, "try again", rule.Suggestion)
	assert.Equal(t, "git", rule.Source)
	assert.True(t, rule.Pattern.MatchString("a\nx\nb"), "pattern must be multi-line")

	_, err = compileRule("git", schema.PatternDef{Regex: "(unclosed"})
	assert.Error(t, err)
}

func TestBetter(t *testing.T) {
	info := &Rule{Pattern: regexp.MustCompile("a"), Category: "info"}
	success := &Rule{Pattern: regexp.MustCompile("b"), Category: "success"}
	errRule := &Rule{Pattern: regexp.MustCompile("c"), Category: "error"}
	warn := &Rule{Pattern: regexp.MustCompile("d"), Category: "warning"}

	t.Run("first rule becomes best", func(t *testing.T) {
		assert.Same(t, info, Better(nil, info))
	})

	t.Run("non alert does not displace", func(t *testing.T) {
		assert.Same(t, info, Better(info, success))
	})

	t.Run("last alert wins", func(t *testing.T) {
		var best *Rule
		for _, r := range []*Rule{info, errRule, warn} {
			best = Better(best, r)
		}
		assert.Same(t, warn, best)
	})

	t.Run("later error displaces earlier warning", func(t *testing.T) {
		assert.Same(t, errRule, Better(warn, errRule))
	})
}

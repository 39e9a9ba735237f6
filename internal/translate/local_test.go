package translate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/cmdlens/internal/patterns"
	"github.com/DevSymphony/cmdlens/pkg/schema"
)

const testRules = `{
  "patterns": [
    {"regex": "^error: (.+)$", "translation": "エラー: $1", "emoji": "❌", "category": "error", "suggestion": "ファイルを確認してください"},
    {"regex": "^warning: (.+)$", "translation": "警告: $1", "emoji": "⚠️", "category": "warning", "suggestion": null},
    {"regex": "^done$", "translation": "完了", "emoji": "✅", "category": "success"},
    {"regex": "^step (\\d+)$", "translation": "ステップ $1", "emoji": "⏳", "category": "progress"}
  ]
}`

func testRuleSets(t *testing.T) []patterns.RuleSet {
	t.Helper()
	fsys := fstest.MapFS{"common.json": {Data: []byte(testRules)}}
	sets := patterns.NewLoader(testLogger()).LoadFS(fsys)
	require.Len(t, sets, 1)
	return sets
}

func newTestLocal(t *testing.T) *LocalTranslator {
	t.Helper()
	return NewLocalTranslator(patterns.NewMatcher(testRuleSets(t)))
}

func TestLocalTranslator_Translate(t *testing.T) {
	local := newTestLocal(t)

	t.Run("single error line", func(t *testing.T) {
		got := local.Translate("error: file not found")

		assert.Equal(t, "error: file not found", got.OriginalText)
		assert.Equal(t, "❌ エラー: file not found", got.TranslatedText)
		assert.Equal(t, "❌", got.Emoji)
		assert.Equal(t, schema.CategoryError, got.Category)
		assert.Equal(t, "ファイルを確認してください", got.Suggestion)
		assert.Equal(t, 1.0, got.Confidence)
		assert.Equal(t, SourceLocal, got.Source)
	})

	t.Run("unmatched lines pass through", func(t *testing.T) {
		got := local.Translate("step 1\nsomething odd\ndone")

		assert.Equal(t, "⏳ ステップ 1\nsomething odd\n✅ 完了", got.TranslatedText)
		assert.InDelta(t, 2.0/3.0, got.Confidence, 1e-9)
		// first matched rule stays best when no alert follows
		assert.Equal(t, schema.CategoryProgress, got.Category)
	})

	t.Run("alert takes over best match", func(t *testing.T) {
		got := local.Translate("done\nwarning: disk almost full\nstep 2")

		assert.Equal(t, schema.CategoryWarning, got.Category)
		assert.Equal(t, "⚠️", got.Emoji)
		assert.Empty(t, got.Suggestion)
	})

	t.Run("last alert wins", func(t *testing.T) {
		got := local.Translate("error: a\nwarning: b")

		assert.Equal(t, schema.CategoryWarning, got.Category)
	})

	t.Run("blank lines are dropped", func(t *testing.T) {
		got := local.Translate("\n  \nerror: x\n\n")

		assert.Equal(t, "❌ エラー: x", got.TranslatedText)
		assert.Equal(t, 1.0, got.Confidence)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		got := local.Translate("error: x\r\ndone\r\n")

		assert.Equal(t, "❌ エラー: x\n✅ 完了", got.TranslatedText)
		assert.Equal(t, 1.0, got.Confidence)
	})

	t.Run("no matches", func(t *testing.T) {
		got := local.Translate("hello\nworld")

		assert.Equal(t, "hello\nworld", got.TranslatedText)
		assert.Zero(t, got.Confidence)
		assert.Equal(t, schema.CategoryInfo, got.Category)
		assert.Empty(t, got.Emoji)
		assert.Empty(t, got.Suggestion)
	})

	t.Run("empty output", func(t *testing.T) {
		got := local.Translate("")

		assert.Empty(t, got.TranslatedText)
		assert.Zero(t, got.Confidence)
		assert.Equal(t, SourceLocal, got.Source)
	})
}

func TestLocalTranslator_BlankLinesNeverMatch(t *testing.T) {
	rules := `{"patterns": [
  {"regex": "^\\s*$", "translation": "空行", "emoji": "⬜", "category": "info"},
  {"regex": "^done$", "translation": "完了", "emoji": "✅", "category": "success"}
]}`
	sets := patterns.NewLoader(testLogger()).LoadFS(fstest.MapFS{"common.json": {Data: []byte(rules)}})
	require.Len(t, sets, 1)
	local := NewLocalTranslator(patterns.NewMatcher(sets))

	got := local.Translate("done\n   \n\ndone")

	assert.Equal(t, "✅ 完了\n✅ 完了", got.TranslatedText)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, schema.CategorySuccess, got.Category)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lf", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"progress frames", "step 1\rstep 2\rstep 3\ndone", []string{"step 3", "done"}},
		{"trailing carriage return", "step 1\rstep 2\r\n", []string{"step 2", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLines(tt.input))
		})
	}
}

func TestLocalTranslator_ProgressOutput(t *testing.T) {
	local := newTestLocal(t)

	got := local.Translate("step 1\rstep 2\rstep 3\ndone\n")

	assert.Equal(t, "⏳ ステップ 3\n✅ 完了", got.TranslatedText)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestLocalTranslator_ConfidenceBounds(t *testing.T) {
	local := newTestLocal(t)

	inputs := []string{
		"",
		"\n\n\n",
		"error: a",
		"error: a\nerror: b\n\n\nnoise",
		"noise\r\n\r\n",
		"done\ndone\ndone\n",
	}
	for _, in := range inputs {
		got := local.Translate(in)
		assert.GreaterOrEqual(t, got.Confidence, 0.0, "input %q", in)
		assert.LessOrEqual(t, got.Confidence, 1.0, "input %q", in)
	}
}

func TestLocalTranslator_DefaultRules(t *testing.T) {
	sets := patterns.NewLoader(testLogger()).LoadFS(patterns.DefaultFS())
	local := NewLocalTranslator(patterns.NewMatcher(sets))

	got := local.Translate("error: file not found")

	assert.Equal(t, "❌ エラー: file not found", got.TranslatedText)
	assert.Equal(t, schema.CategoryError, got.Category)
	assert.Equal(t, 1.0, got.Confidence)
}

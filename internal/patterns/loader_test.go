package patterns

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleSetNames(sets []RuleSet) []string {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return names
}

func TestLoader_LoadFS(t *testing.T) {
	loader := NewLoader(zerolog.Nop())

	t.Run("keeps fixed source order", func(t *testing.T) {
		fsys := fstest.MapFS{
			"common.json": {Data: []byte(`{"patterns":[{"regex":"c","translation":"C","emoji":"c","category":"info"}]}`)},
			"git.json":    {Data: []byte(`{"patterns":[{"regex":"g","translation":"G","emoji":"g","category":"info"}]}`)},
		}

		sets := loader.LoadFS(fsys)
		assert.Equal(t, []string{"git", "common"}, ruleSetNames(sets))
	})

	t.Run("malformed source is skipped and loading continues", func(t *testing.T) {
		fsys := fstest.MapFS{
			"git.json":    {Data: []byte(`{"patterns": [`)},
			"npm.json":    {Data: []byte(`{"patterns":[{"regex":"n","translation":"N","emoji":"n","category":"info"}]}`)},
			"docker.json": {Data: []byte(`not json`)},
		}

		sets := loader.LoadFS(fsys)
		require.Len(t, sets, 1)
		assert.Equal(t, "npm", sets[0].Name)
	})

	t.Run("invalid regex skips only that rule", func(t *testing.T) {
		fsys := fstest.MapFS{
			"git.json": {Data: []byte(`{"patterns":[
				{"regex":"ok1","translation":"1","emoji":"","category":"info"},
				{"regex":"(?<=bad)","translation":"2","emoji":"","category":"info"},
				{"regex":"ok3","translation":"3","emoji":"","category":"info"}
			]}`)},
		}

		sets := loader.LoadFS(fsys)
		require.Len(t, sets, 1)
		require.Len(t, sets[0].Rules, 2)
		assert.Equal(t, "1", sets[0].Rules[0].Template)
		assert.Equal(t, "3", sets[0].Rules[1].Template)
	})

	t.Run("unknown fields and null suggestion", func(t *testing.T) {
		fsys := fstest.MapFS{
			"git.json": {Data: []byte(`{
				"version": 3,
				"patterns":[{"regex":"x","translation":"X","emoji":"e","category":"info","suggestion":null,"priority":9}],
				"commands":{"status":{"description":"show status","common_errors":null}}
			}`)},
		}

		sets := loader.LoadFS(fsys)
		require.Len(t, sets, 1)
		assert.Empty(t, sets[0].Rules[0].Suggestion)
		assert.Equal(t, "show status", sets[0].Commands["status"].Description)
	})

	t.Run("yaml documents", func(t *testing.T) {
		fsys := fstest.MapFS{
			"docker.yaml": {Data: []byte(`
patterns:
  - regex: "^Step (\\d+)/(\\d+)"
    translation: "ステップ $1/$2"
    emoji: "🔨"
    category: progress
    suggestion: null
`)},
		}

		sets := loader.LoadFS(fsys)
		require.Len(t, sets, 1)
		assert.Equal(t, "docker", sets[0].Name)

		m := NewMatcher(sets)
		match, ok := m.MatchLine("Step 2/5 : RUN make")
		require.True(t, ok)
		assert.Equal(t, "ステップ 2/5", match.Text)
	})

	t.Run("json takes precedence over yaml", func(t *testing.T) {
		fsys := fstest.MapFS{
			"npm.json": {Data: []byte(`{"patterns":[{"regex":"a","translation":"json","category":"info"}]}`)},
			"npm.yml":  {Data: []byte("patterns:\n  - regex: a\n    translation: yaml\n")},
		}

		sets := loader.LoadFS(fsys, "npm")
		require.Len(t, sets, 1)
		assert.Equal(t, "json", sets[0].Rules[0].Template)
	})

	t.Run("nothing present", func(t *testing.T) {
		assert.Empty(t, loader.LoadFS(fstest.MapFS{}))
	})
}

func TestLoader_LoadDir(t *testing.T) {
	loader := NewLoader(zerolog.Nop())

	t.Run("reads documents from disk", func(t *testing.T) {
		dir := t.TempDir()
		doc := `{"patterns":[{"regex":"x","translation":"X","emoji":"e","category":"info"}]}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "common.json"), []byte(doc), 0644))

		sets, err := loader.LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"common"}, ruleSetNames(sets))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := loader.LoadDir(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, ErrRulesDir)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		_, err := loader.LoadDir(path)
		assert.ErrorIs(t, err, ErrRulesDir)
	})
}

func TestLoader_Check(t *testing.T) {
	loader := NewLoader(zerolog.Nop())
	fsys := fstest.MapFS{
		"git.json": {Data: []byte(`{"patterns":[{"regex":"(","translation":"","category":"info"},{"regex":"ok","translation":"","category":"info"}]}`)},
		"npm.json": {Data: []byte(`{`)},
	}

	reports := loader.Check(fsys)
	require.Len(t, reports, 4)

	assert.True(t, reports[0].Found())
	assert.Equal(t, 1, reports[0].Rules)
	require.Len(t, reports[0].Invalid, 1)
	assert.Equal(t, 0, reports[0].Invalid[0].Index)

	assert.Error(t, reports[1].Err)

	assert.False(t, reports[2].Found())
	assert.NoError(t, reports[2].Err)
}

func TestDefaultFS(t *testing.T) {
	loader := NewLoader(zerolog.Nop())

	for _, report := range loader.Check(DefaultFS()) {
		t.Run(report.Name, func(t *testing.T) {
			require.True(t, report.Found())
			require.NoError(t, report.Err)
			assert.Empty(t, report.Invalid)
			assert.NotZero(t, report.Rules)
		})
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/cmdlens/internal/translate"
)

// runCommand executes the root command with args and returns what it printed.
// Flag variables are package globals, so they are reset before every run.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	translateCommand, translateFile = "", ""
	translateNoRemote, translateJSON = false, false
	verbose, noColor, projectRoot = false, false, ""
	t.Setenv(rulesDirEnv, "")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCleanAPIKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "sk-abc123", "sk-abc123"},
		{"surrounding whitespace", "  sk-abc123\n", "sk-abc123"},
		{"pasted control characters", "\x1b[200~sk-abc\t123\x1b[201~", "[200~sk-abc123[201~"},
		{"non-ascii", "sk-ａbc", "sk-bc"},
		{"empty", " \r\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanAPIKey(tt.input))
		})
	}
}

func TestEnsureGitignore(t *testing.T) {
	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".gitignore")

		require.NoError(t, ensureGitignore(path, ".cmdlens/.env"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# cmdlens API keys\n.cmdlens/.env\n", string(data))
	})

	t.Run("appends once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".gitignore")
		require.NoError(t, os.WriteFile(path, []byte("node_modules/\n"), 0o644))

		require.NoError(t, ensureGitignore(path, ".cmdlens/.env"))
		require.NoError(t, ensureGitignore(path, ".cmdlens/.env"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "node_modules/\n\n# cmdlens API keys\n.cmdlens/.env\n", string(data))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("defaults to warn", func(t *testing.T) {
		t.Setenv(logLevelEnv, "")
		assert.Equal(t, zerolog.WarnLevel, newLogger(&bytes.Buffer{}, false).GetLevel())
	})

	t.Run("environment level", func(t *testing.T) {
		t.Setenv(logLevelEnv, "info")
		assert.Equal(t, zerolog.InfoLevel, newLogger(&bytes.Buffer{}, false).GetLevel())
	})

	t.Run("invalid environment level is ignored", func(t *testing.T) {
		t.Setenv(logLevelEnv, "loud")
		assert.Equal(t, zerolog.WarnLevel, newLogger(&bytes.Buffer{}, false).GetLevel())
	})

	t.Run("verbose wins", func(t *testing.T) {
		t.Setenv(logLevelEnv, "error")
		assert.Equal(t, zerolog.DebugLevel, newLogger(&bytes.Buffer{}, true).GetLevel())
	})
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "sk-a********wxyz", maskKey("sk-abcdefghijklmnopqrstuvwxyz"))
}

func TestTranslateCommand(t *testing.T) {
	t.Run("json from stdin", func(t *testing.T) {
		out, err := runCommand(t, "error: file not found\n",
			"translate", "--root", t.TempDir(), "--no-remote", "--json", "--command", "cat missing.txt")
		require.NoError(t, err)

		var result translate.Result
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "❌ エラー: file not found", result.TranslatedText)
		assert.Equal(t, translate.SourceLocal, result.Source)
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("text from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")
		require.NoError(t, os.WriteFile(path, []byte("error: file not found\n"), 0o644))

		out, err := runCommand(t, "", "translate", "--root", t.TempDir(), "--no-remote", "--no-color", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "エラー: file not found")
		assert.Contains(t, out, "local_pattern")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCommand(t, "", "translate", "--root", t.TempDir(), "--no-remote", "--file", filepath.Join(t.TempDir(), "nope.log"))
		assert.ErrorContains(t, err, "failed to read")
	})
}

func TestRulesCheckCommand(t *testing.T) {
	t.Run("built-in rules are valid", func(t *testing.T) {
		out, err := runCommand(t, "", "rules", "check", "--root", t.TempDir(), "--no-color")
		require.NoError(t, err)
		assert.Contains(t, out, "all rule sets are valid")
	})

	t.Run("invalid pattern is reported", func(t *testing.T) {
		dir := t.TempDir()
		doc := `{"patterns": [{"regex": "(unclosed", "translation": "x", "category": "error"}]}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "git.json"), []byte(doc), 0o644))

		out, err := runCommand(t, "", "rules", "check", dir, "--root", t.TempDir(), "--no-color")
		assert.ErrorContains(t, err, "1 problem(s) found")
		assert.Contains(t, out, "(unclosed")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := runCommand(t, "", "rules", "check", filepath.Join(t.TempDir(), "nope"), "--no-color")
		assert.Error(t, err)
	})
}

func TestExplainCommand(t *testing.T) {
	out, err := runCommand(t, "", "explain", "git", "status", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "git status")

	_, err = runCommand(t, "", "explain", "frobnicate", "--no-color")
	assert.ErrorContains(t, err, "no explanation available")
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "cmdlens version 1.2.3\n", out)
	assert.Equal(t, "1.2.3", GetVersion())
}

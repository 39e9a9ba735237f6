package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/cmdlens/internal/translate"
	"github.com/DevSymphony/cmdlens/internal/ui"
)

var (
	translateCommand  string
	translateFile     string
	translateNoRemote bool
	translateJSON     bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate command output read from stdin or a file",
	Long: `Translate the output of a shell command into a plain-language explanation.

Output is read from stdin unless --file is given. Pass the command line that
produced it with --command; it is used for caching and to give the language
model context.`,
	Example: `  git push 2>&1 | cmdlens translate --command "git push"
  cmdlens translate --file build.log --no-remote
  npm install 2>&1 | cmdlens translate --json`,
	Args: cobra.NoArgs,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&translateCommand, "command", "c", "", "command line that produced the output")
	translateCmd.Flags().StringVarP(&translateFile, "file", "f", "", "read output from file instead of stdin")
	translateCmd.Flags().BoolVar(&translateNoRemote, "no-remote", false, "never call the language model")
	translateCmd.Flags().BoolVar(&translateJSON, "json", false, "print the result as JSON")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	output, err := readOutput(cmd.InOrStdin(), translateFile)
	if err != nil {
		return err
	}

	s, err := newSession(!translateNoRemote)
	if err != nil {
		return err
	}
	defer s.Close()

	result := s.engine.Translate(cmd.Context(), translateCommand, output, s.useRemote)

	if translateJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(cmd.OutOrStdout(), result)
	return nil
}

func readOutput(stdin io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printResult(w io.Writer, r translate.Result) {
	if strings.TrimSpace(r.TranslatedText) == "" {
		fmt.Fprintln(w, ui.Info("no output to translate"))
		return
	}
	fmt.Fprintln(w, ui.Category(r.Category, r.TranslatedText))
	if r.Suggestion != "" {
		fmt.Fprintf(w, "\n💡 %s\n", r.Suggestion)
	}
	fmt.Fprintln(w, ui.Faint(fmt.Sprintf("\n[%s · %s · confidence %.0f%%]", r.Source, r.Category, r.Confidence*100)))
}

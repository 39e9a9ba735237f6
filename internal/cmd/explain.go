package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/cmdlens/internal/translate"
	"github.com/DevSymphony/cmdlens/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:     "explain <command...>",
	Short:   "Explain what a well-known command does",
	Example: `  cmdlens explain git rebase
  cmdlens explain "docker compose up -d"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")
		explanation, ok := translate.ExplainCommand(command)
		if !ok {
			return fmt.Errorf("no explanation available for %q", command)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.TitleWithDesc(command, explanation))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

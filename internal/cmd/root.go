package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/cmdlens/internal/ui"
)

var (
	// verbose is a global flag for debug logging
	verbose bool
	// projectRoot is where .cmdlens/ is looked up; empty means the working directory
	projectRoot string
	noColor     bool

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "cmdlens",
	Short: "cmdlens - explain shell command output in plain language",
	Long: `cmdlens translates raw output of git, npm, docker and common shell commands
into short, localized explanations with an emoji, a category and a suggestion.

Output is matched against local rule sets first. When too few lines match,
a language model (OpenAI or Gemini) can explain the output instead.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(os.Stderr, verbose)
		if noColor {
			ui.SetColor(false)
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", "", "project directory containing .cmdlens/ (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.SilenceErrors = true
}

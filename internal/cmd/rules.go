package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/cmdlens/internal/patterns"
	"github.com/DevSymphony/cmdlens/internal/ui"
	"github.com/DevSymphony/cmdlens/internal/util/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect translation rule sets",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded rule sets in matching priority order",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate rule-set documents and report invalid patterns",
	Long: `Validate the rule sets in dir (default: the configured rules directory, or the
built-in rule sets). Every source is parsed and every regex compiled; the
command fails if any document cannot be parsed or any pattern is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRulesCheck,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	sets := s.engine.RuleSets()
	if len(sets) == 0 {
		fmt.Fprintln(out, ui.Warn("no rule sets loaded"))
		return nil
	}
	for i, set := range sets {
		fmt.Fprintln(out, ui.TitleWithDesc(set.Name, fmt.Sprintf("%d rules (priority %d)", len(set.Rules), i+1)))
		names := make([]string, 0, len(set.Commands))
		for name := range set.Commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(out, ui.Indent(fmt.Sprintf("%s: %s", name, set.Commands[name].Description)))
		}
	}
	return nil
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	fsys, label, err := rulesSource(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.TitleWithDesc("rules", label))

	problems := 0
	for _, report := range patterns.NewLoader(logger).Check(fsys) {
		switch {
		case report.Err != nil:
			problems++
			fmt.Fprintln(out, ui.Error(fmt.Sprintf("%s: %v", report.Name, report.Err)))
		case !report.Found():
			fmt.Fprintln(out, ui.Info(fmt.Sprintf("%s: not present", report.Name)))
		case len(report.Invalid) > 0:
			problems += len(report.Invalid)
			fmt.Fprintln(out, ui.Warn(fmt.Sprintf("%s: %d rules, %d invalid", report.Path, report.Rules, len(report.Invalid))))
			for _, bad := range report.Invalid {
				fmt.Fprintln(out, ui.Indent(fmt.Sprintf("#%d %q: %v", bad.Index, bad.Regex, bad.Err)))
			}
		default:
			fmt.Fprintln(out, ui.OK(fmt.Sprintf("%s: %d rules", report.Path, report.Rules)))
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Fprintln(out, ui.Done("all rule sets are valid"))
	return nil
}

// rulesSource resolves the directory to check: argument, then configuration, then built-in rules.
func rulesSource(args []string) (fs.FS, string, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		cfg, err := config.LoadProjectConfig(projectRoot)
		if err != nil {
			return nil, "", err
		}
		dir = rulesDir(cfg)
	}
	if dir == "" {
		return patterns.DefaultFS(), "built-in rule sets", nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", patterns.ErrRulesDir, err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("%w: %s is not a directory", patterns.ErrRulesDir, dir)
	}
	return os.DirFS(dir), dir, nil
}

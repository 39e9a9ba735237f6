package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/cmdlens/internal/llm"
	"github.com/DevSymphony/cmdlens/internal/ui"
	"github.com/DevSymphony/cmdlens/internal/util/config"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Manage the language model used for remote translation",
	Long: `Configure the language model cmdlens falls back to when local rules
cannot explain an output.

Supported providers:
  - openaiapi: OpenAI chat completions (OPENAI_API_KEY)
  - gemini:    Google Gemini (GEMINI_API_KEY)

Provider and model are stored in .cmdlens/config.json, API keys in .cmdlens/.env.
Environment variables (LLM_PROVIDER, LLM_MODEL, *_API_KEY) take precedence.`,
}

var llmSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively choose provider, model and API key",
	Args:  cobra.NoArgs,
	RunE:  runLLMSetup,
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current LLM configuration",
	Args:  cobra.NoArgs,
	RunE:  runLLMStatus,
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test request to the configured provider",
	Args:  cobra.NoArgs,
	RunE:  runLLMTest,
}

func init() {
	rootCmd.AddCommand(llmCmd)
	llmCmd.AddCommand(llmSetupCmd)
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmTestCmd)
}

var selectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}?",
	Active:   "▸ {{ . | cyan }}",
	Inactive: "  {{ . }}",
	Selected: "✓ {{ . | green }}",
}

func runLLMSetup(_ *cobra.Command, _ []string) error {
	fmt.Println("🤖 LLM Provider Configuration")
	fmt.Println()

	providers := llm.Providers()
	options := make([]string, 0, len(providers)+1)
	for _, p := range providers {
		options = append(options, p.DisplayName)
	}
	options = append(options, "Skip")

	selectPrompt := promptui.Select{
		Label:     "Select the provider for remote translation",
		Items:     options,
		Templates: selectTemplates,
		Size:      len(options),
	}
	idx, _, err := selectPrompt.Run()
	if err != nil || idx >= len(providers) {
		fmt.Println("\nSetup skipped")
		return nil
	}
	info := providers[idx]

	model := info.DefaultModel
	if labels, ids, def := info.ModelChoices(); len(labels) > 0 {
		modelPrompt := promptui.Select{
			Label:     "Select model",
			Items:     labels,
			Templates: selectTemplates,
			Size:      len(labels),
			CursorPos: def,
		}
		i, _, err := modelPrompt.Run()
		if err != nil {
			fmt.Println("\nSetup cancelled")
			return nil
		}
		model = ids[i]
	}

	if err := config.UpdateProjectConfigLLM(projectRoot, info.Name, model); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	ui.PrintOK(fmt.Sprintf("Provider set to %s (%s)", info.DisplayName, model))
	fmt.Println(ui.Indent("Saved to " + config.GetProjectConfigPath(projectRoot)))

	if info.APIKey.Required {
		fmt.Println()
		promptAPIKeyConfiguration(info, true)
	}
	return nil
}

func runLLMStatus(_ *cobra.Command, _ []string) error {
	fmt.Println("🤖 LLM Status")
	fmt.Println()

	projectCfg, err := config.LoadProjectConfig(projectRoot)
	if err != nil {
		return err
	}
	cfg, err := llm.LoadConfig(projectRoot)
	if err != nil {
		return err
	}

	provider := cfg.Provider
	if provider == "" {
		provider = "(none)"
	}
	model := cfg.Model
	if model == "" {
		if info, ok := llm.Lookup(cfg.Provider); ok {
			model = info.DefaultModel + " (default)"
		}
	}

	fmt.Printf("  Provider: %s\n", provider)
	if model != "" {
		fmt.Printf("  Model:    %s\n", model)
	}
	if envVar := llm.APIKeyEnvVar(cfg.Provider); envVar != "" {
		if cfg.APIKey != "" {
			fmt.Printf("  API key:  %s (%s)\n", maskKey(cfg.APIKey), envVar)
		} else {
			fmt.Printf("  API key:  not set (%s)\n", envVar)
		}
	}
	fmt.Printf("  Remote:   %s\n", enabledText(projectCfg.RemoteEnabled()))
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		ui.PrintWarn(err.Error())
	} else if !projectCfg.RemoteEnabled() {
		ui.PrintInfo("Remote translation is disabled in " + config.GetProjectConfigPath(projectRoot))
	} else {
		ui.PrintOK("Remote translation is available")
	}

	fmt.Println()
	fmt.Println("💡 Run 'cmdlens llm setup' to configure a provider")
	fmt.Println("💡 Run 'cmdlens llm test' to verify the connection")
	return nil
}

func runLLMTest(cmd *cobra.Command, _ []string) error {
	fmt.Println("🧪 Testing LLM Connection")
	fmt.Println()

	cfg, err := llm.LoadConfig(projectRoot)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Logger = logger

	provider, err := llm.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	defer func() { _ = provider.Close() }()

	fmt.Printf("Testing provider: %s\n\n", provider.Name())

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	response, err := provider.Execute(ctx, `Respond with exactly this JSON object and nothing else: {"status": "ok"}`, llm.JSON)
	if err != nil {
		return fmt.Errorf("test failed: %w", err)
	}

	ui.PrintOK("Test successful")
	fmt.Println(ui.Indent("Response: " + strings.TrimSpace(response)))
	return nil
}

// maskKey keeps only enough of a key to recognize it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", 8) + key[len(key)-4:]
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

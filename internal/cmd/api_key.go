package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/DevSymphony/cmdlens/internal/llm"
	"github.com/DevSymphony/cmdlens/internal/ui"
	"github.com/DevSymphony/cmdlens/internal/util/config"
	"github.com/DevSymphony/cmdlens/internal/util/env"
)

// envFileIgnoreEntry is the .gitignore line protecting stored keys.
var envFileIgnoreEntry = filepath.ToSlash(filepath.Join(config.ProjectDir, ".env"))

// promptAPIKeyConfiguration asks for the provider's API key and stores it in .cmdlens/.env.
// With checkExisting, nothing is asked when a key is already available.
func promptAPIKeyConfiguration(info llm.ProviderInfo, checkExisting bool) {
	envPath := config.GetProjectEnvPath(projectRoot)
	envVar := info.APIKey.EnvVarName

	if checkExisting && env.GetAPIKey(envPath, envVar) != "" {
		ui.PrintOK(fmt.Sprintf("%s detected from environment or %s", envVar, envPath))
		return
	}

	options := []string{
		"Enter API key",
		"Skip (set manually later)",
	}

	restore := useSelectTemplateNoFilter()
	var selected string
	err := survey.AskOne(&survey.Select{
		Message: fmt.Sprintf("Configure %s now?", envVar),
		Options: options,
	}, &selected)
	restore()
	if err != nil || selected != options[0] {
		fmt.Println("Skipped API key configuration")
		fmt.Println()
		fmt.Printf("Tip: You can set %s in:\n", envVar)
		fmt.Println(ui.Indent(envPath))
		fmt.Println(ui.Indent("System environment variable"))
		return
	}

	apiKey, err := promptForAPIKey(info.DisplayName)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to read API key: %v", err))
		return
	}

	if err := info.ValidateAPIKey(apiKey); err != nil {
		ui.PrintWarn(err.Error())
		fmt.Println(ui.Indent("API key was saved anyway. Make sure it's correct."))
	}

	if err := env.SaveKeyToEnvFile(envPath, envVar, apiKey); err != nil {
		ui.PrintError(fmt.Sprintf("Failed to save API key: %v", err))
		return
	}
	ui.PrintOK("API key saved to " + envPath)

	if err := ensureGitignore(filepath.Join(projectRoot, ".gitignore"), envFileIgnoreEntry); err != nil {
		ui.PrintWarn(fmt.Sprintf("Failed to update .gitignore: %v", err))
		fmt.Println(ui.Indent(fmt.Sprintf("Please manually add '%s' to .gitignore", envFileIgnoreEntry)))
	} else {
		ui.PrintOK(fmt.Sprintf("%s is ignored by git", envFileIgnoreEntry))
	}
}

// promptForAPIKey reads a key without echoing it.
func promptForAPIKey(providerName string) (string, error) {
	var apiKey string
	prompt := &survey.Password{
		Message: fmt.Sprintf("Enter your %s API key:", providerName),
	}
	if err := survey.AskOne(prompt, &apiKey); err != nil {
		return "", err
	}

	apiKey = cleanAPIKey(apiKey)
	if len(apiKey) == 0 {
		return "", fmt.Errorf("API key cannot be empty")
	}
	return apiKey, nil
}

// cleanAPIKey removes whitespace, control characters, and non-printable characters from API key
func cleanAPIKey(input string) string {
	var result strings.Builder
	for _, r := range input {
		// Only keep printable ASCII characters (excluding space)
		if r >= 33 && r <= 126 {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ensureGitignore appends entry to the .gitignore at path unless it is already listed.
func ensureGitignore(path, entry string) error {
	var lines []string
	existingFile, err := os.Open(path)
	if err == nil {
		scanner := bufio.NewScanner(existingFile)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == entry {
				_ = existingFile.Close()
				return nil
			}
			lines = append(lines, line)
		}
		_ = existingFile.Close()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, "# cmdlens API keys", entry)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}
	return nil
}

// Package config reads and writes the project configuration in .cmdlens/config.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ProjectConfig represents the .cmdlens/config.json structure
type ProjectConfig struct {
	RulesDir string       `json:"rules_dir,omitempty"` // empty means the embedded rule sets
	LLM      LLMConfig    `json:"llm,omitempty"`
	Remote   RemoteConfig `json:"remote,omitempty"`
	Cache    CacheConfig  `json:"cache,omitempty"`
}

// LLMConfig holds LLM provider settings
type LLMConfig struct {
	Provider string `json:"provider,omitempty"` // "openaiapi", "gemini"
	Model    string `json:"model,omitempty"`
	Language string `json:"language,omitempty"` // language remote translations are written in
}

// RemoteConfig controls the remote fallback.
type RemoteConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // nil means enabled
}

// CacheConfig sizes the result cache.
type CacheConfig struct {
	Capacity int    `json:"capacity,omitempty"`
	Policy   string `json:"policy,omitempty"` // "fifo" (default) or "lru"
}

const (
	ProjectDir        = ".cmdlens"
	projectConfigFile = "config.json"
	projectEnvFile    = ".env"
)

// RemoteEnabled reports whether remote fallback is allowed.
func (c *ProjectConfig) RemoteEnabled() bool {
	return c.Remote.Enabled == nil || *c.Remote.Enabled
}

// GetProjectConfigPath returns the path to .cmdlens/config.json under root ("" for the working directory).
func GetProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectDir, projectConfigFile)
}

// GetProjectEnvPath returns the path to .cmdlens/.env under root.
func GetProjectEnvPath(root string) string {
	return filepath.Join(root, ProjectDir, projectEnvFile)
}

// LoadProjectConfig loads .cmdlens/config.json. A missing file yields an empty config.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	data, err := os.ReadFile(GetProjectConfigPath(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg ProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}

// SaveProjectConfig writes cfg to .cmdlens/config.json, creating the directory if needed.
func SaveProjectConfig(root string, cfg *ProjectConfig) error {
	if err := os.MkdirAll(filepath.Join(root, ProjectDir), 0o755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", ProjectDir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetProjectConfigPath(root), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// UpdateProjectConfigLLM updates only the LLM provider and model.
func UpdateProjectConfigLLM(root, provider, model string) error {
	cfg, err := LoadProjectConfig(root)
	if err != nil {
		cfg = &ProjectConfig{}
	}

	cfg.LLM.Provider = provider
	cfg.LLM.Model = model

	return SaveProjectConfig(root, cfg)
}

// ProjectConfigExists checks if .cmdlens/config.json exists
func ProjectConfigExists(root string) bool {
	_, err := os.Stat(GetProjectConfigPath(root))
	return err == nil
}

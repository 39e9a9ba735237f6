package llm

import (
	"fmt"
	"strings"
)

// ModelInfo describes a model available for a provider.
type ModelInfo struct {
	ID          string // model identifier sent to the API (e.g. "gpt-4o-mini")
	DisplayName string // Human-readable name for UI
	Description string
	Recommended bool // Default/recommended model flag
}

// APIKeyConfig describes API key requirements for a provider.
type APIKeyConfig struct {
	Required   bool   // Whether this provider requires an API key
	EnvVarName string // Environment variable name (e.g., "OPENAI_API_KEY")
	Prefix     string // Expected prefix for validation (e.g., "sk-")
}

// ProviderInfo contains provider metadata.
type ProviderInfo struct {
	Name         string
	DisplayName  string
	DefaultModel string
	Models       []ModelInfo
	APIKey       APIKeyConfig
}

// ValidateAPIKey checks a key against the provider's requirements.
func (p ProviderInfo) ValidateAPIKey(apiKey string) error {
	if !p.APIKey.Required {
		return nil
	}
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if p.APIKey.Prefix != "" && !strings.HasPrefix(apiKey, p.APIKey.Prefix) {
		return fmt.Errorf("API key should start with '%s'", p.APIKey.Prefix)
	}
	return nil
}

// ModelChoices lists the provider's models as prompt labels with their IDs.
// def indexes the recommended model, or the first one.
func (p ProviderInfo) ModelChoices() (labels, ids []string, def int) {
	for i, m := range p.Models {
		label := m.DisplayName
		if m.Description != "" {
			label += " - " + m.Description
		}
		if m.Recommended {
			label += " (recommended)"
			def = i
		}
		labels = append(labels, label)
		ids = append(ids, m.ID)
	}
	return labels, ids, def
}

package llm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/DevSymphony/cmdlens/internal/util/config"
)

// ErrNoProvider is returned by Validate when no provider is configured.
var ErrNoProvider = errors.New("llm: no provider configured")

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("%w (run 'cmdlens llm setup' or set LLM_PROVIDER)", ErrNoProvider)
	}
	info, ok := Lookup(c.Provider)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if info.APIKey.Required && c.APIKey == "" {
		return fmt.Errorf("API key is required for %s (set %s or run 'cmdlens llm setup')", c.Provider, info.APIKey.EnvVarName)
	}
	return nil
}

// LoadConfig resolves provider, model and API key for the project at root ("" for the
// working directory).
// Priority: environment variables > .cmdlens/.env > .cmdlens/config.json.
// Without an explicit provider, the first registered provider that has a key is used.
func LoadConfig(root string) (Config, error) {
	cfg := Config{}

	projectCfg, err := config.LoadProjectConfig(root)
	if err != nil {
		return cfg, err
	}
	cfg.Provider = projectCfg.LLM.Provider
	cfg.Model = projectCfg.LLM.Model

	envPath := config.GetProjectEnvPath(root)
	dotenv, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to read %s: %w", envPath, err)
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := lookup("LLM_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := lookup("LLM_MODEL"); v != "" {
		cfg.Model = v
	}

	if cfg.Provider == "" {
		for _, info := range Providers() {
			if info.APIKey.EnvVarName != "" && lookup(info.APIKey.EnvVarName) != "" {
				cfg.Provider = info.Name
				break
			}
		}
	}
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		cfg.APIKey = lookup(envVar)
	}

	return cfg, nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DevSymphony/cmdlens/internal/llm"
	"github.com/DevSymphony/cmdlens/internal/translate"
	"github.com/DevSymphony/cmdlens/internal/util/config"
)

// rulesDirEnv overrides rules_dir from config.json.
const rulesDirEnv = "CMDLENS_RULES_DIR"

// session is an engine built from the project configuration.
type session struct {
	engine    *translate.Engine
	useRemote bool // remote enabled in config and a provider is usable
	provider  llm.Provider
}

func (s *session) Close() {
	if s.provider != nil {
		_ = s.provider.Close()
	}
}

// newSession wires config, rule sets, cache and the remote provider into an engine.
// A missing or broken LLM configuration only disables the remote fallback.
func newSession(allowRemote bool) (*session, error) {
	projectCfg, err := config.LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cache, err := translate.NewCache(projectCfg.Cache.Policy, projectCfg.Cache.Capacity)
	if err != nil {
		return nil, fmt.Errorf("invalid cache configuration: %w", err)
	}
	opts := []translate.Option{
		translate.WithLogger(logger),
		translate.WithCache(cache),
	}
	if dir := rulesDir(projectCfg); dir != "" {
		opts = append(opts, translate.WithRulesDir(dir))
	}

	s := &session{}
	if allowRemote && projectCfg.RemoteEnabled() {
		s.provider = newProvider()
	}
	if s.provider != nil {
		remote := translate.NewLLMRemote(s.provider, translate.WithLanguage(projectCfg.LLM.Language))
		opts = append(opts, translate.WithRemote(remote))
		s.useRemote = true
	}

	s.engine, err = translate.NewEngine(opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// newProvider returns nil when no provider is configured or it cannot be created.
func newProvider() llm.Provider {
	cfg, err := llm.LoadConfig(projectRoot)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring LLM configuration")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		logger.Debug().Err(err).Msg("remote translation disabled")
		return nil
	}
	cfg.Logger = logger
	provider, err := llm.New(cfg)
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Provider).Msg("remote translation disabled")
		return nil
	}
	return provider
}

func rulesDir(cfg *config.ProjectConfig) string {
	if v := os.Getenv(rulesDirEnv); v != "" {
		return v
	}
	if cfg.RulesDir != "" && !filepath.IsAbs(cfg.RulesDir) {
		return filepath.Join(projectRoot, cfg.RulesDir)
	}
	return cfg.RulesDir
}

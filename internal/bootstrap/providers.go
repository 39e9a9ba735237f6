// Package bootstrap registers the built-in LLM providers.
// Import it from main for the init() side-effects.
package bootstrap

import (
	_ "github.com/DevSymphony/cmdlens/internal/llm/gemini"
	_ "github.com/DevSymphony/cmdlens/internal/llm/openaiapi"
)

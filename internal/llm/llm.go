// Package llm provides a unified interface for LLM providers.
package llm

import (
	"context"

	"github.com/rs/zerolog"
)

// Provider is the interface for LLM providers.
type Provider interface {
	// Execute sends a prompt and returns the parsed response.
	Execute(ctx context.Context, prompt string, format ResponseFormat) (string, error)
	// Name returns the provider name.
	Name() string
	// Close releases any resources held by the provider.
	Close() error
}

// RawProvider is the interface for provider implementations.
// The registry wraps every RawProvider with response parsing.
type RawProvider interface {
	// ExecuteRaw sends a prompt and returns the raw (unparsed) response.
	// Implementations make a single request and do not retry.
	ExecuteRaw(ctx context.Context, prompt string, format ResponseFormat) (string, error)
	Name() string
	Close() error
}

// ResponseFormat specifies the expected response format.
type ResponseFormat string

const (
	Text ResponseFormat = "text"
	JSON ResponseFormat = "json"
)

// String returns the string representation of the format.
func (f ResponseFormat) String() string {
	return string(f)
}

// Config holds LLM provider configuration.
type Config struct {
	Provider string // "openaiapi", "gemini"
	Model    string // uses the provider default when empty
	APIKey   string
	Logger   zerolog.Logger
}

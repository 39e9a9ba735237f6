package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// parsedProvider wraps a RawProvider with response parsing and request logging.
type parsedProvider struct {
	raw RawProvider
	log zerolog.Logger
}

// wrapWithParser creates a Provider that automatically parses responses.
func wrapWithParser(raw RawProvider, log zerolog.Logger) Provider {
	return &parsedProvider{raw: raw, log: log}
}

// Execute sends a prompt and returns the parsed response.
func (p *parsedProvider) Execute(ctx context.Context, prompt string, format ResponseFormat) (string, error) {
	start := time.Now()
	response, err := p.raw.ExecuteRaw(ctx, prompt, format)
	if err != nil {
		p.log.Debug().Err(err).Str("provider", p.raw.Name()).Dur("elapsed", time.Since(start)).Msg("llm request failed")
		return "", err
	}
	p.log.Debug().
		Str("provider", p.raw.Name()).
		Int("prompt_chars", len(prompt)).
		Int("response_chars", len(response)).
		Dur("elapsed", time.Since(start)).
		Msg("llm request done")
	return parse(response, format)
}

// Name returns the provider name.
func (p *parsedProvider) Name() string {
	return p.raw.Name()
}

// Close releases any resources held by the provider.
func (p *parsedProvider) Close() error {
	return p.raw.Close()
}

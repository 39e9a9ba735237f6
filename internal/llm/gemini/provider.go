// Package gemini provides the Google Gemini provider.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/DevSymphony/cmdlens/internal/llm"
)

const (
	providerName = "gemini"
	displayName  = "Google Gemini"
	defaultModel = "gemini-2.5-flash"
	apiKeyEnvVar = "GEMINI_API_KEY"
)

var (
	// ErrAPIKeyRequired is returned when no Gemini API key is configured.
	ErrAPIKeyRequired = errors.New("gemini: API key is required (set GEMINI_API_KEY)")
	// ErrNoCandidates is returned when the response carries no text.
	ErrNoCandidates = errors.New("gemini: no candidates in response")
)

func init() {
	llm.RegisterProvider(providerName, newProvider, llm.ProviderInfo{
		Name:         providerName,
		DisplayName:  displayName,
		DefaultModel: defaultModel,
		Models: []llm.ModelInfo{
			{ID: "gemini-2.5-flash", DisplayName: "gemini-2.5-flash", Description: "Fast and efficient", Recommended: true},
			{ID: "gemini-2.5-pro", DisplayName: "gemini-2.5-pro", Description: "Most capable"},
		},
		APIKey: llm.APIKeyConfig{
			Required:   true,
			EnvVarName: apiKeyEnvVar,
		},
	})
}

// generator is the part of the genai client the provider uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider implements llm.RawProvider on top of the genai client.
type Provider struct {
	models generator
	model  string
	log    zerolog.Logger
}

var _ llm.RawProvider = (*Provider)(nil)

func newProvider(cfg llm.Config) (llm.RawProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newWithGenerator(client.Models, cfg), nil
}

func newWithGenerator(models generator, cfg llm.Config) *Provider {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Provider{models: models, model: model, log: cfg.Logger}
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) ExecuteRaw(ctx context.Context, prompt string, format llm.ResponseFormat) (string, error) {
	config := &genai.GenerateContentConfig{}
	if format == llm.JSON {
		config.ResponseMIMEType = "application/json"
	}

	p.log.Debug().Str("model", p.model).Int("prompt_chars", len(prompt)).Msg("gemini request")
	resp, err := p.models.GenerateContent(ctx, p.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: prompt}}}},
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoCandidates
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrNoCandidates
	}
	return b.String(), nil
}

func (p *Provider) Close() error {
	return nil
}

// Package openaiapi provides the OpenAI chat completions provider.
package openaiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/DevSymphony/cmdlens/internal/llm"
)

const (
	providerName       = "openaiapi"
	displayName        = "OpenAI API"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 1000
	defaultTemperature = 0.3
	apiKeyEnvVar       = "OPENAI_API_KEY"
)

// ErrAPIKeyRequired is returned when no OpenAI API key is configured.
var ErrAPIKeyRequired = errors.New("openaiapi: API key is required (set OPENAI_API_KEY)")

func init() {
	llm.RegisterProvider(providerName, newProvider, llm.ProviderInfo{
		Name:         providerName,
		DisplayName:  displayName,
		DefaultModel: defaultModel,
		Models: []llm.ModelInfo{
			{ID: "gpt-4o-mini", DisplayName: "gpt-4o-mini", Description: "Fast and efficient", Recommended: true},
			{ID: "gpt-4.1-mini", DisplayName: "gpt-4.1-mini", Description: "Better instruction following"},
			{ID: "gpt-5-mini", DisplayName: "gpt-5-mini", Description: "Reasoning model, slower"},
		},
		APIKey: llm.APIKeyConfig{
			Required:   true,
			EnvVarName: apiKeyEnvVar,
			Prefix:     "sk-",
		},
	})
}

// Provider implements llm.RawProvider for the OpenAI API.
type Provider struct {
	apiKey      string
	model       string
	baseURL     string
	httpClient  *http.Client
	maxTokens   int
	temperature float64
	log         zerolog.Logger
}

// Compile-time check: Provider must implement RawProvider interface
var _ llm.RawProvider = (*Provider)(nil)

// newProvider creates a new OpenAI API provider.
// Returns ErrAPIKeyRequired if cfg carries no API key.
func newProvider(cfg llm.Config) (llm.RawProvider, error) {
	return New(cfg, defaultBaseURL)
}

// New creates a provider talking to baseURL (e.g. "https://api.openai.com/v1").
func New(cfg llm.Config, baseURL string) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		log:         cfg.Logger,
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) ExecuteRaw(ctx context.Context, prompt string, format llm.ResponseFormat) (string, error) {
	apiReq := apiRequest{
		Model: p.model,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	// Reasoning models (gpt-5, o1, o3, o4) take max_completion_tokens and no temperature.
	if p.isReasoningModel() {
		apiReq.MaxCompletionTokens = p.maxTokens
		apiReq.ReasoningEffort = "low"
	} else {
		apiReq.MaxTokens = p.maxTokens
		apiReq.Temperature = p.temperature
	}
	if format == llm.JSON {
		apiReq.ResponseFormat = &apiResponseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(apiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	p.log.Debug().Str("model", p.model).Int("prompt_chars", len(prompt)).Msg("openai request")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
		}
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("OpenAI API error (status %d): %s (type: %s)",
			resp.StatusCode, apiResp.Error.Message, apiResp.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (status %d)", resp.StatusCode)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := apiResp.Choices[0].Message.Content
	p.log.Debug().Int("response_chars", len(content)).Int("tokens", apiResp.Usage.TotalTokens).Msg("openai response")

	return content, nil
}

// isReasoningModel returns true if the model is a reasoning model (gpt-5, o1, o3, o4).
func (p *Provider) isReasoningModel() bool {
	for _, prefix := range []string{"gpt-5", "o1", "o3", "o4"} {
		if strings.HasPrefix(p.model, prefix) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

type apiRequest struct {
	Model               string             `json:"model"`
	Messages            []apiMessage       `json:"messages"`
	MaxTokens           int                `json:"max_tokens,omitempty"`
	MaxCompletionTokens int                `json:"max_completion_tokens,omitempty"`
	Temperature         float64            `json:"temperature,omitempty"`
	ReasoningEffort     string             `json:"reasoning_effort,omitempty"`
	ResponseFormat      *apiResponseFormat `json:"response_format,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponseFormat struct {
	Type string `json:"type"`
}

type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Close releases HTTP client resources.
func (p *Provider) Close() error {
	if p.httpClient != nil {
		p.httpClient.CloseIdleConnections()
	}
	return nil
}

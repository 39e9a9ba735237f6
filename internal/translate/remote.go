package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DevSymphony/cmdlens/internal/llm"
	"github.com/DevSymphony/cmdlens/pkg/schema"
)

const (
	// RemoteConfidence is the confidence assigned to every remote translation.
	RemoteConfidence = 0.95
	// DefaultRemoteEmoji is used when the response does not start with a symbol.
	DefaultRemoteEmoji = "🤖"
	// DefaultLanguage is the language remote translations are requested in.
	DefaultLanguage = "Japanese"
)

var (
	// ErrNoCredential is returned without any I/O when no API credential is configured.
	ErrNoCredential = errors.New("translate: no API credential configured")
	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("translate: empty response from language model")
)

// Remote translates output with a language model.
// Implementations perform at most one round trip per call and do not retry.
type Remote interface {
	// Available reports whether a credential is configured.
	Available() bool
	Translate(ctx context.Context, command, output string) (Result, error)
}

// LLMRemote is a Remote backed by an llm.Provider.
type LLMRemote struct {
	provider llm.Provider
	language string
}

// RemoteOption is a functional option for configuring LLMRemote.
type RemoteOption func(*LLMRemote)

// WithLanguage sets the language translations are requested in.
func WithLanguage(language string) RemoteOption {
	return func(r *LLMRemote) {
		if language != "" {
			r.language = language
		}
	}
}

// NewLLMRemote creates a remote translator. A nil provider yields a remote that is not
// available and fails every call with ErrNoCredential.
func NewLLMRemote(provider llm.Provider, opts ...RemoteOption) *LLMRemote {
	r := &LLMRemote{provider: provider, language: DefaultLanguage}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *LLMRemote) Available() bool {
	return r != nil && r.provider != nil
}

func (r *LLMRemote) Translate(ctx context.Context, command, output string) (Result, error) {
	if !r.Available() {
		return Result{}, ErrNoCredential
	}

	response, err := r.provider.Execute(ctx, r.prompt(command, output), llm.Text)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", r.provider.Name(), err)
	}
	text := strings.TrimSpace(response)
	if text == "" {
		return Result{}, ErrEmptyResponse
	}

	return Result{
		OriginalText:   output,
		TranslatedText: text,
		Emoji:          leadingEmoji(text),
		Category:       inferCategory(output),
		Confidence:     RemoteConfidence,
		Source:         SourceRemote,
	}, nil
}

func (r *LLMRemote) prompt(command, output string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You explain terminal output to people who are not familiar with the command line.\n")
	fmt.Fprintf(&b, "Translate the output below into plain %s, line by line where it helps.\n", r.language)
	b.WriteString("Start the first line with one emoji that summarizes the result.\n")
	b.WriteString("If something failed, end with one short suggestion for what to do next.\n")
	b.WriteString("Answer with the explanation only, no preamble.\n\n")
	fmt.Fprintf(&b, "Command: %s\n", Redact(command))
	b.WriteString("Output:\n")
	b.WriteString(Redact(output))
	return b.String()
}

// inferCategory classifies output by keyword.
func inferCategory(output string) string {
	lower := strings.ToLower(output)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"):
		return schema.CategoryError
	case strings.Contains(lower, "warning"):
		return schema.CategoryWarning
	case strings.Contains(lower, "success"):
		return schema.CategorySuccess
	default:
		return schema.CategoryInfo
	}
}

// leadingEmoji returns the first symbol on the first line, keeping a trailing
// variation selector so that e.g. "⚠️" survives intact.
func leadingEmoji(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	for i, r := range first {
		if !unicode.Is(unicode.So, r) {
			continue
		}
		end := i + utf8.RuneLen(r)
		if next, size := utf8.DecodeRuneInString(first[end:]); next == '\uFE0F' {
			end += size
		}
		return first[i:end]
	}
	return DefaultRemoteEmoji
}

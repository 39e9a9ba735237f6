// Package translate turns command output into annotated, localized explanations.
//
// An Engine matches output lines against local rule sets first and falls back to a
// remote language model when too few lines matched. Results are cached per
// (command, output) pair.
package translate

import "github.com/DevSymphony/cmdlens/pkg/schema"

// Source records where a Result came from.
type Source string

const (
	SourceLocal  Source = "local_pattern"
	SourceRemote Source = "llm_api"
	SourceCache  Source = "cache"
)

// Result is the translation of one (command, output) pair.
// Emoji and Suggestion are empty when no rule provided them.
type Result struct {
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	Emoji          string  `json:"emoji,omitempty"`
	Category       string  `json:"category"`
	Suggestion     string  `json:"suggestion,omitempty"`
	Confidence     float64 `json:"confidence"`
	Source         Source  `json:"source"`
}

// emptyResult is what an output with no matching rule is annotated with.
func emptyResult(output string) Result {
	return Result{
		OriginalText: output,
		Category:     schema.CategoryInfo,
		Source:       SourceLocal,
	}
}

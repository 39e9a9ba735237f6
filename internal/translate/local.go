package translate

import (
	"strings"

	"github.com/DevSymphony/cmdlens/internal/patterns"
)

// LocalTranslator translates output using only the local rule sets.
type LocalTranslator struct {
	matcher *patterns.Matcher
}

// NewLocalTranslator creates a translator over the given matcher.
func NewLocalTranslator(matcher *patterns.Matcher) *LocalTranslator {
	return &LocalTranslator{matcher: matcher}
}

// Translate matches every line of output.
//
// Matched lines become "emoji text", unmatched lines pass through and blank lines are
// dropped. Confidence is the share of non-blank lines that matched, 0 for blank output.
func (t *LocalTranslator) Translate(output string) Result {
	result := emptyResult(output)

	lines := splitLines(output)
	translated := make([]string, 0, len(lines))
	var best *patterns.Rule
	matched, nonBlank := 0, 0

	for _, line := range lines {
		// Blank lines are neither matched nor counted, so a rule for empty lines never fires.
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank++

		m, ok := t.matcher.MatchLine(line)
		if !ok {
			translated = append(translated, line)
			continue
		}
		matched++
		translated = append(translated, m.Rule.Emoji+" "+m.Text)
		best = patterns.Better(best, m.Rule)
	}

	result.TranslatedText = strings.Join(translated, "\n")
	if nonBlank > 0 {
		result.Confidence = float64(matched) / float64(nonBlank)
	}
	if best != nil {
		result.Emoji = best.Emoji
		result.Category = best.Category
		result.Suggestion = best.Suggestion
	}
	return result
}

// splitLines splits on \n and drops the \r of CRLF line endings. A line rewritten in
// place with a lone \r (progress bars) keeps only its last non-empty frame.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if j := strings.LastIndexByte(line, '\r'); j >= 0 {
			line = line[j+1:]
		}
		lines[i] = line
	}
	return lines
}

package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONFound is returned when a JSON response contains no valid JSON.
var ErrNoJSONFound = errors.New("llm: no valid JSON found in response")

// fencePattern matches a response that is entirely one fenced code block.
var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*[ \\t]*\\n(.*?)\\n?```$")

// parse post-processes a raw response for the requested format.
func parse(response string, format ResponseFormat) (string, error) {
	switch format {
	case JSON:
		return extractJSON(response)
	default:
		return unwrapText(response), nil
	}
}

// unwrapText trims whitespace and removes a code fence wrapped around the whole answer.
func unwrapText(response string) string {
	trimmed := strings.TrimSpace(response)
	if m := fencePattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// extractJSON finds JSON content in a response that may carry preamble text.
func extractJSON(response string) (string, error) {
	if m := fencePattern.FindStringSubmatch(strings.TrimSpace(response)); m != nil {
		if block := strings.TrimSpace(m[1]); json.Valid([]byte(block)) {
			return block, nil
		}
	}

	if jsonStr := findJSONBoundaries(response); jsonStr != "" && json.Valid([]byte(jsonStr)) {
		return jsonStr, nil
	}

	trimmed := strings.TrimSpace(response)
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}
	return "", ErrNoJSONFound
}

// findJSONBoundaries finds the first { or [ and returns it through its matching close.
func findJSONBoundaries(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	open := s[start]
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

package translate

import "regexp"

var sensitivePatterns = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{
		pattern: regexp.MustCompile(`(?i)\b(authorization\s*:\s*bearer)\s+[^\s"']+`),
		replace: `$1 [REDACTED]`,
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(bearer)\s+[a-z0-9._-]{10,}`),
		replace: `$1 [REDACTED]`,
	},
	{
		pattern: regexp.MustCompile(`(?i)\b([a-z_][a-z0-9_]*(?:api[_-]?key|token|secret|password|passwd)[a-z0-9_]*)\s*=\s*([^\s"']+)`),
		replace: `$1=[REDACTED]`,
	},
	{
		pattern: regexp.MustCompile(`sk-[a-zA-Z0-9_-]{10,}`),
		replace: `[REDACTED_KEY]`,
	},
	{
		pattern: regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{20,}`),
		replace: `[REDACTED_KEY]`,
	},
	{
		pattern: regexp.MustCompile(`([a-z][a-z0-9+.-]*://)([^/\s:@]+):([^@\s/]+)@`),
		replace: `$1$2:[REDACTED]@`,
	},
}

// Redact masks credentials that commonly leak into command output.
// Output is redacted before it is sent to a remote model; cached and local results keep
// the original text.
func Redact(input string) string {
	redacted := input
	for _, entry := range sensitivePatterns {
		redacted = entry.pattern.ReplaceAllString(redacted, entry.replace)
	}
	return redacted
}

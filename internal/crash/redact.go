package crash

import (
	"net/url"
	"regexp"
	"strings"
)

// Diagnostic text from a previous run can contain page URLs and whatever
// they carried. Scrub the obvious secrets before it reaches a dialog or a
// bug report.

var urlRegex = regexp.MustCompile(`(?i)\b(?:https?|wss?)://[^\s\]\)\"'<>]+`)

var secretKeyRegex = regexp.MustCompile(`(?i)(token|access_token|id_token|code|password|passwd|secret|authorization)=([^&\s]+)`)

var secretHeaderRegex = regexp.MustCompile(`(?i)(authorization|auth):\s*(\S[^\n,;]*)`)

// RedactSensitive strips query strings, fragments, and credential-looking
// key/value pairs from a block of diagnostic text, line by line.
func RedactSensitive(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		redacted := urlRegex.ReplaceAllStringFunc(line, redactURLString)
		redacted = secretKeyRegex.ReplaceAllString(redacted, "$1=[REDACTED]")
		redacted = secretHeaderRegex.ReplaceAllString(redacted, "$1: [REDACTED]")
		lines[i] = redacted
	}
	return strings.Join(lines, "\n")
}

func redactURLString(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimRight(trimmed, ".,;:")
	u, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}

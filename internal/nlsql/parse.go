package nlsql

import "strings"

// TranslationResult holds the parsed sections of the model's reply. SQL is
// non-empty on success; Explanation and Warning degrade to empty strings
// when their sections are missing.
type TranslationResult struct {
	SQL         string `json:"sql"`
	Explanation string `json:"explanation"`
	Warning     string `json:"warning"`
}

const (
	markerSQL         = "SQL_QUERY:"
	markerExplanation = "BUSINESS_EXPLANATION:"
	markerWarning     = "WARNING:"
)

// ParseReply extracts the three sections from the model's reply. The format
// is not contractually guaranteed upstream, so parsing is deliberately
// tolerant: a missing marker yields an empty field instead of an error.
func ParseReply(reply string) TranslationResult {
	return TranslationResult{
		SQL:         stripFences(section(reply, markerSQL, markerExplanation, markerWarning)),
		Explanation: section(reply, markerExplanation, markerWarning),
		Warning:     section(reply, markerWarning),
	}
}

// section returns the text between marker and the first following end
// marker, or the end of the reply when none follows.
func section(reply, marker string, enders ...string) string {
	start := strings.Index(reply, marker)
	if start < 0 {
		return ""
	}
	body := reply[start+len(marker):]

	end := len(body)
	for _, ender := range enders {
		if idx := strings.Index(body, ender); idx >= 0 && idx < end {
			end = idx
		}
	}

	return strings.TrimSpace(body[:end])
}

// stripFences removes markdown code fences the model sometimes wraps the
// SQL in, with or without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && !strings.ContainsAny(s[:idx], " \t") {
		// Drop the language tag line (```sql)
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

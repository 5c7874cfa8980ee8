package nlsql

import "strings"

// destructiveKeywords flag statement kinds that delete, overwrite or remove
// schema or data.
var destructiveKeywords = []string{"delete", "drop", "truncate", "update"}

// DestructiveWarning is attached to destructive SQL the model did not warn
// about itself.
const DestructiveWarning = "This query will modify or delete data. Please review carefully before executing."

// IsDestructive reports whether the SQL text looks mutating. This is a
// case-insensitive substring heuristic, not a parser: a SELECT whose
// identifier merely contains "update" is misclassified. Known limitation,
// kept as-is.
func IsDestructive(sqlText string) bool {
	lower := strings.ToLower(sqlText)
	for _, kw := range destructiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify attaches the fixed cautionary message to a destructive result
// when the model supplied no warning of its own. Destructive statements are
// annotated, never blocked.
func Classify(result TranslationResult) TranslationResult {
	if result.Warning == "" && IsDestructive(result.SQL) {
		result.Warning = DestructiveWarning
	}
	return result
}

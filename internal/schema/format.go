package schema

import "strings"

// Format renders a table schema into the compact form the translator embeds
// in its prompt: tableName(col1 type1, col2 type2, ...). Pure function; the
// same schema always yields byte-identical text.
func Format(ts TableSchema) string {
	parts := make([]string, 0, len(ts.Columns))
	for _, col := range ts.Columns {
		parts = append(parts, col.Name+" "+col.DataType)
	}
	return ts.Table + "(" + strings.Join(parts, ", ") + ")"
}

// FormatAll formats multiple schemas independently and joins them with
// newlines to form the translator's schema context.
func FormatAll(schemas []TableSchema) string {
	lines := make([]string, 0, len(schemas))
	for _, ts := range schemas {
		lines = append(lines, Format(ts))
	}
	return strings.Join(lines, "\n")
}

package nlsql

import "fmt"

// BuildPrompt constructs the instruction prompt sent to the language model.
// The rule set is fixed; only the schema context and the question vary.
func BuildPrompt(schemaText, question string) string {
	return fmt.Sprintf(`You are a SQL generator for a MySQL database. Convert the user's question into a SQL statement.

RULES:
1. Generate MySQL-compatible SQL only.
2. Use only the tables and columns listed in the schemas below.
3. Never invent tables or columns that are not listed.
4. Do not add a LIMIT clause unless the question asks for one.
5. If the statement deletes, drops, truncates or updates data, include a warning.
6. Respond in exactly this format:

SQL_QUERY:
<the SQL statement>

BUSINESS_EXPLANATION:
<a short plain-language explanation of what the query returns>

WARNING:
<a caution if the statement is destructive, otherwise leave this section empty>

SCHEMAS:
%s

QUESTION:
%s`, schemaText, question)
}

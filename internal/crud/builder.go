package crud

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
)

// Operation is a structured mutation kind.
type Operation string

const (
	OpInsert   Operation = "INSERT"
	OpUpdate   Operation = "UPDATE"
	OpDelete   Operation = "DELETE"
	OpTruncate Operation = "TRUNCATE"
	OpDrop     Operation = "DROP"
)

// RawPredicate is a filter expression inserted verbatim after WHERE. It is
// a deliberately lower-trust input channel: unlike identifiers and values
// it is NOT parameter-protected, and the distinct type keeps that asymmetry
// visible at every call site.
type RawPredicate string

// Request describes one structured CRUD mutation.
type Request struct {
	Operation Operation              `json:"operation"`
	Table     string                 `json:"table_name"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Where     RawPredicate           `json:"where,omitempty"`
}

// Statement is a built SQL statement plus its positional parameters.
type Statement struct {
	SQL  string
	Args []interface{}
}

// identPattern is the single injection-prevention boundary for table names.
var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidIdentifier reports whether a name is safe to use as a table
// identifier.
func ValidIdentifier(name string) bool {
	return identPattern.MatchString(name)
}

// quoteIdent wraps an identifier in MySQL backticks, doubling any embedded
// backtick so the name cannot terminate its own quoting. Identifier quoting
// and value placeholders are distinct mechanisms and must never be swapped.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Build constructs a parameterized statement for the request. Values only
// ever travel through ? placeholders; identifiers only ever through quoted
// substitution. Preconditions are checked before any SQL is assembled, so a
// rejected request issues nothing against the store.
func Build(req Request) (Statement, error) {
	if !identPattern.MatchString(req.Table) {
		return Statement{}, apperr.Validation("invalid table name: %q", req.Table)
	}

	switch req.Operation {
	case OpInsert:
		return buildInsert(req)
	case OpUpdate:
		return buildUpdate(req)
	case OpDelete:
		return buildDelete(req)
	case OpTruncate:
		return Statement{SQL: fmt.Sprintf("TRUNCATE TABLE %s", quoteIdent(req.Table))}, nil
	case OpDrop:
		return Statement{SQL: fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(req.Table))}, nil
	default:
		return Statement{}, apperr.Validation("unsupported operation: %q", req.Operation)
	}
}

func buildInsert(req Request) (Statement, error) {
	if len(req.Data) == 0 {
		return Statement{}, apperr.Validation("INSERT requires a non-empty data mapping")
	}

	cols := sortedColumns(req.Data)
	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
		args[i] = req.Data[col]
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(req.Table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))

	return Statement{SQL: sql, Args: args}, nil
}

func buildUpdate(req Request) (Statement, error) {
	if len(req.Data) == 0 {
		return Statement{}, apperr.Validation("UPDATE requires a non-empty data mapping")
	}
	if req.Where == "" {
		return Statement{}, apperr.Validation("UPDATE requires a WHERE filter")
	}

	cols := sortedColumns(req.Data)
	assignments := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		assignments[i] = quoteIdent(col) + " = ?"
		args[i] = req.Data[col]
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quoteIdent(req.Table),
		strings.Join(assignments, ", "),
		string(req.Where))

	return Statement{SQL: sql, Args: args}, nil
}

func buildDelete(req Request) (Statement, error) {
	if req.Where == "" {
		return Statement{}, apperr.Validation("DELETE requires a WHERE filter")
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", quoteIdent(req.Table), string(req.Where))
	return Statement{SQL: sql}, nil
}

// sortedColumns orders the data mapping's keys so the emitted SQL is
// deterministic across runs.
func sortedColumns(data map[string]interface{}) []string {
	cols := make([]string, 0, len(data))
	for col := range data {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

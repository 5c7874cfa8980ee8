package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
)

// ExecutionResult normalizes the driver's heterogeneous result shape: a
// row-returning statement fills Rows and leaves AffectedRows at 0, a
// mutating statement fills AffectedRows and leaves Rows empty.
type ExecutionResult struct {
	Rows         []map[string]interface{} `json:"rows"`
	AffectedRows int64                    `json:"affected_rows"`
}

// rowReturningPrefixes are the statement openers treated as queries rather
// than mutations.
var rowReturningPrefixes = []string{"select", "with", "show", "describe", "explain"}

// IsRowReturning reports whether the statement produces a row set.
func IsRowReturning(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, prefix := range rowReturningPrefixes {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return false
}

// ExecuteSQL runs a finished SQL statement against the store and normalizes
// the result. Store-level failures surface as query errors carrying the
// driver's message; they are never retried since SQL errors are assumed to
// be caller mistakes, not transient faults.
func (s *Store) ExecuteSQL(ctx context.Context, query string, args ...interface{}) (*ExecutionResult, error) {
	if len(args) > 0 {
		// Built statements use ? placeholders; rebind for drivers with a
		// different bindvar style.
		query = s.db.Rebind(query)
	}
	if IsRowReturning(query) {
		return s.queryRows(ctx, query, args...)
	}
	return s.execStatement(ctx, query, args...)
}

func (s *Store) queryRows(ctx context.Context, query string, args ...interface{}) (*ExecutionResult, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Query("query failed", err)
	}
	defer rows.Close()

	result := &ExecutionResult{Rows: []map[string]interface{}{}}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, apperr.Query("failed to scan row", err)
		}
		for col, val := range row {
			row[col] = normalizeValue(val)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Query("row iteration failed", err)
	}

	return result, nil
}

func (s *Store) execStatement(ctx context.Context, query string, args ...interface{}) (*ExecutionResult, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Query("statement failed", err)
	}

	// TRUNCATE and DROP report no row count on some drivers; treat the
	// error as a zero count rather than a failure.
	affected, _ := res.RowsAffected()

	return &ExecutionResult{Rows: []map[string]interface{}{}, AffectedRows: affected}, nil
}

// normalizeValue converts driver values into JSON-friendly types.
func normalizeValue(val interface{}) interface{} {
	switch v := val.(type) {
	case nil:
		return nil
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case int, int32, int64, float32, float64, bool, string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

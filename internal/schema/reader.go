package schema

import (
	"context"
	"fmt"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/db"
)

// Column describes one physical column of a table.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// TableSchema is the ordered column list of a named table. An empty column
// list signals "table not found"; callers must treat it that way rather
// than expecting an error.
type TableSchema struct {
	Table   string   `json:"table"`
	Columns []Column `json:"columns"`
}

// Found reports whether the catalog knew the table.
func (ts TableSchema) Found() bool {
	return len(ts.Columns) > 0
}

// ReadSchema reads column metadata for a named table from the store's
// catalog, scoped to the active database namespace. Safe to invoke
// concurrently for distinct tables.
func ReadSchema(ctx context.Context, store *db.Store, table string) (TableSchema, error) {
	query, args := catalogQuery(store.Config().StoreType, table)

	rows, err := store.DB().QueryxContext(ctx, query, args...)
	if err != nil {
		return TableSchema{}, fmt.Errorf("failed to read catalog for %s: %w", table, err)
	}
	defer rows.Close()

	ts := TableSchema{Table: table}
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return TableSchema{}, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		ts.Columns = append(ts.Columns, Column{Name: name, DataType: dataType})
	}
	if err := rows.Err(); err != nil {
		return TableSchema{}, fmt.Errorf("catalog iteration failed: %w", err)
	}

	return ts, nil
}

func catalogQuery(storeType db.StoreType, table string) (string, []interface{}) {
	switch storeType {
	case db.StoreTypePostgreSQL:
		return `SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_name = $1 AND table_schema = current_schema()
			ORDER BY ordinal_position`, []interface{}{table}
	case db.StoreTypeSQLite:
		return `SELECT name, type FROM pragma_table_info(?)`, []interface{}{table}
	default:
		return `SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_name = ? AND table_schema = DATABASE()
			ORDER BY ordinal_position`, []interface{}{table}
	}
}

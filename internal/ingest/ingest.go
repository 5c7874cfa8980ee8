package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/db"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/schema"
)

// Result reports what an upload produced. The new table is immediately
// discoverable through the schema catalog reader.
type Result struct {
	Table   string `json:"table"`
	Rows    int64  `json:"rows"`
	Columns int    `json:"columns"`
}

// batchSize bounds the number of rows per INSERT statement.
const batchSize = 500

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// SanitizeTableName maps an arbitrary upload name onto the same identifier
// alphabet the query builder enforces. An empty result falls back to a
// generated name.
func SanitizeTableName(name string) string {
	name = strings.TrimSuffix(name, ".csv")
	name = strings.TrimSuffix(name, ".json")
	name = unsafeChars.ReplaceAllString(strings.ToLower(name), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "upload_" + strings.ReplaceAll(uuid.New().String()[:8], "-", "")
	}
	return name
}

// uniqueTableName checks the schema catalog for the requested name and, when
// a table already exists under it, appends a short random suffix so the
// upload never lands in an existing table.
func uniqueTableName(ctx context.Context, store *db.Store, table string) (string, error) {
	existing, err := schema.ReadSchema(ctx, store, table)
	if err != nil {
		return "", err
	}
	if !existing.Found() {
		return table, nil
	}
	return table + "_" + strings.ReplaceAll(uuid.New().String()[:8], "-", ""), nil
}

// CSV ingests a CSV stream into a new table named after the upload. The
// first record is the header; every column is created as TEXT since uploads
// carry no type information.
func CSV(ctx context.Context, store *db.Store, table string, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, apperr.Validation("failed to read CSV header: %v", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = SanitizeTableName(col)
	}

	table, err = uniqueTableName(ctx, store, table)
	if err != nil {
		return nil, err
	}
	if err := createTable(ctx, store, table, columns); err != nil {
		return nil, err
	}

	var total int64
	batch := make([][]interface{}, 0, batchSize)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Validation("malformed CSV record: %v", err)
		}

		row := make([]interface{}, len(columns))
		for i := range columns {
			if i < len(record) {
				row[i] = record[i]
			}
		}
		batch = append(batch, row)

		if len(batch) == batchSize {
			n, err := insertBatch(ctx, store, table, columns, batch)
			if err != nil {
				return nil, err
			}
			total += n
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		n, err := insertBatch(ctx, store, table, columns, batch)
		if err != nil {
			return nil, err
		}
		total += n
	}

	return &Result{Table: table, Rows: total, Columns: len(columns)}, nil
}

// JSON ingests a JSON array of objects. The column set is the sorted union
// of all object keys; missing keys become NULL.
func JSON(ctx context.Context, store *db.Store, table string, r io.Reader) (*Result, error) {
	var records []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, apperr.Validation("failed to decode JSON array: %v", err)
	}
	if len(records) == 0 {
		return nil, apperr.Validation("JSON upload contains no records")
	}

	keySet := make(map[string]struct{})
	for _, rec := range records {
		for key := range rec {
			keySet[SanitizeTableName(key)] = struct{}{}
		}
	}
	columns := make([]string, 0, len(keySet))
	for key := range keySet {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	table, err := uniqueTableName(ctx, store, table)
	if err != nil {
		return nil, err
	}
	if err := createTable(ctx, store, table, columns); err != nil {
		return nil, err
	}

	var total int64
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		batch := make([][]interface{}, 0, end-start)
		for _, rec := range records[start:end] {
			normalized := make(map[string]interface{}, len(rec))
			for key, val := range rec {
				normalized[SanitizeTableName(key)] = flattenValue(val)
			}
			row := make([]interface{}, len(columns))
			for i, col := range columns {
				row[i] = normalized[col]
			}
			batch = append(batch, row)
		}

		n, err := insertBatch(ctx, store, table, columns, batch)
		if err != nil {
			return nil, err
		}
		total += n
	}

	return &Result{Table: table, Rows: total, Columns: len(columns)}, nil
}

func createTable(ctx context.Context, store *db.Store, table string, columns []string) error {
	if len(columns) == 0 {
		return apperr.Validation("upload has no usable columns")
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("`%s` TEXT", col)
	}

	stmt := fmt.Sprintf("CREATE TABLE `%s` (%s)", table, strings.Join(defs, ", "))
	if _, err := store.ExecuteSQL(ctx, stmt); err != nil {
		return err
	}
	return nil
}

// insertBatch performs one multi-row parameterized INSERT.
func insertBatch(ctx context.Context, store *db.Store, table string, columns []string, batch [][]interface{}) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = "`" + col + "`"
	}
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	valueStrings := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(columns)*len(batch))
	for _, row := range batch {
		valueStrings = append(valueStrings, rowPlaceholder)
		args = append(args, row...)
	}

	stmt := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES %s",
		table,
		strings.Join(quoted, ", "),
		strings.Join(valueStrings, ", "))

	result, err := store.ExecuteSQL(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return result.AffectedRows, nil
}

// flattenValue serializes nested JSON values so every cell fits a TEXT
// column.
func flattenValue(val interface{}) interface{} {
	switch val.(type) {
	case nil, string, float64, bool:
		return val
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

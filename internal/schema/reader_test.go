package schema

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/db"
)

func newMockStore(t *testing.T) (*db.Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return db.NewStoreFromDB(sqlx.NewDb(mockDB, "mysql"), db.StoreTypeMySQL), mock
}

func TestReadSchema(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT column_name, data_type`).
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("id", "int").
			AddRow("total", "decimal"))

	ts, err := ReadSchema(context.Background(), store, "orders")
	if err != nil {
		t.Fatalf("ReadSchema() error = %v", err)
	}
	if !ts.Found() {
		t.Fatal("expected schema to be found")
	}
	if len(ts.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(ts.Columns))
	}
	if ts.Columns[0].Name != "id" || ts.Columns[0].DataType != "int" {
		t.Errorf("first column = %+v", ts.Columns[0])
	}
	if got := Format(ts); got != "orders(id int, total decimal)" {
		t.Errorf("Format() = %q", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReadSchemaUnknownTableIsEmptyNotError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT column_name, data_type`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}))

	ts, err := ReadSchema(context.Background(), store, "ghost")
	if err != nil {
		t.Fatalf("ReadSchema() error = %v", err)
	}
	if ts.Found() {
		t.Error("unknown table must yield an empty schema, not an error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

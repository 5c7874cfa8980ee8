package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return NewStoreFromDB(sqlx.NewDb(mockDB, "mysql"), StoreTypeMySQL), mock
}

func TestIsRowReturning(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM orders", true},
		{"  select 1", true},
		{"WITH t AS (SELECT 1) SELECT * FROM t", true},
		{"SHOW TABLES", true},
		{"DESCRIBE orders", true},
		{"EXPLAIN SELECT 1", true},
		{"INSERT INTO orders VALUES (1)", false},
		{"UPDATE orders SET total = 0", false},
		{"DELETE FROM orders", false},
		{"DROP TABLE orders", false},
		{"TRUNCATE TABLE orders", false},
	}

	for _, tc := range cases {
		if got := IsRowReturning(tc.sql); got != tc.want {
			t.Errorf("IsRowReturning(%q) = %v, want %v", tc.sql, got, tc.want)
		}
	}
}

func TestExecuteSQLSelect(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), []byte("first")).
			AddRow(int64(2), []byte("second")))

	result, err := store.ExecuteSQL(context.Background(), "SELECT * FROM orders")
	if err != nil {
		t.Fatalf("ExecuteSQL() error = %v", err)
	}

	if result.AffectedRows != 0 {
		t.Errorf("AffectedRows = %d, want 0 for SELECT", result.AffectedRows)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(result.Rows))
	}
	// []byte cells come back as strings
	if result.Rows[0]["name"] != "first" {
		t.Errorf("name = %v (%T), want string \"first\"", result.Rows[0]["name"], result.Rows[0]["name"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestExecuteSQLMutation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM orders`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	result, err := store.ExecuteSQL(context.Background(), "DELETE FROM orders WHERE total < 1")
	if err != nil {
		t.Fatalf("ExecuteSQL() error = %v", err)
	}

	if result.AffectedRows != 3 {
		t.Errorf("AffectedRows = %d, want 3", result.AffectedRows)
	}
	if len(result.Rows) != 0 {
		t.Errorf("rows = %d, want empty for mutation", len(result.Rows))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestExecuteSQLStoreFailureIsQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT nope`).
		WillReturnError(errors.New("Unknown column 'nope'"))

	_, err := store.ExecuteSQL(context.Background(), "SELECT nope")
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindQuery {
		t.Fatalf("expected query error, got %v", err)
	}
	// The store's message must be carried to the caller.
	if want := "Unknown column 'nope'"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q missing store message %q", err.Error(), want)
	}
}

func TestExecuteSQLInsertWithArgs(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO `orders`").
		WithArgs(1, 9.5).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result, err := store.ExecuteSQL(context.Background(),
		"INSERT INTO `orders` (`id`, `total`) VALUES (?, ?)", 1, 9.5)
	if err != nil {
		t.Fatalf("ExecuteSQL() error = %v", err)
	}
	if result.AffectedRows != 1 {
		t.Errorf("AffectedRows = %d, want 1", result.AffectedRows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

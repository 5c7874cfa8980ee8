package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql" // MySQL (primary dialect)
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL pgx/v5 driver
	_ "github.com/lib/pq"              // PostgreSQL legacy (keep for compatibility)
	_ "github.com/mattn/go-sqlite3"    // SQLite
)

// StoreType represents supported relational stores
type StoreType string

const (
	StoreTypeMySQL      StoreType = "mysql"
	StoreTypePostgreSQL StoreType = "postgresql"
	StoreTypeSQLite     StoreType = "sqlite"
)

// ConnectionConfig represents store connection configuration
type ConnectionConfig struct {
	StoreType StoreType

	// Either ConnectionString OR specific fields
	ConnectionString string

	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// File-based stores
	FilePath string

	// Pool configuration
	PoolSize       int
	MaxConnections int
	TimeoutMs      int
	IdleTimeoutMs  int
}

// Store is the process-wide connection pool. It is the only cross-request
// shared resource; everything else in the pipeline is request-scoped.
type Store struct {
	db     *sqlx.DB
	config ConnectionConfig
}

// ConnectionBuilder provides a fluent interface for building connections
type ConnectionBuilder struct {
	config ConnectionConfig
}

// NewConnectionBuilder creates a new connection builder
func NewConnectionBuilder(storeType StoreType) *ConnectionBuilder {
	return &ConnectionBuilder{
		config: ConnectionConfig{
			StoreType:      storeType,
			PoolSize:       10,
			MaxConnections: 100,
			TimeoutMs:      30000,
			IdleTimeoutMs:  300000,
		},
	}
}

// ConnectionString sets the connection string
func (cb *ConnectionBuilder) ConnectionString(connStr string) *ConnectionBuilder {
	cb.config.ConnectionString = connStr
	return cb
}

// Host sets the store host
func (cb *ConnectionBuilder) Host(host string) *ConnectionBuilder {
	cb.config.Host = host
	return cb
}

// Port sets the store port
func (cb *ConnectionBuilder) Port(port int) *ConnectionBuilder {
	cb.config.Port = port
	return cb
}

// Database sets the database name
func (cb *ConnectionBuilder) Database(database string) *ConnectionBuilder {
	cb.config.Database = database
	return cb
}

// Username sets the store username
func (cb *ConnectionBuilder) Username(username string) *ConnectionBuilder {
	cb.config.Username = username
	return cb
}

// Password sets the store password
func (cb *ConnectionBuilder) Password(password string) *ConnectionBuilder {
	cb.config.Password = password
	return cb
}

// SSLMode sets SSL mode
func (cb *ConnectionBuilder) SSLMode(sslMode string) *ConnectionBuilder {
	cb.config.SSLMode = sslMode
	return cb
}

// FilePath sets the file path for file-based stores
func (cb *ConnectionBuilder) FilePath(filePath string) *ConnectionBuilder {
	cb.config.FilePath = filePath
	return cb
}

// PoolSize sets the connection pool size
func (cb *ConnectionBuilder) PoolSize(size int) *ConnectionBuilder {
	cb.config.PoolSize = size
	return cb
}

// MaxConnections sets the maximum number of connections
func (cb *ConnectionBuilder) MaxConnections(max int) *ConnectionBuilder {
	cb.config.MaxConnections = max
	return cb
}

// Timeout sets the connection timeout in milliseconds
func (cb *ConnectionBuilder) Timeout(timeout int) *ConnectionBuilder {
	cb.config.TimeoutMs = timeout
	return cb
}

// Build creates and returns a store connection
func (cb *ConnectionBuilder) Build() (*Store, error) {
	return Connect(cb.config)
}

// Connect creates a new store connection using the provided configuration
func Connect(config ConnectionConfig) (*Store, error) {
	var dsn string
	var driverName string

	if config.ConnectionString != "" {
		// Try to detect store type from connection string
		if strings.Contains(config.ConnectionString, "postgres://") {
			driverName = "pgx"
			dsn = config.ConnectionString
		} else if strings.Contains(config.ConnectionString, ".db") || strings.Contains(config.ConnectionString, ".sqlite") {
			driverName = "sqlite3"
			dsn = config.ConnectionString
		} else {
			// MySQL DSNs carry no scheme prefix (user:pass@tcp(host)/db)
			driverName = "mysql"
			dsn = strings.TrimPrefix(config.ConnectionString, "mysql://")
		}
	} else {
		switch config.StoreType {
		case StoreTypeMySQL:
			dsn = buildMySQLDSN(config)
			driverName = "mysql"
		case StoreTypePostgreSQL:
			dsn = buildPostgreSQLDSN(config)
			driverName = "pgx"
		case StoreTypeSQLite:
			dsn = config.FilePath
			driverName = "sqlite3"
		default:
			return nil, fmt.Errorf("unsupported store type: %s", config.StoreType)
		}
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.TimeoutMs)*time.Millisecond)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	// Configure connection pool: bounded concurrent connections, callers
	// queue beyond the bound rather than being rejected.
	db.SetMaxOpenConns(config.MaxConnections)
	db.SetMaxIdleConns(config.PoolSize)
	db.SetConnMaxLifetime(time.Duration(config.IdleTimeoutMs) * time.Millisecond)

	return &Store{
		db:     db,
		config: config,
	}, nil
}

// buildMySQLDSN builds a MySQL connection string
func buildMySQLDSN(config ConnectionConfig) string {
	port := config.Port
	if port == 0 {
		port = 3306
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)", config.Username, config.Password, config.Host, port)
	if config.Database != "" {
		dsn += fmt.Sprintf("/%s", config.Database)
	}

	return dsn + "?parseTime=true&loc=Local"
}

// buildPostgreSQLDSN builds a PostgreSQL connection string
func buildPostgreSQLDSN(config ConnectionConfig) string {
	port := config.Port
	if port == 0 {
		port = 5432
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s", config.Host, port, config.Username)
	if config.Password != "" {
		dsn += fmt.Sprintf(" password=%s", config.Password)
	}
	if config.Database != "" {
		dsn += fmt.Sprintf(" dbname=%s", config.Database)
	}
	if config.SSLMode != "" {
		dsn += fmt.Sprintf(" sslmode=%s", config.SSLMode)
	} else {
		dsn += " sslmode=disable"
	}
	return dsn
}

// NewStoreFromDB wraps an existing *sqlx.DB. Used by tests to inject a mock
// connection.
func NewStoreFromDB(db *sqlx.DB, storeType StoreType) *Store {
	return &Store{
		db:     db,
		config: ConnectionConfig{StoreType: storeType},
	}
}

// Close drains the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sqlx.DB instance
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Config returns the connection configuration
func (s *Store) Config() ConnectionConfig {
	return s.config
}

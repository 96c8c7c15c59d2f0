package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Config holds database configuration with environment variable support.
type Config struct {
	// Path is the SQLite database file. The parent directory must
	// exist; the file is created on first open. Use ":memory:" in
	// tests with PoolSize 1, since each in-memory connection is an
	// independent database.
	Path string `env:"DATABASE_PATH" envDefault:"./data/portfolio.db"`

	// PoolSize is the number of pooled connections. Zero or negative
	// picks a CPU-based default. SQLite serializes writes regardless,
	// so extra connections only help concurrent reads.
	PoolSize int `env:"DATABASE_POOL_SIZE" envDefault:"4"`
}

// DB is a fixed-size pool of SQLite connections with the schema applied
// and standard pragmas set on every connection.
//
// DB is safe for concurrent use. Individual connections are not; each
// goroutine must Take its own connection and Put it back when done.
type DB struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open creates the connection pool and verifies the database is usable
// by preparing one connection, which applies pragmas and the idempotent
// schema script. A broken path or schema fails here, not on first
// request. The caller must Close the pool when done.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage: database path is required")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
		if poolSize < 4 {
			poolSize = 4
		}
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", cfg.Path, err)
	}

	db := &DB{
		pool:   pool,
		logger: logger,
		path:   cfg.Path,
	}

	// Connections prepare lazily; force the first one now so schema
	// errors surface at boot.
	conn, err := db.Take(context.Background())
	if err != nil {
		_ = pool.Close()
		return nil, err
	}
	db.Put(conn)

	logger.Info("sqlite database opened",
		"path", cfg.Path,
		"pool_size", poolSize,
	)

	return db, nil
}

// Take borrows a connection from the pool. Blocks until a connection is
// available or ctx is canceled. The caller must Put it back, typically
// via defer.
func (db *DB) Take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := db.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: take connection: %w", err)
	}
	return conn, nil
}

// Put returns a connection to the pool. Safe to call with nil (no-op).
func (db *DB) Put(conn *sqlite.Conn) {
	db.pool.Put(conn)
}

// Close closes all connections. Blocks until borrowed connections are
// returned.
func (db *DB) Close() error {
	if err := db.pool.Close(); err != nil {
		db.logger.Error("sqlite close error", "path", db.path, "error", err)
		return fmt.Errorf("storage: closing %s: %w", db.path, err)
	}
	db.logger.Info("sqlite database closed", "path", db.path)
	return nil
}

// Ping verifies a connection can be taken and queried. Shaped to plug
// into health.Readiness directly.
func (db *DB) Ping(ctx context.Context) error {
	conn, err := db.Take(ctx)
	if err != nil {
		return err
	}
	defer db.Put(conn)

	err = sqlitex.ExecuteTransient(conn, "SELECT 1", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error { return nil },
	})
	if err != nil {
		return fmt.Errorf("storage: ping: %w", err)
	}
	return nil
}

// prepareConnection applies the standard pragmas and the schema script.
// Runs once per pooled connection, on first use. The schema is
// IF NOT EXISTS throughout, so reapplying it per connection is free and
// keeps in-memory databases usable.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("storage: %s: %w", pragma, err)
		}
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("storage: applying schema: %w", err)
	}

	return nil
}

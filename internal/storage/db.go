// Package storage persists preprocessor output across runs, keyed by
// source content hash, so unchanged files skip the external subprocess
// entirely.
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/mbund/cse2331-linter/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS preproc_cache (
	content_hash TEXT NOT NULL,
	debug        INTEGER NOT NULL,
	output       BLOB NOT NULL,
	created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
	PRIMARY KEY (content_hash, debug)
);
`

// DB wraps the cache database connection.
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the cache database at <baseDir>/.clint/clint.db.
func Open(baseDir string, logger *logging.Logger) (*DB, error) {
	clintDir := filepath.Join(baseDir, ".clint")
	if err := os.MkdirAll(clintDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .clint directory: %w", err)
	}

	dbPath := filepath.Join(clintDir, "clint.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logger.Debug("Opened preprocessor cache", map[string]interface{}{
		"path": dbPath,
	})

	return &DB{conn: conn, logger: logger, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.dbPath
}

// ContentHash derives a cache key from source content plus the
// preprocessor invocation identity, so changing either the source or
// the preprocessor configuration invalidates the entry.
func ContentHash(source []byte, invocation ...string) string {
	h := sha256.New()
	h.Write(source)
	for _, part := range invocation {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

package storage

import (
	"database/sql"
	"fmt"
)

// Get returns the cached preprocessor output for a content hash, or
// ok=false when the entry is absent.
func (db *DB) Get(contentHash string, debug bool) ([]byte, bool, error) {
	var output []byte
	err := db.conn.QueryRow(`
		SELECT output FROM preproc_cache
		WHERE content_hash = ? AND debug = ?
	`, contentHash, boolToInt(debug)).Scan(&output)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}
	return output, true, nil
}

// Put stores preprocessor output under a content hash, replacing any
// previous entry.
func (db *DB) Put(contentHash string, debug bool, output []byte) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO preproc_cache (content_hash, debug, output)
		VALUES (?, ?, ?)
	`, contentHash, boolToInt(debug), output)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Stats reports the number of entries and their total output bytes.
func (db *DB) Stats() (entries int, bytes int64, err error) {
	err = db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(LENGTH(output)), 0) FROM preproc_cache
	`).Scan(&entries, &bytes)
	if err != nil {
		return 0, 0, fmt.Errorf("cache stats failed: %w", err)
	}
	return entries, bytes, nil
}

// Clear removes every cache entry.
func (db *DB) Clear() (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM preproc_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

//go:build !sqlite_fts5

package index

import "database/sql"

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE on the recipes table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _ string, _ []string) error {
	// Body is already stored in the recipes table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) error { return nil }

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return db.likeSearch(query, limit)
}

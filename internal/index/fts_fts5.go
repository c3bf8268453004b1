//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"
)

// The trigram tokenizer matches substrings, which suits unsegmented Chinese
// text. It cannot match queries shorter than three characters.
const trigramMin = 3

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS recipes_fts USING fts5(
			filename UNINDEXED,
			name,
			body,
			tags,
			tokenize = 'trigram'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, filename, name, body string, tags []string) error {
	_, _ = tx.Exec(`DELETE FROM recipes_fts WHERE filename = ?`, filename)
	_, err := tx.Exec(`INSERT INTO recipes_fts (filename, name, body, tags) VALUES (?, ?, ?, ?)`,
		filename, name, body, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, filename string) error {
	if _, err := tx.Exec(`DELETE FROM recipes_fts WHERE filename = ?`, filename); err != nil {
		return fmt.Errorf("index: delete fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search and returns matching results with
// snippets. Short queries fall back to LIKE.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if utf8.RuneCountInString(query) < trigramMin {
		return db.likeSearch(query, limit)
	}
	rows, err := db.conn.Query(`
		SELECT filename,
		       name,
		       snippet(recipes_fts, 2, '<b>', '</b>', '...', 64)
		FROM recipes_fts
		WHERE recipes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, phrase(query), limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Filename, &r.Name, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// phrase quotes query as a single FTS5 string so user input is never parsed
// as query syntax.
func phrase(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}

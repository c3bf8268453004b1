package index

import (
	"encoding/json"
	"fmt"
)

// RecipeRow represents a row in the recipes table.
type RecipeRow struct {
	Filename  string
	Name      string
	CreatedAt string
	Checksum  string
	Tags      []string
}

// SearchResult represents one search hit.
type SearchResult struct {
	Filename string
	Name     string
	Snippet  string
}

// Upsert inserts or replaces a recipe and its FTS entry within a transaction.
func (db *DB) Upsert(r RecipeRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	_, err = tx.Exec(`
		INSERT INTO recipes (filename, name, created_at, checksum, tags, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			name       = excluded.name,
			created_at = excluded.created_at,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body
	`, r.Filename, r.Name, r.CreatedAt, r.Checksum, string(tagsJSON), body)
	if err != nil {
		return fmt.Errorf("index: upsert recipe: %w", err)
	}

	// No-op when the FTS5 tag is absent.
	if err := ftsUpsert(tx, r.Filename, r.Name, body, tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a recipe and its FTS entry.
func (db *DB) Delete(filename string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := ftsDelete(tx, filename); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM recipes WHERE filename = ?`, filename); err != nil {
		return fmt.Errorf("index: delete recipe: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum for a recipe, or empty string if not found.
func (db *DB) GetChecksum(filename string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM recipes WHERE filename = ?`, filename).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns filename → checksum for every indexed recipe.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT filename, checksum FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var name, cs string
		if err := rows.Scan(&name, &cs); err != nil {
			return nil, err
		}
		out[name] = cs
	}
	return out, rows.Err()
}

// likeSearch matches the query as a substring of name, body, or tags,
// newest recipes first.
func (db *DB) likeSearch(query string, limit int) ([]SearchResult, error) {
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT filename, name, substr(body, 1, 200)
		FROM recipes
		WHERE name LIKE ? OR body LIKE ? OR tags LIKE ?
		ORDER BY created_at DESC, filename
		LIMIT ?
	`, like, like, like, limit)
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

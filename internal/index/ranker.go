package index

import (
	"context"
	"fmt"

	"github.com/starford/smartchef/internal/models"
)

// rankLimit bounds how many hits a ranker returns per query.
const rankLimit = 20

// Ranker ranks recipes with the SQLite index. It matches the full bodies
// indexed by Sync and the watcher, not the truncated Content it is handed;
// Content is only stored for documents the index has not seen yet.
type Ranker struct {
	db *DB
}

// NewRanker returns a Ranker backed by db.
func NewRanker(db *DB) *Ranker {
	return &Ranker{db: db}
}

// Rank returns filenames matching query, best first.
func (r *Ranker) Rank(ctx context.Context, query string, docs []models.SearchDoc) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	known, err := r.db.AllChecksums()
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if _, ok := known[d.Filename]; ok {
			continue
		}
		// Empty checksum so the next sync replaces the excerpt with the full body.
		row := RecipeRow{Filename: d.Filename, Name: d.Name}
		if err := r.db.Upsert(row, d.Content); err != nil {
			return nil, fmt.Errorf("index: rank: %w", err)
		}
	}

	hits, err := r.db.Search(query, rankLimit)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.Filename)
	}
	return out, nil
}

package index

import (
	"log/slog"

	"github.com/starford/smartchef/internal/frontmatter"
	"github.com/starford/smartchef/internal/storage"
)

// Sync scans the recipes directory and brings the index up to date:
//   - new/changed files are decoded and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Name] = struct{}{}

		data, err := store.Read(m.Name)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("file", m.Name), slog.String("error", err.Error()))
			continue
		}
		if checksums[m.Name] == storage.Checksum(data) {
			continue
		}
		if err := indexFile(db, m.Name, data); err != nil {
			logger.Warn("sync: index failed", slog.String("file", m.Name), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("file", m.Name))
		}
	}

	for name := range checksums {
		if _, ok := disk[name]; !ok {
			if err := db.Delete(name); err != nil {
				logger.Warn("sync: delete failed", slog.String("file", name), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("file", name))
			}
		}
	}

	return nil
}

// indexFile decodes data and upserts it into the DB.
func indexFile(db *DB, filename string, data []byte) error {
	meta, body := frontmatter.Decode(string(data))

	name, _ := meta.Get("name")
	if name == "" {
		name = storage.BaseName(filename)
	}
	createdAt, _ := meta.Get("created_at")
	tags, _ := meta.Get("tags")
	row := RecipeRow{
		Filename:  filename,
		Name:      name,
		CreatedAt: createdAt,
		Checksum:  storage.Checksum(data),
		Tags:      frontmatter.SplitList(tags),
	}
	return db.Upsert(row, body)
}

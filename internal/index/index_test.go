package index

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/smartchef/internal/models"
	"github.com/starford/smartchef/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "smartchef-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM recipes`).Scan(&count); err != nil {
		t.Fatalf("recipes table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := RecipeRow{
		Filename:  "番茄炒蛋_20240101_120000.md",
		Name:      "番茄炒蛋",
		CreatedAt: "20240101_120000",
		Checksum:  "abc123",
		Tags:      []string{"AI生成"},
	}
	if err := db.Upsert(row, "## 食材\n- 鸡蛋 4个"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	cs, err := db.GetChecksum(row.Filename)
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "up.md", Name: "Old", Checksum: "1"}, "old body")
	_ = db.Upsert(RecipeRow{Filename: "up.md", Name: "New", Checksum: "2"}, "new body")

	all, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(all) != 1 || all["up.md"] != "2" {
		t.Errorf("checksums = %v", all)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "del.md", Checksum: "x"}, "body")

	if err := db.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	cs, _ := db.GetChecksum("del.md")
	if cs != "" {
		t.Errorf("deleted recipe still has checksum %q", cs)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestSearch_MatchesNameBodyAndTags(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "a.md", Name: "宫保鸡丁", CreatedAt: "20240101_090000"}, "花生米 鸡胸肉")
	_ = db.Upsert(RecipeRow{Filename: "b.md", Name: "牛肉面", CreatedAt: "20240102_090000", Tags: []string{"面食"}}, "牛肉 面条 葱花")
	_ = db.Upsert(RecipeRow{Filename: "c.md", Name: "葱油饼", CreatedAt: "20240103_090000"}, "面粉 葱花")

	cases := []struct {
		query string
		want  []string
	}{
		{"宫保鸡丁", []string{"a.md"}},
		{"葱花", []string{"c.md", "b.md"}},
		{"面食", []string{"b.md"}},
		{"不存在的菜", nil},
	}
	for _, c := range cases {
		results, err := db.Search(c.query, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", c.query, err)
		}
		var got []string
		for _, r := range results {
			got = append(got, r.Filename)
		}
		if len(got) != len(c.want) {
			t.Errorf("Search(%q) = %v, want %v", c.query, got, c.want)
			continue
		}
		// FTS5 ranks by relevance, so only the LIKE build has a fixed order.
		seen := map[string]bool{}
		for _, g := range got {
			seen[g] = true
		}
		for _, w := range c.want {
			if !seen[w] {
				t.Errorf("Search(%q) = %v, missing %s", c.query, got, w)
			}
		}
	}
}

func TestSync_LegacyNameAndUnreadableFile(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	_ = os.WriteFile(filepath.Join(dir, "legacy.md"), []byte("plain body"), 0o644)
	if err := os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "broken.md")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	var name string
	if err := db.conn.QueryRow(`SELECT name FROM recipes WHERE filename = ?`, "legacy.md").Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name != "legacy" {
		t.Errorf("name = %q, want legacy", name)
	}
	if cs, _ := db.GetChecksum("broken.md"); cs != "" {
		t.Error("unreadable file should not be indexed")
	}
}

func TestSync_IndexesAndRemovesStale(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	content := "---\nname: 红烧肉\ncreated_at: 20240101_120000\ntags: [AI生成, 家常]\n---\n\n## 食材\n- 五花肉 500克\n"
	_ = os.WriteFile(filepath.Join(dir, "红烧肉_20240101_120000.md"), []byte(content), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "清炒时蔬_20240102_080000.md"), []byte("no front matter"), 0o644)
	_ = db.Upsert(RecipeRow{Filename: "stale.md", Checksum: "s"}, "")

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	all, _ := db.AllChecksums()
	if len(all) != 2 {
		t.Fatalf("indexed = %v, want 2 entries", all)
	}
	if _, ok := all["stale.md"]; ok {
		t.Error("stale entry not removed")
	}

	var name, tags string
	if err := db.conn.QueryRow(`SELECT name, tags FROM recipes WHERE filename = ?`, "红烧肉_20240101_120000.md").Scan(&name, &tags); err != nil {
		t.Fatal(err)
	}
	if name != "红烧肉" || tags != `["AI生成","家常"]` {
		t.Errorf("name=%q tags=%q", name, tags)
	}

	if err := db.conn.QueryRow(`SELECT name FROM recipes WHERE filename = ?`, "清炒时蔬_20240102_080000.md").Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name != "清炒时蔬" {
		t.Errorf("fallback name = %q", name)
	}
}

func TestRanker_IndexesUnknownDocs(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "known.md", Name: "麻婆豆腐", Checksum: "k"}, "豆腐 花椒")

	r := NewRanker(db)
	docs := []models.SearchDoc{
		{Filename: "known.md", Name: "麻婆豆腐", Content: "豆腐 花椒"},
		{Filename: "new.md", Name: "家常豆腐", Content: "豆腐 青椒"},
	}
	got, err := r.Rank(context.Background(), "豆腐", docs)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Rank = %v, want both docs", got)
	}

	cs, _ := db.GetChecksum("new.md")
	if cs != "" {
		t.Errorf("ranker-inserted doc should carry an empty checksum, got %q", cs)
	}
}

func TestRanker_CancelledContext(t *testing.T) {
	r := NewRanker(testDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Rank(ctx, "豆腐", nil); err == nil {
		t.Error("expected context error")
	}
}

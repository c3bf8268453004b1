//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM recipes_fts`).Scan(&count); err != nil {
		t.Fatalf("recipes_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := RecipeRow{Filename: "fts.md", Name: "清蒸鲈鱼", Checksum: "f1", Tags: []string{"海鲜"}}
	if err := db.Upsert(row, "鲈鱼一条，姜丝葱丝铺底，大火蒸八分钟。"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := db.Search("大火蒸", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Filename != "fts.md" {
		t.Errorf("filename = %q", results[0].Filename)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_ShortQueryFallsBackToLike(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "egg.md", Name: "蛋羹", Checksum: "e"}, "鸡蛋 温水")

	results, err := db.Search("鸡蛋", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %+v", results)
	}
}

func TestFTS5_QuerySyntaxIsQuoted(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "q.md", Name: "AND OR NOT", Checksum: "q"}, `say "hello" AND goodbye`)

	if _, err := db.Search(`"hello" AND`, 10); err != nil {
		t.Fatalf("Search with operators: %v", err)
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "gone.md", Checksum: "g"}, "vanishing content")
	_ = db.Delete("gone.md")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.Filename == "gone.md" {
			t.Error("deleted recipe still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(RecipeRow{Filename: "evo.md", Name: "Old", Checksum: "1"}, "original text")
	_ = db.Upsert(RecipeRow{Filename: "evo.md", Name: "New", Checksum: "2"}, "replacement text")

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Name != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}

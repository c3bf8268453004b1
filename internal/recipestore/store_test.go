package recipestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/smartchef/internal/apperr"
	"github.com/starford/smartchef/internal/models"
	"github.com/starford/smartchef/internal/storage"
)

// fixedClock returns successive times from ts, repeating the last one.
func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func at(hhmmss string) time.Time {
	t, err := time.ParseInLocation(TimestampLayout, "20240101_"+hhmmss, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "recipes")
	fs, err := storage.NewFS(dir)
	require.NoError(t, err)
	return New(fs, opts...), fs.Root()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, dir := newTestStore(t, WithClock(fixedClock(at("120000"))))
	ctx := context.Background()

	body := "# 番茄炒蛋\n## 食材\n- 鸡蛋 4个\n"
	path, err := s.Save(ctx, body, "番茄炒蛋", []string{"家常", "快手"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "番茄炒蛋_20240101_120000.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"---\nname: 番茄炒蛋\ncreated_at: 20240101_120000\ntags: [家常, 快手]\n---\n\n"+body,
		string(raw))

	rec, err := s.Load(ctx, "番茄炒蛋")
	require.NoError(t, err)
	assert.Equal(t, body, rec.Body)
	assert.Equal(t, "番茄炒蛋", rec.Name)
	assert.Equal(t, "20240101_120000", rec.CreatedAt)
	assert.Equal(t, []string{"家常", "快手"}, rec.Tags)
	assert.Equal(t, "[家常, 快手]", rec.Meta["tags"])
	assert.Equal(t, path, rec.Path)
}

func TestSave_NoBOM(t *testing.T) {
	s, _ := newTestStore(t)
	path, err := s.Save(context.Background(), "body", "粥", nil)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "---\n"))
	assert.Contains(t, string(raw), "tags: []\n")
}

func TestSave_SanitizesFilenameOnly(t *testing.T) {
	s, dir := newTestStore(t, WithClock(fixedClock(at("120000"))))
	ctx := context.Background()

	path, err := s.Save(ctx, "很辣", "麻婆豆腐/辣", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "麻婆豆腐_辣_20240101_120000.md"), path)

	rec, err := s.Load(ctx, "麻婆豆腐/辣")
	require.NoError(t, err)
	assert.Equal(t, "麻婆豆腐/辣", rec.Name)
}

func TestSave_EmptyBodyRejected(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Save(context.Background(), "", "空", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestSave_EmptyNameAccepted(t *testing.T) {
	s, dir := newTestStore(t, WithClock(fixedClock(at("080000"))))
	path, err := s.Save(context.Background(), "body", "", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_20240101_080000.md"), path)
}

func TestLoad_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Load(context.Background(), "佛跳墙")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "佛跳墙", nf.Name)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLoad_LatestVersionWins(t *testing.T) {
	s, _ := newTestStore(t, WithClock(fixedClock(at("090000"), at("110000"), at("100000"))))
	ctx := context.Background()

	for _, body := range []string{"v1", "v3", "v2"} {
		_, err := s.Save(ctx, body, "红烧肉", nil)
		require.NoError(t, err)
	}

	rec, err := s.Load(ctx, "红烧肉")
	require.NoError(t, err)
	assert.Equal(t, "v3", rec.Body)
	assert.Equal(t, "红烧肉_20240101_110000.md", rec.Filename)
}

func TestLoad_EmptyName(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Load(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestList_SortedNewestFirst(t *testing.T) {
	s, dir := newTestStore(t, WithClock(fixedClock(at("090000"), at("110000"), at("100000"))))
	ctx := context.Background()

	_, _ = s.Save(ctx, "a", "A", nil)
	_, _ = s.Save(ctx, "b", "B", nil)
	_, _ = s.Save(ctx, "c", "C", nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy_note.md"), []byte("no metadata"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	var got []string
	for _, r := range list {
		got = append(got, r.CreatedAt)
	}
	assert.Equal(t, []string{"20240101_110000", "20240101_100000", "20240101_090000", ""}, got)

	legacy := list[3]
	assert.Equal(t, "legacy", legacy.Name)
	assert.Equal(t, "no metadata", legacy.Body)
	assert.Empty(t, legacy.Tags)
}

func TestList_MissingDirectory(t *testing.T) {
	s, _ := newTestStore(t)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_MalformedFrontMatter(t *testing.T) {
	s, dir := newTestStore(t)
	content := "---\nname: 半截\ncreated_at: 20240101_000000\n"
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "半截_20240101_000000.md"), []byte(content), 0o644))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "半截", list[0].Name)
	assert.Equal(t, "", list[0].CreatedAt)
	assert.Equal(t, content, list[0].Body)
}

// failingRead wraps a provider and fails reads of one file.
type failingRead struct {
	storage.Provider
	name string
}

func (f failingRead) Read(name string) ([]byte, error) {
	if name == f.name {
		return nil, errors.New("disk on fire")
	}
	return f.Provider.Read(name)
}

func TestList_UnreadableFileKept(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Write("坏文件_20240101_000000.md", []byte("x")))

	s := New(failingRead{Provider: fs, name: "坏文件_20240101_000000.md"})
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "坏文件_20240101_000000.md", list[0].Filename)
	assert.Equal(t, "坏文件", list[0].Name)
}

func TestUnreadableFileOnDiskIsNotFatal(t *testing.T) {
	s, dir := newTestStore(t, WithClock(fixedClock(at("120000"))))
	ctx := context.Background()
	_, err := s.Save(ctx, "# 番茄炒蛋\n", "番茄炒蛋", nil)
	require.NoError(t, err)

	broken := "坏文件_20240101_000000.md"
	if err := os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, broken)); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "番茄炒蛋", list[0].Name)
	assert.Equal(t, broken, list[1].Filename)
	assert.Equal(t, "坏文件", list[1].Name)
	assert.Empty(t, list[1].Tags)

	rec, err := s.Load(ctx, "番茄炒蛋")
	require.NoError(t, err)
	assert.Equal(t, "# 番茄炒蛋\n", rec.Body)

	results, err := s.Search(ctx, "番茄")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "番茄炒蛋", results[0].Name)
}

// stubRanker returns a fixed ranking and records what it was given.
type stubRanker struct {
	out   []string
	err   error
	calls int
	docs  []models.SearchDoc
}

func (r *stubRanker) Rank(_ context.Context, _ string, docs []models.SearchDoc) ([]string, error) {
	r.calls++
	r.docs = docs
	return r.out, r.err
}

func TestSearch_FiltersDedupesAndCaps(t *testing.T) {
	ranker := &stubRanker{}
	s, _ := newTestStore(t, WithRanker(ranker), WithClock(fixedClock(
		at("010000"), at("020000"), at("030000"), at("040000"), at("050000"), at("060000"),
	)))
	ctx := context.Background()

	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range names {
		_, err := s.Save(ctx, "body "+n, n, nil)
		require.NoError(t, err)
	}

	ranker.out = []string{
		"made_up.md",
		"b_20240101_020000.md",
		"b_20240101_020000.md",
		"a_20240101_010000.md",
		"c_20240101_030000.md",
		"d_20240101_040000.md",
		"e_20240101_050000.md",
		"f_20240101_060000.md",
	}
	got, err := s.Search(ctx, "anything")
	require.NoError(t, err)
	require.Len(t, got, MaxSearchResults)

	var order []string
	for _, r := range got {
		order = append(order, r.Name)
	}
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, order)
	assert.Len(t, ranker.docs, len(names))
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestSearch_NoRecipesSkipsRanker(t *testing.T) {
	ranker := &stubRanker{}
	s, _ := newTestStore(t, WithRanker(ranker))
	got, err := s.Search(context.Background(), "鸡蛋")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, ranker.calls)
}

func TestSearch_ContentTruncated(t *testing.T) {
	ranker := &stubRanker{}
	s, _ := newTestStore(t, WithRanker(ranker))
	long := strings.Repeat("汤", 600)
	_, err := s.Save(context.Background(), long, "长汤", nil)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "汤")
	require.NoError(t, err)
	require.Len(t, ranker.docs, 1)
	assert.Equal(t, strings.Repeat("汤", 500), ranker.docs[0].Content)
}

func TestSearch_RankerErrorSurfaces(t *testing.T) {
	ranker := &stubRanker{err: errors.New("model down")}
	s, _ := newTestStore(t, WithRanker(ranker))
	_, err := s.Save(context.Background(), "body", "粥", nil)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "粥")
	assert.Error(t, err)
}

func TestSearch_DefaultFuzzyRanker(t *testing.T) {
	s, _ := newTestStore(t, WithClock(fixedClock(at("010000"), at("020000"))))
	ctx := context.Background()
	_, _ = s.Save(ctx, "## 食材\n- 牛肉 300克\n- 土豆 2个", "土豆炖牛肉", nil)
	_, _ = s.Save(ctx, "## 食材\n- 鸡蛋 3个", "蒸蛋", nil)

	got, err := s.Search(ctx, "牛肉")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "土豆炖牛肉", got[0].Name)
}

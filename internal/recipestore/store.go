// Package recipestore persists recipes as Markdown files with a front-matter
// header and reads them back.
package recipestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/starford/smartchef/internal/apperr"
	"github.com/starford/smartchef/internal/frontmatter"
	"github.com/starford/smartchef/internal/models"
	"github.com/starford/smartchef/internal/storage"
)

// TimestampLayout formats created_at values and filename suffixes.
const TimestampLayout = "20060102_150405"

// Front-matter keys written by Save.
const (
	KeyName      = "name"
	KeyCreatedAt = "created_at"
	KeyTags      = "tags"
)

const (
	// MaxSearchResults caps Search output.
	MaxSearchResults = 5
	searchExcerpt    = 500
)

var sanitizer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// Sanitize makes name safe for use as a filename prefix. Only the filename
// is sanitized; the stored name keeps its original form.
func Sanitize(name string) string {
	return sanitizer.Replace(name)
}

// NotFoundError is returned by Load when no file matches the name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recipestore: no recipe named %q", e.Name)
}

// Is lets errors.Is(err, apperr.ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == apperr.ErrNotFound
}

// Store reads and writes recipe files through a storage.Provider.
type Store struct {
	fs     storage.Provider
	clock  func() time.Time
	ranker Ranker
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithRanker sets the search ranker. The default is FuzzyRanker.
func WithRanker(r Ranker) Option {
	return func(s *Store) { s.ranker = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store on top of fs.
func New(fs storage.Provider, opts ...Option) *Store {
	s := &Store{
		fs:     fs,
		clock:  time.Now,
		ranker: FuzzyRanker{},
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the recipes directory.
func (s *Store) Dir() string { return s.fs.Root() }

// Save writes body under a new timestamped filename and returns its path.
// The directory is created if it does not exist.
func (s *Store) Save(_ context.Context, body, name string, tags []string) (string, error) {
	if body == "" {
		return "", fmt.Errorf("recipestore: save: empty body: %w", apperr.ErrInvalidInput)
	}
	if tags == nil {
		tags = []string{}
	}

	createdAt := s.clock().Format(TimestampLayout)
	filename := Sanitize(name) + "_" + createdAt + storage.Ext

	var meta frontmatter.Metadata
	meta.Set(KeyName, name)
	meta.Set(KeyCreatedAt, createdAt)
	meta.SetList(KeyTags, tags)

	content := frontmatter.Encode(meta) + body
	if err := s.fs.Write(filename, []byte(content)); err != nil {
		return "", fmt.Errorf("recipestore: save %s: %w", filename, err)
	}

	path := filepath.Join(s.fs.Root(), filename)
	s.logger.Info("recipe saved", slog.String("name", name), slog.String("file", filename))
	return path, nil
}

// Load returns the newest recipe whose filename starts with the sanitized
// name. Timestamps sort lexicographically, so the greatest filename wins.
func (s *Store) Load(_ context.Context, name string) (*models.Recipe, error) {
	if name == "" {
		return nil, fmt.Errorf("recipestore: load: empty name: %w", apperr.ErrInvalidInput)
	}
	metas, err := s.fs.List()
	if err != nil {
		return nil, fmt.Errorf("recipestore: load: %w", err)
	}

	prefix := Sanitize(name)
	latest := ""
	for _, m := range metas {
		if strings.HasPrefix(m.Name, prefix) && strings.HasSuffix(m.Name, storage.Ext) && m.Name > latest {
			latest = m.Name
		}
	}
	if latest == "" {
		return nil, &NotFoundError{Name: name}
	}

	data, err := s.fs.Read(latest)
	if err != nil {
		return nil, fmt.Errorf("recipestore: load %s: %w", latest, err)
	}
	rec := s.decode(latest, data)
	return &rec, nil
}

// List returns every recipe in the directory, newest first. Files that cannot
// be read are still listed with their filename.
func (s *Store) List(_ context.Context) ([]models.Recipe, error) {
	entries, err := s.scan()
	if err != nil {
		return nil, err
	}
	out := make([]models.Recipe, len(entries))
	for i, e := range entries {
		out[i] = e.recipe
	}
	return out, nil
}

// Search asks the ranker for the recipes most relevant to query. Filenames
// the ranker invents are dropped; at most MaxSearchResults are returned.
func (s *Store) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("recipestore: search: empty query: %w", apperr.ErrInvalidInput)
	}

	entries, err := s.scan()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.Recipe, len(entries))
	docs := make([]models.SearchDoc, 0, len(entries))
	for _, e := range entries {
		byName[e.recipe.Filename] = e.recipe
		if !e.readable {
			continue
		}
		docs = append(docs, models.SearchDoc{
			Filename: e.recipe.Filename,
			Name:     e.recipe.Name,
			Content:  truncateRunes(e.recipe.Body, searchExcerpt),
		})
	}
	if len(docs) == 0 {
		return []models.Recipe{}, nil
	}

	ranked, err := s.ranker.Rank(ctx, query, docs)
	if err != nil {
		return nil, fmt.Errorf("recipestore: search: %w", err)
	}

	out := make([]models.Recipe, 0, MaxSearchResults)
	seen := make(map[string]struct{}, len(ranked))
	for _, filename := range ranked {
		rec, ok := byName[filename]
		if !ok {
			continue
		}
		if _, dup := seen[filename]; dup {
			continue
		}
		seen[filename] = struct{}{}
		out = append(out, rec)
		if len(out) == MaxSearchResults {
			break
		}
	}
	return out, nil
}

type entry struct {
	recipe   models.Recipe
	readable bool
}

// scan reads and decodes every recipe file, sorted by created_at descending.
func (s *Store) scan() ([]entry, error) {
	metas, err := s.fs.List()
	if err != nil {
		return nil, fmt.Errorf("recipestore: list: %w", err)
	}

	out := make([]entry, 0, len(metas))
	for _, m := range metas {
		data, err := s.fs.Read(m.Name)
		if err != nil {
			s.logger.Warn("recipe unreadable", slog.String("file", m.Name), slog.String("error", err.Error()))
			out = append(out, entry{recipe: models.Recipe{
				Name:     storage.BaseName(m.Name),
				Tags:     []string{},
				Filename: m.Name,
				Path:     filepath.Join(s.fs.Root(), m.Name),
			}})
			continue
		}
		out = append(out, entry{recipe: s.decode(m.Name, data), readable: true})
	}

	// Missing created_at is the empty string, which sorts last.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].recipe.CreatedAt > out[j].recipe.CreatedAt
	})
	return out, nil
}

func (s *Store) decode(filename string, data []byte) models.Recipe {
	meta, body := frontmatter.Decode(string(data))

	name, _ := meta.Get(KeyName)
	if name == "" {
		name = storage.BaseName(filename)
	}
	createdAt, _ := meta.Get(KeyCreatedAt)
	tags, _ := meta.Get(KeyTags)

	return models.Recipe{
		Name:      name,
		CreatedAt: createdAt,
		Tags:      frontmatter.SplitList(tags),
		Body:      body,
		Filename:  filename,
		Path:      filepath.Join(s.fs.Root(), filename),
		Meta:      meta.Map(),
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

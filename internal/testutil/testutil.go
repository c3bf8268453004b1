// Package testutil provides shared test helpers for setting up recipe stores,
// databases, and stub generators.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/starford/smartchef/internal/index"
	"github.com/starford/smartchef/internal/recipestore"
	"github.com/starford/smartchef/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "smartchef-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a recipe store over a temporary directory. Its clock
// starts at 2024-01-01 12:00:00 and advances one second per save, so every
// save gets a distinct, increasing filename.
func TestStore(t *testing.T, opts ...recipestore.Option) (*recipestore.Store, storage.Provider) {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tick := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	opts = append([]recipestore.Option{recipestore.WithClock(clock)}, opts...)
	return recipestore.New(fs, opts...), fs
}

// StubText is a TextGenerator that returns a fixed reply or error and records
// the prompts it receives.
type StubText struct {
	Reply string
	Err   error

	mu      sync.Mutex
	prompts []string
}

// Generate records prompt and returns the configured reply.
func (s *StubText) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.Reply, s.Err
}

// Prompts returns the prompts received so far.
func (s *StubText) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// StubImages is an ImageGenerator that always returns URL.
type StubImages struct {
	URL string
}

// ImageURL returns the configured URL.
func (s StubImages) ImageURL(context.Context, string) (string, error) {
	return s.URL, nil
}

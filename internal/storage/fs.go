package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/smartchef/internal/models"
)

// Ext is the recipe file extension.
const Ext = ".md"

const tmpPattern = ".smartchef-tmp-*"

// FS implements Provider backed by one local directory. The directory is
// created lazily on the first write.
type FS struct {
	root string
}

// NewFS creates a provider rooted at dir. A missing directory is fine; a path
// that exists but is not a directory is rejected.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("storage: stat root: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute recipes directory.
func (f *FS) Root() string { return f.root }

// safePath accepts only plain file names, so nothing can escape the root.
func (f *FS) safePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("storage: invalid file name: %q", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("storage: path separators not allowed: %s", name)
	}
	return filepath.Join(f.root, name), nil
}

// List returns metadata for every .md file in the root, sorted by name.
// A root that does not exist yet holds no recipes. Only directory entries are
// consulted, so a file that cannot be read is still listed.
func (f *FS) List() ([]models.FileMeta, error) {
	entries, err := os.ReadDir(f.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	var out []models.FileMeta
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		meta := models.FileMeta{Name: e.Name()}
		if info, err := e.Info(); err == nil {
			meta.ModTime = info.ModTime()
		}
		out = append(out, meta)
	}
	return out, nil
}

// Read returns the raw bytes of a recipe file.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.root, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(f.root, tmpPattern)
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("storage: chmod: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// BaseName returns the recipe name encoded in a filename: the part before
// the first underscore, without the extension.
func BaseName(filename string) string {
	name, _, _ := strings.Cut(strings.TrimSuffix(filename, Ext), "_")
	return name
}

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

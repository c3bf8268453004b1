// Package storage defines the recipes-directory file abstraction.
package storage

import "github.com/starford/smartchef/internal/models"

// Provider is the interface for recipe file operations. Names are plain file
// names inside a single flat directory.
type Provider interface {
	// Root returns the absolute directory path.
	Root() string
	// List returns metadata for every .md file directly under the root
	// without reading file contents.
	List() ([]models.FileMeta, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Write atomically replaces the named file with content.
	Write(name string, content []byte) error
}

// Package models defines the domain types for SmartChef.
package models

import "time"

// Recipe is a stored recipe file: decoded front matter plus Markdown body.
type Recipe struct {
	Name      string            `json:"name"`
	CreatedAt string            `json:"created_at"`
	Tags      []string          `json:"tags"`
	Body      string            `json:"body"`
	Filename  string            `json:"filename"`
	Path      string            `json:"path"`
	Meta      map[string]string `json:"metadata,omitempty"`
}

// FileMeta describes one recipe file on disk.
type FileMeta struct {
	Name    string    `json:"name"`
	ModTime time.Time `json:"mod_time"`
}

// SearchDoc is the view of a recipe handed to a search ranker.
type SearchDoc struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Content  string `json:"content"`
}

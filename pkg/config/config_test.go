package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	valid bool
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	s.valid = true
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "chef")
	path := writeFile(t, "name: ${SAMPLE_NAME}\nport: 9000\n")

	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "chef" || s.Port != 9000 || !s.valid {
		t.Errorf("loaded = %+v", s)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeFile(t, "name: x\nport: 0\n")

	var s sample
	err := Load(path, &s)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	s := sample{Name: "default", Port: 8080}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &s); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if s.Name != "default" || s.Port != 8080 || !s.valid {
		t.Errorf("defaults changed: %+v", s)
	}
}

func TestLoadOptional_ExistingFileOverrides(t *testing.T) {
	path := writeFile(t, "port: 9100\n")
	s := sample{Name: "default", Port: 8080}
	if err := LoadOptional(path, &s); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if s.Name != "default" || s.Port != 9100 {
		t.Errorf("loaded = %+v", s)
	}
}

func TestLoadOptional_ValidatesDefaults(t *testing.T) {
	var s sample
	if err := LoadOptional("", &s); err == nil {
		t.Fatal("expected validation error for zero port")
	}
}

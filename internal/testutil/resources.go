package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Resources reads and writes fixture files below one directory.
type Resources struct {
	Dir string
}

func NewResources(dir string) *Resources {
	return &Resources{Dir: dir}
}

// ProjectRoot walks up from the working directory to the directory holding
// go.mod.
func ProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// ProjectResources returns the resources/ directory at the module root.
func ProjectResources() (*Resources, error) {
	root, err := ProjectRoot()
	if err != nil {
		return nil, err
	}
	return NewResources(filepath.Join(root, "resources")), nil
}

func (r *Resources) path(name string) string {
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}

// Text returns the content of a resource file.
func (r *Resources) Text(name string) (string, error) {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return "", fmt.Errorf("failed to load resource %s: %w", name, err)
	}
	return string(data), nil
}

// JSON decodes a JSON resource into v.
func (r *Resources) JSON(name string, v any) error {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return fmt.Errorf("failed to load resource %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode resource %s: %w", name, err)
	}
	return nil
}

// YAML decodes a YAML resource into v.
func (r *Resources) YAML(name string, v any) error {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return fmt.Errorf("failed to load resource %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode resource %s: %w", name, err)
	}
	return nil
}

// SaveJSON writes v as indented JSON, creating parent directories.
func (r *Resources) SaveJSON(name string, v any) error {
	p := r.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		return fmt.Errorf("failed to create resource dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resource %s: %w", name, err)
	}
	return os.WriteFile(p, append(data, '\n'), 0600)
}

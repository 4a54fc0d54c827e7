// pkg/registry/registry.go
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/condenv/pkg/core"
)

// Entry represents a single <dir>/<kind>/index.toml preset
type Entry struct {
	Name        string   `toml:"name" json:"name" yaml:"name"`
	Description string   `toml:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Packages    []string `toml:"packages" json:"packages" yaml:"packages"`
}

// builtins are the template kinds available without a synced preset index
var builtins = map[string]Entry{
	"python2": {Name: "python2", Description: "Python 2 kernel", Packages: []string{"python=2", "ipykernel"}},
	"python3": {Name: "python3", Description: "Python 3 kernel", Packages: []string{"python=3", "ipykernel"}},
	"r":       {Name: "r", Description: "R kernel", Packages: []string{"r-base", "r-essentials"}},
}

// Registry resolves environment template kinds to package lists
type Registry struct {
	presetsDir string
}

// New creates a Registry reading user presets from dir.
// An empty dir only serves the built-in kinds.
func New(dir string) *Registry {
	return &Registry{presetsDir: dir}
}

// Dir returns the presets directory
func (r *Registry) Dir() string {
	return r.presetsDir
}

// Resolve returns the packages installed for kind.
// e.g. Resolve("python3") -> ["python=3", "ipykernel"]
func (r *Registry) Resolve(kind string) ([]string, error) {
	entry, err := r.Load(kind)
	if err != nil {
		return nil, err
	}
	if len(entry.Packages) == 0 {
		return nil, fmt.Errorf("registry: preset '%s' lists no packages: %w", kind, core.ErrUnknownPreset)
	}
	return entry.Packages, nil
}

// Load reads <dir>/<kind>/index.toml, falling back to the built-in kinds.
// A preset on disk overrides a built-in of the same name.
func (r *Registry) Load(kind string) (*Entry, error) {
	if kind == "" || strings.ContainsAny(kind, `/\`) || kind == "." || kind == ".." {
		return nil, fmt.Errorf("registry: invalid preset name '%s': %w", kind, core.ErrInvalidArgument)
	}

	entry, err := r.loadFile(kind)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if b, ok := builtins[kind]; ok {
		b.Packages = append([]string(nil), b.Packages...)
		return &b, nil
	}
	return nil, fmt.Errorf("registry: preset '%s': %w", kind, core.ErrUnknownPreset)
}

// List returns every known preset sorted by name
func (r *Registry) List() ([]Entry, error) {
	byName := make(map[string]Entry, len(builtins))
	for name, b := range builtins {
		byName[name] = b
	}

	if r.presetsDir != "" {
		dirs, err := os.ReadDir(r.presetsDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("registry: reading presets: %w", err)
		}
		for _, d := range dirs {
			if !d.IsDir() {
				continue
			}
			entry, err := r.loadFile(d.Name())
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			byName[d.Name()] = *entry
		}
	}

	entries := make([]Entry, 0, len(byName))
	for _, e := range byName {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (r *Registry) loadFile(kind string) (*Entry, error) {
	if r.presetsDir == "" {
		return nil, os.ErrNotExist
	}

	path := filepath.Join(r.presetsDir, kind, "index.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", kind, err)
	}
	if entry.Name == "" {
		entry.Name = kind
	}
	return &entry, nil
}

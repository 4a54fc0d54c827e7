// condenv.go
package condenv

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/arc-language/condenv/pkg/conda"
	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/envfile"
	"github.com/arc-language/condenv/pkg/index"
	"github.com/arc-language/condenv/pkg/registry"
)

// Re-export core types for convenience
type (
	Config                  = core.Config
	Options                 = core.Options
	Option                  = core.Option
	Environment             = core.Environment
	EnvironmentList         = core.EnvironmentList
	PackageRecord           = core.PackageRecord
	AggregatedPackageRecord = core.AggregatedPackageRecord
	Failure                 = conda.Failure
	FailureKind             = conda.Kind
	// PresetEntry is a template kind and the packages it installs
	PresetEntry = registry.Entry
)

// Re-export failure kinds
const (
	KindSpawn     = conda.KindSpawn
	KindTool      = conda.KindTool
	KindMalformed = conda.KindMalformed
	KindInput     = conda.KindInput
	KindIO        = conda.KindIO
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Manager manages conda environments and their packages
type Manager struct {
	*conda.Manager
	config *Config
	logger *log.Logger
}

// NewManager creates a manager from the user configuration
func NewManager(config *Config) *Manager {
	if config == nil {
		config = core.DefaultConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = core.NewLogger(config.Debug)
	}

	return &Manager{
		Manager: conda.New(&conda.Config{
			Executable:   config.Executable,
			Options:      config.Options,
			MaxLogOutput: config.MaxLogOutput,
			MaxProcs:     config.MaxProcs,
			Presets:      registry.New(config.PresetsDir),
			Debug:        config.Debug,
			Logger:       logger,
		}),
		config: config,
		logger: logger,
	}
}

// ExportToFile writes the explicit listing of name to path.
// A .xz or .zst extension compresses the file.
func (m *Manager) ExportToFile(ctx context.Context, name, path string) error {
	listing, err := m.ExportEnvironment(ctx, name)
	if err != nil {
		return err
	}
	if err := envfile.Write(path, listing); err != nil {
		return &Error{Op: conda.OpExport, Env: name, Err: err}
	}
	return nil
}

// ImportFromFile creates name from the explicit listing stored at path
func (m *Manager) ImportFromFile(ctx context.Context, name, path string) (json.RawMessage, error) {
	listing, err := envfile.Read(path)
	if err != nil {
		return nil, &Error{Op: conda.OpImport, Env: name, Err: err}
	}
	return m.ImportEnvironment(ctx, name, listing)
}

// SyncPresets refreshes the preset directory from the configured repository
func (m *Manager) SyncPresets(ctx context.Context) error {
	err := index.Sync(ctx, index.SyncOptions{
		URL:        m.config.PresetsRepo,
		Branch:     m.config.PresetsBranch,
		Depth:      1,
		PresetsDir: m.config.PresetsDir,
		Logger:     m.logger,
	})
	if err != nil {
		return &Error{Op: "sync presets", Err: err}
	}
	return nil
}

// ListPresets returns every known template kind
func (m *Manager) ListPresets() ([]PresetEntry, error) {
	return m.Presets().List()
}

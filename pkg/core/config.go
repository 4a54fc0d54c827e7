// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxLogOutput caps how much decoded tool output is logged per call
	DefaultMaxLogOutput = 6000

	// DefaultPresetsRepo hosts shared environment presets
	DefaultPresetsRepo = "https://github.com/arc-language/condenv-presets"

	// DefaultPresetsBranch is the branch cloned by a preset sync
	DefaultPresetsBranch = "main"
)

// Config holds condenv configuration
type Config struct {
	Executable    string  `yaml:"executable" json:"executable"`
	Debug         bool    `yaml:"debug" json:"debug"`
	MaxLogOutput  int     `yaml:"max_log_output" json:"max_log_output"`
	MaxProcs      int     `yaml:"max_procs" json:"max_procs"`
	PresetsDir    string  `yaml:"presets_dir" json:"presets_dir"`
	PresetsRepo   string  `yaml:"presets_repo" json:"presets_repo"`
	PresetsBranch string  `yaml:"presets_branch" json:"presets_branch"`
	Options       Options `yaml:"options" json:"options"`

	// Logger for custom logging, built from Debug when nil
	Logger *log.Logger `yaml:"-" json:"-"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Executable:    os.Getenv("CONDA_EXE"),
		Debug:         false,
		MaxLogOutput:  DefaultMaxLogOutput,
		MaxProcs:      runtime.NumCPU(),
		PresetsDir:    getDefaultPresetsDir(),
		PresetsRepo:   DefaultPresetsRepo,
		PresetsBranch: DefaultPresetsBranch,
	}
}

// DefaultConfigPath returns $HOME/.config/condenv/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "condenv", "config.yaml"), nil
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Start from defaults so absent keys keep their default values
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// applyEnv lets the environment win over values read from the file
func (c *Config) applyEnv() {
	if exe := os.Getenv("CONDA_EXE"); exe != "" {
		c.Executable = exe
	}
	if dir := os.Getenv("CONDENV_PRESETS_DIR"); dir != "" {
		c.PresetsDir = dir
	}
	if c.MaxLogOutput <= 0 {
		c.MaxLogOutput = DefaultMaxLogOutput
	}
	if c.MaxProcs <= 0 {
		c.MaxProcs = runtime.NumCPU()
	}
}

func getDefaultPresetsDir() string {
	if dir := os.Getenv("CONDENV_PRESETS_DIR"); dir != "" {
		return dir
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "condenv", "presets")
	}

	return filepath.Join(cache, "condenv", "presets")
}

// types.go
package conda

import (
	"github.com/charmbracelet/log"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/registry"
	"github.com/arc-language/condenv/pkg/runner"
	"github.com/arc-language/condenv/pkg/sanitize"
)

// Config configures the environment manager
type Config struct {
	Executable   string       // Default: CONDA_EXE, then conda/mamba/micromamba on PATH
	Options      core.Options // Global flags expanded into fetching commands
	MaxLogOutput int          // Default: 6000 characters
	MaxProcs     int          // Default: runtime.NumCPU()
	TempDir      string       // Where import listings are staged, default os.TempDir()

	Presets *registry.Registry // Template kinds, default built-ins only
	Runner  runner.Runner      // Process runner (optional, for tests)

	Debug  bool        // Enable debug logging
	Logger *log.Logger // Custom logger (optional)
}

// Manager runs environment and package operations through the tool
type Manager struct {
	config    *Config
	runner    runner.Runner
	sanitizer *sanitize.Sanitizer
	presets   *registry.Registry
	logger    *log.Logger
}

// channelSpec is a channel as dumped by `config --show --json`
type channelSpec struct {
	Scheme   string `json:"scheme"`
	Location string `json:"location"`
	Name     string `json:"name"`
}

// channelConfig is the subset of `config --show --json` used to resolve channels
type channelConfig struct {
	Channels            []string                 `json:"channels"`
	CustomMultichannels map[string][]channelSpec `json:"custom_multichannels"`
	ChannelAlias        channelSpec              `json:"channel_alias"`
}

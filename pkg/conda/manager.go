// manager.go
package conda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/platform"
	"github.com/arc-language/condenv/pkg/registry"
	"github.com/arc-language/condenv/pkg/runner"
	"github.com/arc-language/condenv/pkg/sanitize"
)

var _ core.EnvironmentManager = (*Manager)(nil)

// New creates a new environment manager
func New(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	// Set defaults
	cfg.Executable = platform.ResolveExecutable(cfg.Executable)
	if cfg.MaxLogOutput <= 0 {
		cfg.MaxLogOutput = core.DefaultMaxLogOutput
	}
	if cfg.Presets == nil {
		cfg.Presets = registry.New("")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = core.NewLogger(cfg.Debug)
	}

	r := cfg.Runner
	if r == nil {
		r = runner.New(&runner.Config{
			Executable:   cfg.Executable,
			Options:      cfg.Options,
			MaxProcs:     cfg.MaxProcs,
			MaxLogOutput: cfg.MaxLogOutput,
			Logger:       logger,
		})
	}

	m := &Manager{
		config:    cfg,
		runner:    r,
		sanitizer: sanitize.New(logger),
		presets:   cfg.Presets,
		logger:    logger,
	}

	m.logger.Debug("Initialized environment manager",
		"executable", cfg.Executable,
		"channels", cfg.Options.Channels,
		"override_channels", cfg.Options.OverrideChannels,
		"offline", cfg.Options.Offline,
	)

	return m
}

// Executable returns the tool executable commands are run with
func (m *Manager) Executable() string {
	return m.config.Executable
}

// Presets returns the template kind registry
func (m *Manager) Presets() *registry.Registry {
	return m.presets
}

// call runs c and sanitizes whichever stream carries the payload
func (m *Manager) call(ctx context.Context, op, env string, c runner.Command) (sanitize.Result, error) {
	res, err := m.runner.Run(ctx, c)
	if err != nil {
		return sanitize.Result{}, spawnFailure(op, env, err)
	}
	return m.sanitizer.Parse(res.Text()), nil
}

// mutate runs c and returns its payload unless the result is a failure
func (m *Manager) mutate(ctx context.Context, op, env string, c runner.Command) (json.RawMessage, error) {
	res, err := m.call(ctx, op, env, c)
	if err != nil {
		return nil, err
	}
	if err := resultFailure(op, env, res); err != nil {
		return nil, err
	}
	return res.Payload, nil
}

// resultFailure converts an unusable result into a Failure, nil otherwise
func resultFailure(op, env string, res sanitize.Result) error {
	if res.Failed {
		return &Failure{Op: op, Env: env, Kind: KindMalformed, Raw: res.Raw}
	}
	if res.HasError() {
		return &Failure{Op: op, Env: env, Kind: KindTool, Body: res.Payload}
	}
	return nil
}

// spawnFailure wraps a runner error. Besides *runner.SpawnError this covers
// a context that ended before a process slot was free; either way nothing ran.
func spawnFailure(op, env string, err error) error {
	return &Failure{Op: op, Env: env, Kind: KindSpawn, Err: err}
}

func malformed(op, env string, err error) error {
	return &Failure{Op: op, Env: env, Kind: KindMalformed, Err: err}
}

func inputFailure(op, env string, err error) error {
	return &Failure{Op: op, Env: env, Kind: KindInput, Err: err}
}

// checkName rejects names the tool would misread as flags
func checkName(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return inputFailure(op, name, fmt.Errorf("environment name is empty: %w", core.ErrInvalidArgument))
	}
	if strings.HasPrefix(name, "-") {
		return inputFailure(op, name, fmt.Errorf("environment name %q looks like a flag: %w", name, core.ErrInvalidArgument))
	}
	return nil
}

// checkArgs rejects package specs and queries the tool would misread as flags
func checkArgs(op, name string, args ...string) error {
	for _, a := range args {
		if strings.HasPrefix(strings.TrimSpace(a), "-") {
			return inputFailure(op, name, fmt.Errorf("argument %q looks like a flag: %w", a, core.ErrInvalidArgument))
		}
	}
	return nil
}

// nameArgs returns "-n name" followed by rest
func nameArgs(name string, rest ...string) []string {
	return append([]string{"-n", name}, rest...)
}

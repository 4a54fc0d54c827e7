// pkg/runner/runner.go
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/arc-language/condenv/pkg/core"
)

// Command is one tool invocation
type Command struct {
	// Base is the space separated subcommand and fixed flags ("create -y -q --json")
	Base string
	// Args are positional arguments appended after option flags
	Args []string
	// Options names the global flag groups to expand from configuration
	Options []core.Option
	// Env is overlaid onto the child's inherited environment
	Env map[string]string
}

// Result is the captured outcome of a finished child process
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Text returns stdout when the tool succeeded and stderr otherwise
func (r *Result) Text() string {
	if r.ExitCode == 0 {
		return string(r.Stdout)
	}
	return string(r.Stderr)
}

// Runner runs tool commands
type Runner interface {
	Run(ctx context.Context, c Command) (*Result, error)
}

// SpawnError reports a child that could not be started
type SpawnError struct {
	Argv []string
	Err  error
}

func (e *SpawnError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf("starting %s: %v", name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Config configures a ProcessRunner
type Config struct {
	Executable   string
	Options      core.Options
	MaxProcs     int
	MaxLogOutput int
	Logger       *log.Logger
}

// ProcessRunner runs commands as child processes of the configured tool
type ProcessRunner struct {
	config *Config
	sem    *semaphore.Weighted
	logger *log.Logger
}

// New creates a ProcessRunner
func New(cfg *Config) *ProcessRunner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Executable == "" {
		cfg.Executable = "conda"
	}
	if cfg.MaxProcs <= 0 {
		cfg.MaxProcs = runtime.NumCPU()
	}
	if cfg.MaxLogOutput <= 0 {
		cfg.MaxLogOutput = core.DefaultMaxLogOutput
	}
	if cfg.Logger == nil {
		cfg.Logger = core.DiscardLogger()
	}

	return &ProcessRunner{
		config: cfg,
		sem:    semaphore.NewWeighted(int64(cfg.MaxProcs)),
		logger: cfg.Logger,
	}
}

// Argv returns the full argument vector for c, executable included
func (r *ProcessRunner) Argv(c Command) []string {
	return append([]string{r.config.Executable}, BuildArgv(c.Base, c.Args, c.Options, r.config.Options)...)
}

// Run spawns the tool and waits for it to exit. The context only bounds the
// wait for a free slot; a started child always runs to completion.
func (r *ProcessRunner) Run(ctx context.Context, c Command) (*Result, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for process slot: %w", err)
	}
	defer r.sem.Release(1)

	argv := r.Argv(c)
	r.logger.Debug("Running command", "argv", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	if len(c.Env) > 0 {
		cmd.Env = overlayEnv(cmd.Environ(), c.Env)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Argv: argv, Err: err}
	}

	err := cmd.Wait()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("waiting for %s: %w", argv[0], err)
		}
		res.ExitCode = exitErr.ExitCode()
		r.logger.Debug("Command exited", "code", res.ExitCode)
	}

	r.logOutput(res.Text())
	return res, nil
}

func (r *ProcessRunner) logOutput(text string) {
	out, truncated := truncate(text, r.config.MaxLogOutput)
	r.logger.Debug("Command output", "output", out)
	if truncated {
		r.logger.Debug("...")
	}
}

// truncate cuts s to at most limit runes
func truncate(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}

// overlayEnv replaces or appends the entries of extra in base
func overlayEnv(base []string, extra map[string]string) []string {
	env := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := extra[key]; ok {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}

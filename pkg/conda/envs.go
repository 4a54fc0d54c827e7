package conda

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/runner"
)

// ListEnvironments returns the root environment followed by every
// environment located under the root's envs folder. Environments the tool
// knows about elsewhere on disk are skipped.
func (m *Manager) ListEnvironments(ctx context.Context) (*core.EnvironmentList, error) {
	res, err := m.call(ctx, OpListEnvironments, "", runner.Command{Base: cmdInfo})
	if err != nil {
		return nil, err
	}
	if err := resultFailure(OpListEnvironments, "", res); err != nil {
		return nil, err
	}

	info := gjson.ParseBytes(res.Payload)
	root := info.Get("root_prefix").String()
	if root == "" {
		return nil, malformed(OpListEnvironments, "", fmt.Errorf("info has no root_prefix"))
	}
	defaultPrefix := info.Get("default_prefix").String()

	list := &core.EnvironmentList{
		Environments: []core.Environment{{
			Name:      core.RootEnvironmentName,
			Dir:       root,
			IsDefault: root == defaultPrefix,
		}},
	}

	envsFolder := filepath.Join(root, EnvsFolder) + string(filepath.Separator)
	for _, dir := range info.Get("envs").Array() {
		prefix := dir.String()
		if !strings.HasPrefix(prefix, envsFolder) {
			continue
		}
		list.Environments = append(list.Environments, core.Environment{
			Name:      filepath.Base(prefix),
			Dir:       prefix,
			IsDefault: prefix == defaultPrefix,
		})
	}

	m.logger.Debug("Listed environments", "count", len(list.Environments))
	return list, nil
}

// CreateEnvironment creates name with the packages of the preset kind.
// An unknown kind fails before anything is spawned.
func (m *Manager) CreateEnvironment(ctx context.Context, name, kind string) (json.RawMessage, error) {
	if err := checkName(OpCreate, name); err != nil {
		return nil, err
	}

	packages, err := m.presets.Resolve(kind)
	if err != nil {
		return nil, inputFailure(OpCreate, name, err)
	}

	return m.mutate(ctx, OpCreate, name, runner.Command{
		Base:    cmdCreate,
		Args:    nameArgs(name, packages...),
		Options: core.AllOptions,
	})
}

// CloneEnvironment creates name as a copy of source
func (m *Manager) CloneEnvironment(ctx context.Context, source, name string) (json.RawMessage, error) {
	if err := checkName(OpClone, source); err != nil {
		return nil, err
	}
	if err := checkName(OpClone, name); err != nil {
		return nil, err
	}

	return m.mutate(ctx, OpClone, name, runner.Command{
		Base:    cmdCreate,
		Args:    nameArgs(name, "--clone", source),
		Options: core.AllOptions,
	})
}

// DeleteEnvironment removes name
func (m *Manager) DeleteEnvironment(ctx context.Context, name string) (json.RawMessage, error) {
	if err := checkName(OpDelete, name); err != nil {
		return nil, err
	}

	return m.mutate(ctx, OpDelete, name, runner.Command{
		Base: cmdEnvRemove,
		Args: nameArgs(name),
	})
}

// ImportEnvironment creates name from an explicit listing. The listing is
// staged in a temporary file which is removed before returning, whatever
// the outcome.
func (m *Manager) ImportEnvironment(ctx context.Context, name, contents string) (json.RawMessage, error) {
	if err := checkName(OpImport, name); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(m.config.TempDir, importPattern)
	if err != nil {
		return nil, &Failure{Op: OpImport, Env: name, Kind: KindIO, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(contents); err != nil {
		f.Close()
		return nil, &Failure{Op: OpImport, Env: name, Kind: KindIO, Err: fmt.Errorf("writing temp file: %w", err)}
	}
	if err := f.Close(); err != nil {
		return nil, &Failure{Op: OpImport, Env: name, Kind: KindIO, Err: fmt.Errorf("closing temp file: %w", err)}
	}

	m.logger.Debug("Staged import listing", "env", name, "path", path)

	return m.mutate(ctx, OpImport, name, runner.Command{
		Base:    cmdCreate,
		Args:    nameArgs(name, "--file", path),
		Options: core.AllOptions,
	})
}

// ExportEnvironment returns the explicit listing of name as raw text
func (m *Manager) ExportEnvironment(ctx context.Context, name string) (string, error) {
	if err := checkName(OpExport, name); err != nil {
		return "", err
	}

	res, err := m.runner.Run(ctx, runner.Command{
		Base: cmdExport,
		Args: nameArgs(name),
	})
	if err != nil {
		return "", spawnFailure(OpExport, name, err)
	}

	text := res.Text()
	if res.ExitCode != 0 {
		f := &Failure{Op: OpExport, Env: name, Kind: KindTool, Raw: text}
		if trimmed := strings.TrimSpace(text); gjson.Valid(trimmed) {
			f.Body = json.RawMessage(trimmed)
		} else {
			f.Err = fmt.Errorf("exit status %d: %s", res.ExitCode, strings.TrimSpace(text))
		}
		return "", f
	}
	return text, nil
}

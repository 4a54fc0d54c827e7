package conda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/arc-language/condenv/pkg/aggregate"
	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/runner"
)

// ListInstalledPackages lists the packages installed in name, pip packages excluded
func (m *Manager) ListInstalledPackages(ctx context.Context, name string) ([]core.PackageRecord, error) {
	if err := checkName(OpListPackages, name); err != nil {
		return nil, err
	}

	res, err := m.call(ctx, OpListPackages, name, runner.Command{
		Base: cmdList,
		Args: nameArgs(name),
	})
	if err != nil {
		return nil, err
	}
	if err := resultFailure(OpListPackages, name, res); err != nil {
		return nil, err
	}

	records, err := core.NormalizePackages(res.Payload)
	if err != nil {
		return nil, malformed(OpListPackages, name, err)
	}
	return records, nil
}

// SearchAvailablePackages lists every version available to name, one
// aggregated record per package
func (m *Manager) SearchAvailablePackages(ctx context.Context, name string) ([]core.AggregatedPackageRecord, error) {
	if err := checkName(OpSearch, name); err != nil {
		return nil, err
	}

	res, err := m.call(ctx, OpSearch, name, runner.Command{
		Base:    cmdSearch,
		Args:    nameArgs(name),
		Options: core.AllOptions,
	})
	if err != nil {
		return nil, err
	}
	if err := resultFailure(OpSearch, name, res); err != nil {
		return nil, err
	}

	records, err := aggregate.Collapse(res)
	if err != nil {
		return nil, malformed(OpSearch, name, err)
	}
	return records, nil
}

// InteractiveSearch returns the newest entry of every package matching query
func (m *Manager) InteractiveSearch(ctx context.Context, name, query string) ([]json.RawMessage, error) {
	if err := checkName(OpSearch, name); err != nil {
		return nil, err
	}
	if err := checkArgs(OpSearch, name, query); err != nil {
		return nil, err
	}

	res, err := m.call(ctx, OpSearch, name, runner.Command{
		Base:    cmdSearch,
		Args:    nameArgs(name, query),
		Options: core.AllOptions,
	})
	if err != nil {
		return nil, err
	}
	if err := resultFailure(OpSearch, name, res); err != nil {
		return nil, err
	}

	entries, err := aggregate.BestOnly(res)
	if err != nil {
		return nil, malformed(OpSearch, name, err)
	}
	return entries, nil
}

// CheckForUpdates dry-runs an update and returns the packages it would link.
// No action plan means everything is up to date.
func (m *Manager) CheckForUpdates(ctx context.Context, name string, packages []string) ([]core.PackageRecord, error) {
	if err := checkName(OpCheckUpdates, name); err != nil {
		return nil, err
	}
	if err := checkArgs(OpCheckUpdates, name, packages...); err != nil {
		return nil, err
	}

	res, err := m.call(ctx, OpCheckUpdates, name, runner.Command{
		Base:    cmdCheckUpdate,
		Args:    nameArgs(name, packages...),
		Options: core.AllOptions,
	})
	if err != nil {
		return nil, err
	}
	if err := resultFailure(OpCheckUpdates, name, res); err != nil {
		return nil, err
	}

	links := gjson.GetBytes(res.Payload, "actions.LINK")
	if !links.Exists() {
		return []core.PackageRecord{}, nil
	}

	records, err := core.NormalizePackages(json.RawMessage(links.Raw))
	if err != nil {
		return nil, malformed(OpCheckUpdates, name, err)
	}
	return records, nil
}

// InstallPackages installs packages into name
func (m *Manager) InstallPackages(ctx context.Context, name string, packages []string) (json.RawMessage, error) {
	return m.changePackages(ctx, OpInstall, cmdInstall, name, packages)
}

// UpdatePackages updates packages in name
func (m *Manager) UpdatePackages(ctx context.Context, name string, packages []string) (json.RawMessage, error) {
	return m.changePackages(ctx, OpUpdate, cmdUpdate, name, packages)
}

// RemovePackages removes packages from name
func (m *Manager) RemovePackages(ctx context.Context, name string, packages []string) (json.RawMessage, error) {
	return m.changePackages(ctx, OpRemove, cmdRemove, name, packages)
}

func (m *Manager) changePackages(ctx context.Context, op, base, name string, packages []string) (json.RawMessage, error) {
	if err := checkName(op, name); err != nil {
		return nil, err
	}
	if len(packages) == 0 && op != OpUpdate {
		return nil, inputFailure(op, name, fmt.Errorf("no packages given: %w", core.ErrInvalidArgument))
	}
	if err := checkArgs(op, name, packages...); err != nil {
		return nil, err
	}

	return m.mutate(ctx, op, name, runner.Command{
		Base:    base,
		Args:    nameArgs(name, packages...),
		Options: core.AllOptions,
	})
}

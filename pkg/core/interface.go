// pkg/core/interface.go
package core

import (
	"context"
	"encoding/json"
)

// EnvironmentManager defines the operations exposed to an upstream caller.
// Failures are returned as error values carrying the failure payload.
type EnvironmentManager interface {
	// ListEnvironments lists the root environment and those under its envs folder
	ListEnvironments(ctx context.Context) (*EnvironmentList, error)

	// CreateEnvironment creates an environment from a preset kind
	CreateEnvironment(ctx context.Context, name, kind string) (json.RawMessage, error)

	// CloneEnvironment copies source into a new environment
	CloneEnvironment(ctx context.Context, source, name string) (json.RawMessage, error)

	// DeleteEnvironment removes an environment
	DeleteEnvironment(ctx context.Context, name string) (json.RawMessage, error)

	// ImportEnvironment creates an environment from an explicit listing
	ImportEnvironment(ctx context.Context, name, contents string) (json.RawMessage, error)

	// ExportEnvironment returns the explicit listing of an environment
	ExportEnvironment(ctx context.Context, name string) (string, error)

	// ListInstalledPackages lists the packages installed in an environment
	ListInstalledPackages(ctx context.Context, name string) ([]PackageRecord, error)

	// SearchAvailablePackages lists every available version of every package
	SearchAvailablePackages(ctx context.Context, name string) ([]AggregatedPackageRecord, error)

	// InteractiveSearch returns the newest entry of each package matching query
	InteractiveSearch(ctx context.Context, name, query string) ([]json.RawMessage, error)

	// CheckForUpdates lists the packages an update would link
	CheckForUpdates(ctx context.Context, name string, packages []string) ([]PackageRecord, error)

	// InstallPackages installs packages into an environment
	InstallPackages(ctx context.Context, name string, packages []string) (json.RawMessage, error)

	// UpdatePackages updates packages in an environment
	UpdatePackages(ctx context.Context, name string, packages []string) (json.RawMessage, error)

	// RemovePackages removes packages from an environment
	RemovePackages(ctx context.Context, name string, packages []string) (json.RawMessage, error)

	// ResolveChannels maps each configured channel to its resolved URIs
	ResolveChannels(ctx context.Context, name string) (map[string][]string, error)
}

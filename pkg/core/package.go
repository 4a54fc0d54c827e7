// pkg/core/package.go
package core

import (
	"encoding/json"
	"fmt"
)

// PackageRecord describes one installed or linkable package
type PackageRecord struct {
	Name        string  `json:"name" yaml:"name"`
	Version     string  `json:"version" yaml:"version"`
	BuildNumber *int    `json:"build_number" yaml:"build_number"`
	BuildString *string `json:"build_string" yaml:"build_string"`
	Channel     *string `json:"channel" yaml:"channel"`
	Platform    *string `json:"platform" yaml:"platform"`
}

// AggregatedPackageRecord holds every distinct version seen for a package.
// Versions, BuildNumbers and BuildStrings are index-aligned and sorted by
// ascending version.
type AggregatedPackageRecord struct {
	Name         string   `json:"name" yaml:"name"`
	Channel      *string  `json:"channel" yaml:"channel"`
	Platform     *string  `json:"platform" yaml:"platform"`
	Versions     []string `json:"version" yaml:"version"`
	BuildNumbers []int    `json:"build_number" yaml:"build_number"`
	BuildStrings []string `json:"build_string" yaml:"build_string"`
}

// RawPackage is the subset of a tool package entry condenv reads
type RawPackage struct {
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	BuildNumber *int    `json:"build_number"`
	BuildString *string `json:"build_string"`
	Build       *string `json:"build"`
	Channel     *string `json:"channel"`
	Platform    *string `json:"platform"`
}

// Record converts the raw entry into its normalized shape.
// The build string falls back to the legacy "build" field.
func (p RawPackage) Record() PackageRecord {
	build := p.BuildString
	if build == nil {
		build = p.Build
	}
	return PackageRecord{
		Name:        p.Name,
		Version:     p.Version,
		BuildNumber: p.BuildNumber,
		BuildString: build,
		Channel:     p.Channel,
		Platform:    p.Platform,
	}
}

// NormalizePackage decodes one raw tool entry into a PackageRecord
func NormalizePackage(raw json.RawMessage) (PackageRecord, error) {
	var p RawPackage
	if err := json.Unmarshal(raw, &p); err != nil {
		return PackageRecord{}, fmt.Errorf("decoding package entry: %w", err)
	}
	return p.Record(), nil
}

// NormalizePackages decodes a JSON array of raw tool entries
func NormalizePackages(raw json.RawMessage) ([]PackageRecord, error) {
	var entries []RawPackage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding package list: %w", err)
	}

	records := make([]PackageRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return records, nil
}

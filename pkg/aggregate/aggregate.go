// Package aggregate collapses multi-entry package listings by version.
//
// Both modes read a JSON object mapping a package name to the list of raw
// per-build entries the tool knows for it. Neither mode mutates its input
// or keeps state between calls.
package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/sanitize"
	"github.com/arc-language/condenv/pkg/version"
)

// Collapse keeps one record per package carrying every distinct version seen,
// each with the highest build number observed for it. Versions are sorted
// ascending and packages by name.
func Collapse(res sanitize.Result) ([]core.AggregatedPackageRecord, error) {
	listing, err := decodeListing(res)
	if err != nil {
		return nil, err
	}

	records := make([]core.AggregatedPackageRecord, 0, len(listing))
	for key, raw := range listing {
		var entries []core.RawPackage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decoding entries of %s: %w", key, err)
		}
		if len(entries) == 0 {
			continue
		}
		records = append(records, collapsePackage(key, entries))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

// collapsePackage folds the entries of one package into an aggregated record
func collapsePackage(key string, entries []core.RawPackage) core.AggregatedPackageRecord {
	first := entries[0].Record()
	rec := core.AggregatedPackageRecord{
		Name:     first.Name,
		Channel:  first.Channel,
		Platform: first.Platform,
	}
	if rec.Name == "" {
		rec.Name = key
	}

	var (
		seen         []version.Comparable
		buildNumbers []int
		buildStrings []string
	)

	for _, entry := range entries {
		r := entry.Record()
		v := version.Parse(r.Version)
		number, build := buildOf(r)

		idx := indexOf(seen, v)
		if idx < 0 {
			seen = append(seen, v)
			buildNumbers = append(buildNumbers, number)
			buildStrings = append(buildStrings, build)
			continue
		}
		if number > buildNumbers[idx] {
			buildNumbers[idx] = number
			buildStrings[idx] = build
		}
	}

	order := make([]int, len(seen))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return seen[order[i]].LessThan(seen[order[j]])
	})

	rec.Versions = make([]string, len(order))
	rec.BuildNumbers = make([]int, len(order))
	rec.BuildStrings = make([]string, len(order))
	for i, idx := range order {
		rec.Versions[i] = seen[idx].String()
		rec.BuildNumbers[i] = buildNumbers[idx]
		rec.BuildStrings[i] = buildStrings[idx]
	}
	return rec
}

// BestOnly keeps, for each package, the single entry with the greatest
// version. The first entry wins ties. Entries are returned unmodified and
// ordered by package name.
func BestOnly(res sanitize.Result) ([]json.RawMessage, error) {
	listing, err := decodeListing(res)
	if err != nil {
		return nil, err
	}

	type best struct {
		name  string
		entry json.RawMessage
	}

	picks := make([]best, 0, len(listing))
	for key, raw := range listing {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decoding entries of %s: %w", key, err)
		}

		var (
			top     version.Comparable
			topRaw  json.RawMessage
			topName string
		)
		for _, entry := range entries {
			var head core.RawPackage
			if err := json.Unmarshal(entry, &head); err != nil {
				return nil, fmt.Errorf("decoding entry of %s: %w", key, err)
			}

			v := version.Parse(head.Version)
			if topRaw == nil || v.GreaterThan(top) {
				top, topRaw, topName = v, entry, head.Name
			}
		}
		if topRaw == nil {
			continue
		}
		if topName == "" {
			topName = key
		}
		picks = append(picks, best{name: topName, entry: topRaw})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].name < picks[j].name
	})

	out := make([]json.RawMessage, len(picks))
	for i, p := range picks {
		out[i] = p.entry
	}
	return out, nil
}

// decodeListing short-circuits failed results and splits the listing by package
func decodeListing(res sanitize.Result) (map[string]json.RawMessage, error) {
	if res.HasError() {
		return nil, &sanitize.FailureError{Result: res}
	}

	var listing map[string]json.RawMessage
	if err := json.Unmarshal(res.Payload, &listing); err != nil {
		return nil, fmt.Errorf("decoding package listing: %w", err)
	}
	return listing, nil
}

func buildOf(r core.PackageRecord) (int, string) {
	number, build := 0, ""
	if r.BuildNumber != nil {
		number = *r.BuildNumber
	}
	if r.BuildString != nil {
		build = *r.BuildString
	}
	return number, build
}

func indexOf(seen []version.Comparable, v version.Comparable) int {
	for i, s := range seen {
		if s.Equal(v) {
			return i
		}
	}
	return -1
}

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/arc-language/condenv/pkg/core"
)

var pkgCmd = &cobra.Command{
	Use:     "pkg",
	Aliases: []string{"package"},
	Short:   "Manage the packages of an environment",
}

var pkgListCmd = &cobra.Command{
	Use:   "list ENV",
	Short: "List installed packages",
	Args:  cobra.ExactArgs(1),
	RunE:  runPkgList,
}

var pkgAvailableCmd = &cobra.Command{
	Use:   "available ENV",
	Short: "List every available version of every package",
	Args:  cobra.ExactArgs(1),
	RunE:  runPkgAvailable,
}

var pkgSearchCmd = &cobra.Command{
	Use:   "search ENV QUERY",
	Short: "Find the newest build of packages matching QUERY",
	Args:  cobra.ExactArgs(2),
	RunE:  runPkgSearch,
}

var pkgCheckCmd = &cobra.Command{
	Use:   "check ENV [PACKAGE...]",
	Short: "List the packages an update would change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPkgCheck,
}

var pkgInstallCmd = &cobra.Command{
	Use:   "install ENV PACKAGE...",
	Short: "Install packages",
	Long: `Install packages into an environment.

Examples:
  condenv pkg install analysis numpy pandas
  condenv pkg install analysis "scipy>=1.11" -c conda-forge`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPkgInstall,
}

var pkgUpdateCmd = &cobra.Command{
	Use:   "update ENV [PACKAGE...]",
	Short: "Update packages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPkgUpdate,
}

var pkgRemoveCmd = &cobra.Command{
	Use:   "remove ENV PACKAGE...",
	Short: "Remove packages",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPkgRemove,
}

func init() {
	pkgCmd.AddCommand(pkgListCmd)
	pkgCmd.AddCommand(pkgAvailableCmd)
	pkgCmd.AddCommand(pkgSearchCmd)
	pkgCmd.AddCommand(pkgCheckCmd)
	pkgCmd.AddCommand(pkgInstallCmd)
	pkgCmd.AddCommand(pkgUpdateCmd)
	pkgCmd.AddCommand(pkgRemoveCmd)
}

func runPkgList(cmd *cobra.Command, args []string) error {
	packages, err := newManager().ListInstalledPackages(cmd.Context(), args[0])
	if err != nil {
		return reportFailure(err)
	}
	if ok, err := structured(map[string]any{"packages": packages}); ok {
		return err
	}
	renderTable(packageHeaders, packageRows(packages))
	return nil
}

func runPkgAvailable(cmd *cobra.Command, args []string) error {
	packages, err := newManager().SearchAvailablePackages(cmd.Context(), args[0])
	if err != nil {
		return reportFailure(err)
	}
	if ok, err := structured(packages); ok {
		return err
	}

	rows := make([][]string, 0, len(packages))
	for _, p := range packages {
		latest := ""
		if n := len(p.Versions); n > 0 {
			latest = p.Versions[n-1]
		}
		rows = append(rows, []string{
			p.Name,
			latest,
			humanize.Comma(int64(len(p.Versions))),
			deref(p.Channel),
		})
	}
	renderTable([]string{"NAME", "LATEST", "VERSIONS", "CHANNEL"}, rows)
	return nil
}

func runPkgSearch(cmd *cobra.Command, args []string) error {
	entries, err := newManager().InteractiveSearch(cmd.Context(), args[0], args[1])
	if err != nil {
		return reportFailure(err)
	}
	if ok, err := structured(map[string]any{"packages": entries}); ok {
		return err
	}
	renderTable([]string{"NAME", "VERSION", "BUILD", "SIZE", "PUBLISHED", "CHANNEL"}, searchRows(entries))
	return nil
}

func runPkgCheck(cmd *cobra.Command, args []string) error {
	updates, err := newManager().CheckForUpdates(cmd.Context(), args[0], args[1:])
	if err != nil {
		return reportFailure(err)
	}
	if ok, err := structured(map[string]any{"updates": updates}); ok {
		return err
	}
	if len(updates) == 0 {
		fmt.Fprintln(out, "All packages are up to date")
		return nil
	}
	renderTable(packageHeaders, packageRows(updates))
	return nil
}

func runPkgInstall(cmd *cobra.Command, args []string) error {
	payload, err := newManager().InstallPackages(cmd.Context(), args[0], args[1:])
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Installed %s into %s", english.Plural(len(args)-1, "package", "packages"), args[0])
}

func runPkgUpdate(cmd *cobra.Command, args []string) error {
	payload, err := newManager().UpdatePackages(cmd.Context(), args[0], args[1:])
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Updated %s", args[0])
}

func runPkgRemove(cmd *cobra.Command, args []string) error {
	payload, err := newManager().RemovePackages(cmd.Context(), args[0], args[1:])
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Removed %s from %s", english.Plural(len(args)-1, "package", "packages"), args[0])
}

var packageHeaders = []string{"NAME", "VERSION", "BUILD", "CHANNEL"}

func packageRows(packages []core.PackageRecord) [][]string {
	rows := make([][]string, 0, len(packages))
	for _, p := range packages {
		build := joinNonEmpty([]string{deref(p.BuildString), derefInt(p.BuildNumber)}, " #")
		rows = append(rows, []string{p.Name, p.Version, build, deref(p.Channel)})
	}
	return rows
}

// searchRows reads display fields straight from the raw tool entries
func searchRows(entries []json.RawMessage) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, raw := range entries {
		e := gjson.ParseBytes(raw)

		size := ""
		if s := e.Get("size"); s.Exists() {
			size = humanize.Bytes(s.Uint())
		}
		published := ""
		if ts := e.Get("timestamp"); ts.Exists() && ts.Int() > 0 {
			published = humanize.Time(time.UnixMilli(ts.Int()))
		}
		build := e.Get("build_string").String()
		if build == "" {
			build = e.Get("build").String()
		}

		rows = append(rows, []string{
			e.Get("name").String(),
			e.Get("version").String(),
			build,
			size,
			published,
			e.Get("channel").String(),
		})
	}
	return rows
}

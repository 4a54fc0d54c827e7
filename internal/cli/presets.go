package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage environment presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the presets environments can be created from",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download shared presets",
	Long: `Clone the presets repository and copy its presets into the local
presets directory. Presets with the same name are replaced.`,
	Args: cobra.NoArgs,
	RunE: runPresetsSync,
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsSyncCmd)
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	presets, err := newManager().ListPresets()
	if err != nil {
		return err
	}
	if ok, err := structured(presets); ok {
		return err
	}

	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{p.Name, strings.Join(p.Packages, " "), p.Description})
	}
	renderTable([]string{"NAME", "PACKAGES", "DESCRIPTION"}, rows)
	return nil
}

func runPresetsSync(cmd *cobra.Command, args []string) error {
	if err := newManager().SyncPresets(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Presets updated in %s\n", config.PresetsDir)
	return nil
}

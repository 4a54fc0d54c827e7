// internal/cli/doctor.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/condenv/pkg/platform"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Show which package tools are available",
	Long:  `Detect conda, mamba and micromamba on this system and show which one condenv runs.`,
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

type doctorReport struct {
	Platform   *platform.Platform `json:"platform" yaml:"platform"`
	Executable string             `json:"executable" yaml:"executable"`
	Found      bool               `json:"found" yaml:"found"`
	PresetsDir string             `json:"presets_dir" yaml:"presets_dir"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	// Detect platform
	plat, err := platform.Detect()
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}

	exe := platform.ResolveExecutable(config.Executable)
	_, lookErr := platform.RequireTool(exe)

	report := doctorReport{
		Platform:   plat,
		Executable: exe,
		Found:      lookErr == nil,
		PresetsDir: config.PresetsDir,
	}
	if ok, err := structured(report); ok {
		return err
	}

	fmt.Fprintf(out, "Platform: %s/%s\n\n", plat.OS, plat.Arch)
	fmt.Fprintf(out, "Available tools:\n")

	rows := make([][]string, 0, len(plat.Available))
	for _, tool := range plat.Available {
		marker := ""
		if tool == plat.Preferred {
			marker = "*"
		}
		rows = append(rows, []string{marker, tool, plat.Paths[tool]})
	}
	renderTable([]string{"", "TOOL", "PATH"}, rows)

	if plat.Preferred != "" {
		fmt.Fprintf(out, "\n* = preferred tool\n")
	}

	fmt.Fprintf(out, "\nExecutable: %s\n", exe)
	if lookErr != nil {
		fmt.Fprintf(out, "Warning: %v\n", lookErr)
	}
	fmt.Fprintf(out, "Presets: %s\n", config.PresetsDir)

	return nil
}

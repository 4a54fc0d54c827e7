package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var (
	createKind string
	exportFile string
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage environments",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environments",
	Args:  cobra.NoArgs,
	RunE:  runEnvList,
}

var envCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an environment from a preset",
	Long: `Create an environment with the packages of a preset.

Examples:
  condenv env create analysis
  condenv env create stats --kind r
  condenv env create pinned --kind python3 -c conda-forge`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvCreate,
}

var envCloneCmd = &cobra.Command{
	Use:   "clone SOURCE NAME",
	Short: "Clone an environment",
	Args:  cobra.ExactArgs(2),
	RunE:  runEnvClone,
}

var envDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete an environment",
	Args:    cobra.ExactArgs(1),
	RunE:    runEnvDelete,
}

var envImportCmd = &cobra.Command{
	Use:   "import NAME FILE",
	Short: "Create an environment from an explicit listing",
	Long: `Create an environment from an explicit listing file.
Files ending in .xz or .zst are decompressed first.`,
	Args: cobra.ExactArgs(2),
	RunE: runEnvImport,
}

var envExportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Print or save the explicit listing of an environment",
	Long: `Print the explicit listing of an environment, or save it with --file.
Files ending in .xz or .zst are compressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvExport,
}

var envChannelsCmd = &cobra.Command{
	Use:   "channels [NAME]",
	Short: "Show the channels an environment resolves to",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEnvChannels,
}

func init() {
	envCreateCmd.Flags().StringVarP(&createKind, "kind", "k", "python3", "preset to create the environment from")
	envExportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "write the listing to this file")

	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envCreateCmd)
	envCmd.AddCommand(envCloneCmd)
	envCmd.AddCommand(envDeleteCmd)
	envCmd.AddCommand(envImportCmd)
	envCmd.AddCommand(envExportCmd)
	envCmd.AddCommand(envChannelsCmd)
}

func runEnvList(cmd *cobra.Command, args []string) error {
	envs, err := newManager().ListEnvironments(cmd.Context())
	if err != nil {
		return reportFailure(err)
	}
	if ok, err := structured(envs); ok {
		return err
	}

	rows := make([][]string, 0, len(envs.Environments))
	for _, env := range envs.Environments {
		marker := ""
		if env.IsDefault {
			marker = "*"
		}
		rows = append(rows, []string{env.Name, marker, env.Dir})
	}
	renderTable([]string{"NAME", "DEFAULT", "DIRECTORY"}, rows)
	return nil
}

func runEnvCreate(cmd *cobra.Command, args []string) error {
	payload, err := newManager().CreateEnvironment(cmd.Context(), args[0], createKind)
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Created environment %s (%s)", args[0], createKind)
}

func runEnvClone(cmd *cobra.Command, args []string) error {
	payload, err := newManager().CloneEnvironment(cmd.Context(), args[0], args[1])
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Cloned %s into %s", args[0], args[1])
}

func runEnvDelete(cmd *cobra.Command, args []string) error {
	payload, err := newManager().DeleteEnvironment(cmd.Context(), args[0])
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Deleted environment %s", args[0])
}

func runEnvImport(cmd *cobra.Command, args []string) error {
	payload, err := newManager().ImportFromFile(cmd.Context(), args[0], args[1])
	if err != nil {
		return reportFailure(err)
	}
	return done(payload, "Imported %s from %s", args[0], args[1])
}

func runEnvExport(cmd *cobra.Command, args []string) error {
	m := newManager()

	if exportFile != "" {
		if err := m.ExportToFile(cmd.Context(), args[0], exportFile); err != nil {
			return reportFailure(err)
		}
		fmt.Fprintf(out, "Exported %s to %s\n", args[0], exportFile)
		return nil
	}

	listing, err := m.ExportEnvironment(cmd.Context(), args[0])
	if err != nil {
		return reportFailure(err)
	}
	fmt.Fprint(out, listing)
	return nil
}

func runEnvChannels(cmd *cobra.Command, args []string) error {
	name := "base"
	if len(args) == 1 {
		name = args[0]
	}

	resolved, err := newManager().ResolveChannels(cmd.Context(), name)
	if err != nil {
		return reportFailure(err)
	}
	if ok, err := structured(map[string]any{"channels": resolved}); ok {
		return err
	}

	names := make([]string, 0, len(resolved))
	for channel := range resolved {
		names = append(names, channel)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, channel := range names {
		rows = append(rows, []string{channel, strings.Join(resolved[channel], "\n")})
	}
	renderTable([]string{"CHANNEL", "URIS"}, rows)
	return nil
}

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arc-language/condenv/pkg/core"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the condenv configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configAddChannelCmd = &cobra.Command{
	Use:   "add-channel CHANNEL...",
	Short: "Add channels passed to every fetching command",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConfigAddChannel,
}

var configRemoveChannelCmd = &cobra.Command{
	Use:   "remove-channel CHANNEL...",
	Short: "Remove configured channels",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConfigRemoveChannel,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configAddChannelCmd)
	configCmd.AddCommand(configRemoveChannelCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if outputFormat == formatText || outputFormat == "" {
		outputFormat = formatYAML
	}
	_, err := structured(config)
	return err
}

func runConfigAddChannel(cmd *cobra.Command, args []string) error {
	return editChannels(func(current []string) []string {
		for _, channel := range args {
			if !slices.Contains(current, channel) {
				current = append(current, channel)
			}
		}
		return current
	})
}

func runConfigRemoveChannel(cmd *cobra.Command, args []string) error {
	return editChannels(func(current []string) []string {
		return slices.DeleteFunc(current, func(channel string) bool {
			return slices.Contains(args, channel)
		})
	})
}

// editChannels rewrites the channel list of the config file itself, leaving
// out values that only came from flags or the environment
func editChannels(edit func([]string) []string) error {
	onDisk, err := core.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	onDisk.Options.Channels = edit(onDisk.Options.Channels)
	if err := core.SaveConfig(onDisk, cfgFile); err != nil {
		return err
	}

	fmt.Fprintf(out, "Channels: %v\n", onDisk.Options.Channels)
	return nil
}

// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/condenv"
	"github.com/arc-language/condenv/pkg/core"
)

var (
	cfgFile          string
	executable       string
	debug            bool
	outputFormat     string
	channels         []string
	offline          bool
	overrideChannels bool
	config           *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "condenv",
	Short: "Conda environment manager",
	Long: `condenv - Conda environment manager

Create, clone, import and export conda environments, and search, install,
update and remove their packages through conda, mamba or micromamba.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext executes the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/condenv/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&executable, "executable", "", "conda, mamba or micromamba executable to run")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatText, "output format (text, json, yaml)")
	rootCmd.PersistentFlags().StringArrayVarP(&channels, "channel", "c", nil, "additional channel to search (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "offline mode, don't connect to the Internet")
	rootCmd.PersistentFlags().BoolVar(&overrideChannels, "override-channels", false, "do not search channels from .condarc")

	// Add commands
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(pkgCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if executable != "" {
		config.Executable = executable
	}
	if debug {
		config.Debug = true
	}
	if len(channels) > 0 {
		config.Options.Channels = append(config.Options.Channels, channels...)
	}
	if offline {
		config.Options.Offline = true
	}
	if overrideChannels {
		config.Options.OverrideChannels = true
	}
	if config.Logger == nil {
		config.Logger = core.NewLogger(config.Debug)
	}
}

func newManager() *condenv.Manager {
	return condenv.NewManager(config)
}

// Package commands implements the mdnotes command line.
package commands

import (
	"io/fs"

	"github.com/spf13/cobra"

	"mdnotes/internal/config"
)

var (
	// Version information injected at build time.
	Version = config.Version
	Commit  = "none"

	// Global flags.
	cfgFile string
	devMode bool

	assets fs.FS
)

// rootCmd runs the desktop app when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mdnotes",
	Short: "mdnotes - markdown notes on your desktop",
	Long: `mdnotes keeps one markdown file per note in a folder you own and
shows them in a desktop window.

Run without a command to open the app. Use "mdnotes [command] --help" for
more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGUI,
}

// Execute runs the root command. frontend holds the built UI assets.
func Execute(frontend fs.FS) error {
	assets = frontend
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/mdnotes/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "development mode: debug logging and stack traces")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("dev") {
		cfg.Dev = devMode
	}
	return cfg, nil
}

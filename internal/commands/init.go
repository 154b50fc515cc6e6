package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mdnotes/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Write a configuration file with the default settings.

By default, the configuration file is created at $XDG_CONFIG_HOME/mdnotes/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  mdnotes init

  # Keep notes somewhere else
  mdnotes init --config ~/notes.yaml`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Log = config.LogConfig{
		Console:        true,
		GlobalHandlers: true,
		File: config.FileLogConfig{
			Enabled: true,
			Dir:     cfg.Log.File.Dir,
			Rotate:  "@daily",
		},
	}
	cfg.Client.Timeout = defaultClientTimeout

	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created at: %s\n", path)
	fmt.Fprintf(out, "Notes are stored in: %s\n", cfg.NotesDir)
	return nil
}

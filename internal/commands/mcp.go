package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mdnotes/internal/app"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the notes to AI agents over MCP on stdin/stdout",
	Long: `Serve the notes to AI agents using the Model Context Protocol.

The server speaks MCP on stdin/stdout and runs without a window. Logs go to
stderr and the log file, never to stdout.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	errs := hostErrors.Get(app.HostErrorConfig(cfg, nil))
	defer errs.Recover()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.ServeMCP(ctx, cfg, errs)
}

package app

import (
	"context"

	"mdnotes/internal/bridge"
	"mdnotes/internal/config"
	"mdnotes/internal/errhandler"
	mcpserver "mdnotes/internal/mcp"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It starts the same host as the GUI and serves until the input closes
// or ctx is cancelled.
func ServeMCP(ctx context.Context, cfg *config.Config, errs *errhandler.Handler) error {
	a := newHeadless(cfg, errs, nil)
	a.Startup(ctx)
	defer a.Shutdown(context.WithoutCancel(ctx))

	srv := mcpserver.New(ctx, mcpserver.Deps{
		Client:  a.client(bridge.WithTimeout(cfg.Client.Timeout)),
		Emitter: a.events,
		Errs:    errs,
		Version: cfg.Version,
	})
	defer srv.Close()

	done := make(chan error, 1)
	errs.Go(func() { done <- srv.ServeStdio() })

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return nil
	}
}

package app

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"mdnotes/internal/bridge"
)

// opener reveals directories through the webview runtime, or through the
// platform's file manager command when there is no webview.
func (a *App) opener() bridge.Opener {
	if a.headless {
		return bridge.OpenerFunc(openWithSystem)
	}
	return bridge.OpenerFunc(func(ctx context.Context, path string) error {
		wailsRuntime.BrowserOpenURL(a.ctx, fileURL(path))
		return nil
	})
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

func openWithSystem(ctx context.Context, path string) error {
	cmd := openCommand(ctx, runtime.GOOS, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	go cmd.Wait()
	return nil
}

func openCommand(ctx context.Context, goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.CommandContext(ctx, "open", path)
	case "windows":
		return exec.CommandContext(ctx, "explorer", path)
	default:
		return exec.CommandContext(ctx, "xdg-open", path)
	}
}

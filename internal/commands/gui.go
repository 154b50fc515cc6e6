package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	"mdnotes/internal/app"
	"mdnotes/internal/errhandler"
	"mdnotes/internal/service"
)

const defaultClientTimeout = 30 * time.Second

// hostErrors owns the host-scope handler of this process.
var hostErrors errhandler.Provider

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	forward := &app.ErrorForwarder{}
	errs := hostErrors.Get(app.HostErrorConfig(cfg, forward))
	defer errs.Recover()

	a := app.New(cfg, errs, forward)
	size := service.DefaultWindowSize()

	err = wails.Run(&options.App{
		Title:     "mdnotes",
		Width:     size.Width,
		Height:    size.Height,
		MinWidth:  640,
		MinHeight: 480,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour:   &options.RGBA{R: 15, G: 15, B: 20, A: 1},
		Menu:               app.NewMenu(a),
		Logger:             errs.WailsLogger(),
		LogLevel:           errs.WailsLevel(),
		LogLevelProduction: errs.WailsLevel(),
		OnStartup:          a.Startup,
		OnShutdown:         a.Shutdown,
		Bind: []interface{}{
			a,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
			},
			About: &mac.AboutInfo{
				Title:   "mdnotes",
				Message: fmt.Sprintf("Markdown notes, version %s", cfg.Version),
			},
		},
	})
	if err != nil {
		errs.Capture(cmd.Context(), err, errhandler.CategoryGeneral, nil)
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

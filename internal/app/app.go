package app

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"mdnotes/internal/bridge"
	"mdnotes/internal/config"
	"mdnotes/internal/domain"
	"mdnotes/internal/errhandler"
	"mdnotes/internal/service"
	"mdnotes/internal/storage"
	"mdnotes/internal/watcher"
)

const shutdownTimeout = 3 * time.Second

// App is the main Wails application struct.
// All exported methods are available as Wails bindings; the note
// operations are exactly the bridge allow-list.
type App struct {
	ctx      context.Context
	cfg      *config.Config
	headless bool

	errs           *errhandler.Handler
	forward        *ErrorForwarder
	rendererErrors errhandler.Provider
	restoreLog     func()
	shutdownOnce   sync.Once

	db      *storage.DB
	notes   *service.NoteService
	window  *service.WindowSettingsService
	menu    *service.MenuService
	maint   *service.MaintenanceService
	watcher *watcher.Watcher
	events  *bridge.Registry
	host    *bridge.Host
}

// New creates an App for the GUI. errs is the host-scope handler; forward,
// when not nil, is the forwarder errs was configured with.
func New(cfg *config.Config, errs *errhandler.Handler, forward *ErrorForwarder) *App {
	return &App{cfg: cfg, errs: errs, forward: forward, restoreLog: func() {}}
}

// newHeadless creates an App with no webview behind it.
func newHeadless(cfg *config.Config, errs *errhandler.Handler, forward *ErrorForwarder) *App {
	a := New(cfg, errs, forward)
	a.headless = true
	return a
}

// HostErrorConfig is the host-scope handler configuration for cfg.
// In dev mode ERROR events are handed to forward.
func HostErrorConfig(cfg *config.Config, forward *ErrorForwarder) errhandler.Config {
	var onError errhandler.ErrorCallback
	if cfg.Dev && forward != nil {
		onError = forward.Forward
	}
	return errhandler.Config{
		Scope:               errhandler.ScopeHost,
		IsDev:               cfg.Dev,
		ConsoleLog:          cfg.Log.Console,
		SetupGlobalHandlers: cfg.Log.GlobalHandlers,
		FileLog: errhandler.FileLogConfig{
			Enabled: cfg.Log.File.Enabled,
			Path:    cfg.LogPath("host"),
		},
		OnError: onError,
	}
}

// rendererErrorConfig is the renderer-scope configuration. UI-side
// uncaught errors arrive through ReportError, so there is nothing to
// intercept in this process.
func rendererErrorConfig(cfg *config.Config) errhandler.Config {
	return errhandler.Config{
		Scope:      errhandler.ScopeRenderer,
		IsDev:      cfg.Dev,
		ConsoleLog: cfg.Log.Console,
		FileLog: errhandler.FileLogConfig{
			Enabled: cfg.Log.File.Enabled,
			Path:    cfg.LogPath("renderer"),
		},
	}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.restoreLog = a.errs.Install()
	renderer := a.renderer()

	// Settings are optional: without them the window opens at its default size.
	var settings *storage.SettingsStore
	db, err := storage.New(a.cfg.DBPath)
	if err != nil {
		a.errs.Capture(ctx, err, errhandler.CategoryStorage, map[string]any{"path": a.cfg.DBPath})
	} else {
		a.db = db
		settings = storage.NewSettingsStore(db)
		a.errs.Debug(ctx, "settings database opened", errhandler.CategoryStorage, map[string]any{"path": db.Path()})
	}
	a.window = service.NewWindowSettingsService(settings)

	a.notes = service.NewNoteService(storage.NewMarkdownStore(a.cfg.NotesDir))
	a.events = bridge.NewRegistry(a.errs)

	emitter := service.MultiEmitter{a.events}
	if !a.headless {
		ui := wailsEmitter{ctx: ctx, events: bridge.Events(a.cfg.Dev)}
		emitter = append(service.MultiEmitter{ui}, emitter...)
	}
	if a.forward != nil {
		a.forward.attach(emitter)
	}
	a.menu = service.NewMenuService(emitter)
	a.host = bridge.NewHost(ctx, a.notes, a.opener(), a.cfg.Version, a.errs)

	w, err := watcher.New(ctx, a.cfg.NotesDir, emitter, a.errs)
	if err != nil {
		a.errs.Capture(ctx, err, errhandler.CategoryFileSystem, map[string]any{"dir": a.cfg.NotesDir})
	} else {
		a.watcher = w
		a.notes.SetWriteObserver(w)
	}

	a.maint = service.NewMaintenanceService(rotators{a.errs, renderer}, a.errs)
	if err := a.maint.Start(ctx, a.cfg.Log.File.Rotate); err != nil {
		a.errs.Capture(ctx, err, errhandler.CategoryConfig, map[string]any{"key": "log.file.rotate"})
	}

	if !a.headless {
		size := a.window.LoadWindowSize()
		wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)
	}

	a.errs.Info(ctx, "mdnotes started", errhandler.CategoryGeneral, map[string]any{
		"version":  a.cfg.Version,
		"notesDir": a.cfg.NotesDir,
		"dev":      a.cfg.Dev,
		"headless": a.headless,
	})
}

// Shutdown is called when the app is closing. Only the first call acts.
func (a *App) Shutdown(ctx context.Context) {
	a.shutdownOnce.Do(func() { a.shutdown(ctx) })
}

func (a *App) shutdown(ctx context.Context) {
	if !a.headless && a.window != nil {
		w, h := wailsRuntime.WindowGetSize(a.ctx)
		if err := a.window.SaveWindowSize(w, h); err != nil {
			a.errs.Capture(ctx, err, errhandler.CategoryStorage, nil)
		}
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.errs.Capture(ctx, err, errhandler.CategoryFileSystem, nil)
		}
	}
	if a.maint != nil {
		if err := a.maint.Stop(stopCtx); err != nil {
			a.errs.Capture(ctx, err, errhandler.CategoryGeneral, nil)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.errs.Capture(ctx, err, errhandler.CategoryStorage, nil)
		}
	}

	a.errs.Info(ctx, "mdnotes stopped", errhandler.CategoryGeneral, nil)
	a.restoreLog()
	_ = a.renderer().Close(stopCtx)
	_ = a.errs.Close(stopCtx)
}

// client returns a UI-side adapter over this app's host.
func (a *App) client(opts ...bridge.ClientOption) *bridge.Client {
	return bridge.NewClient(a.host, a.events, opts...)
}

func (a *App) renderer() *errhandler.Handler {
	return a.rendererErrors.Get(rendererErrorConfig(a.cfg))
}

// ============================================================
// Bridge operations
// ============================================================

func (a *App) GetAppVersion() string {
	return a.host.GetAppVersion()
}

func (a *App) TestIPC() domain.IPCResult {
	return a.host.TestIPC()
}

func (a *App) SaveMarkdown(id, title, content string) domain.SaveResult {
	return a.host.SaveMarkdown(id, title, content)
}

func (a *App) LoadAllMarkdown() domain.LoadResult {
	return a.host.LoadAllMarkdown()
}

func (a *App) DeleteMarkdown(id string) domain.Result {
	return a.host.DeleteMarkdown(id)
}

func (a *App) GetMarkdownDir() domain.DirResult {
	return a.host.GetMarkdownDir()
}

func (a *App) OpenMarkdownDir() domain.Result {
	return a.host.OpenMarkdownDir()
}

// ============================================================
// Helpers
// ============================================================

// wailsEmitter delivers bridge events to the webview. Events not in the
// list are not relayed.
type wailsEmitter struct {
	ctx    context.Context
	events []string
}

func (w wailsEmitter) Emit(_ context.Context, event string, data any) {
	if !slices.Contains(w.events, event) {
		return
	}
	if data == nil {
		wailsRuntime.EventsEmit(w.ctx, event)
		return
	}
	wailsRuntime.EventsEmit(w.ctx, event, data)
}

// rotators rotates every handler's file sink.
type rotators []*errhandler.Handler

func (r rotators) Rotate() error {
	var errs []error
	for _, h := range r {
		if err := h.Rotate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

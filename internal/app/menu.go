package app

import (
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
)

// NewMenu builds the application menu. Items act on a once it has
// started; before that they do nothing.
func NewMenu(a *App) *menu.Menu {
	appMenu := menu.NewMenu()

	file := appMenu.AddSubmenu("File")
	file.AddText("New Note", keys.CmdOrCtrl("n"), func(_ *menu.CallbackData) {
		if a.menu != nil {
			a.menu.NewNote(a.ctx)
		}
	})
	file.AddText("Reload Notes", keys.CmdOrCtrl("r"), func(_ *menu.CallbackData) {
		if a.menu != nil {
			a.menu.ReloadNotes(a.ctx)
		}
	})
	file.AddSeparator()
	file.AddText("Open Notes Folder", nil, func(_ *menu.CallbackData) {
		if a.host != nil {
			a.host.OpenMarkdownDir()
		}
	})

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu.Append(menu.EditMenu())
	return appMenu
}

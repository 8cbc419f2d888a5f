package gui

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iroll/miniviewer/pkg/types"
)

// confirmTrash asks before sending the current image to the trash.
func (a *App) confirmTrash() {
	path, ok := a.sess.Current()
	if !ok {
		return
	}
	name := filepath.Base(path)
	dialog.ShowConfirm("Move to trash", "Move "+name+" to the trash?", func(confirm bool) {
		if confirm {
			a.dispatch(types.CmdTrash)
		}
	}, a.mainWindow)
}

// showRenameDialog collects a new name for the current image. With withDate
// set the entry is prefilled with the date-prefixed suggestion.
func (a *App) showRenameDialog(withDate bool) {
	path, ok := a.sess.Current()
	if !ok {
		return
	}

	name := filepath.Base(path)
	if withDate {
		suggested, err := a.sess.Nav().DatePrefixedName()
		if err != nil {
			a.statusLabel.SetText(err.Error())
			return
		}
		name = suggested
	}

	entry := widget.NewEntry()
	entry.SetText(name)

	dialog.ShowForm("Rename", "Rename", "Cancel", []*widget.FormItem{
		widget.NewFormItem("New name", entry),
	}, func(confirm bool) {
		if !confirm {
			return
		}
		if _, err := a.sess.Rename(entry.Text); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		a.displayCurrent()
	}, a.mainWindow)
}

// showOpenDialog asks whether to open a whole folder or a single file, then
// loads the chosen path into the session.
func (a *App) showOpenDialog() {
	dialog.ShowConfirm("Open", "Open a whole folder? Choose No to open a single image.", func(folder bool) {
		if folder {
			dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
				if err != nil {
					dialog.ShowError(err, a.mainWindow)
					return
				}
				if uri == nil {
					return
				}
				a.openPath(uri.Path())
			}, a.mainWindow)
			return
		}
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, a.mainWindow)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()
			a.openPath(reader.URI().Path())
		}, a.mainWindow)
	}, a.mainWindow)
}

func (a *App) openPath(path string) {
	if _, err := a.sess.Open(path); err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}
	a.displayCurrent()
	if a.watcher != nil && a.watcher.IsRunning() {
		if err := a.watcher.SetDirectory(a.sess.Nav().Dir()); err != nil {
			a.statusLabel.SetText(err.Error())
		}
	}
}

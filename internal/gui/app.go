// Package gui implements the fyne viewer window: image display, keyboard
// and mouse dispatch into the session, dialogs, and the status bar.
package gui

import (
	"fmt"
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iroll/miniviewer/internal/config"
	"github.com/iroll/miniviewer/internal/imaging"
	"github.com/iroll/miniviewer/internal/log"
	"github.com/iroll/miniviewer/internal/session"
	"github.com/iroll/miniviewer/internal/watch"
	"github.com/iroll/miniviewer/pkg/types"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	sess       *session.Session
	watcher    *watch.Watcher

	image       *canvas.Image
	scroll      *container.Scroll
	statusLabel *widget.Label

	// Decoded pixels of the current image before rotation
	current image.Image
	width   int
	height  int
}

// NewApp creates a new GUI application over an existing session.
func NewApp(cfg *config.Config, sess *session.Session) *App {
	fyneApp := app.NewWithID("io.github.iroll.miniviewer")

	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		sess:    sess,
	}

	a.mainWindow = a.fyneApp.NewWindow("miniviewer")
	a.mainWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	if cfg.Watch.Enabled {
		watcher, err := watch.New()
		if err != nil {
			log.Warnf("directory watching unavailable: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	return a
}

// Run starts the GUI application.
func (a *App) Run() {
	a.setupMainWindow()
	a.bindKeys()
	a.startWatcher()

	a.displayCurrent()

	a.mainWindow.Show()
	a.fyneApp.Run()
}

func (a *App) setupMainWindow() {
	a.image = canvas.NewImageFromImage(nil)
	a.image.FillMode = canvas.ImageFillContain

	area := newImageArea(a, a.image)
	a.scroll = container.NewScroll(area)

	a.statusLabel = widget.NewLabel("no images")
	a.statusLabel.Truncation = fyne.TextTruncateEllipsis

	a.mainWindow.SetContent(container.NewBorder(nil, a.statusLabel, nil, nil, a.scroll))

	a.mainWindow.SetCloseIntercept(func() {
		if a.watcher != nil {
			a.watcher.Stop()
		}
		a.mainWindow.Close()
	})
}

// startWatcher begins directory watching and refreshes the session when the
// directory changes under us.
func (a *App) startWatcher() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.SetDirectory(a.sess.Nav().Dir()); err != nil {
		log.Warnf("cannot watch %s: %v", a.sess.Nav().Dir(), err)
		return
	}
	if err := a.watcher.Start(); err != nil {
		log.Warnf("watcher did not start: %v", err)
		return
	}
	go func() {
		for range a.watcher.RefreshChannel() {
			a.dispatch(types.CmdRefresh)
		}
	}()
}

// dispatch applies a command to the session and updates the window for the
// reported effect.
func (a *App) dispatch(cmd types.Command) {
	effect, err := a.sess.Apply(cmd)
	if err != nil {
		a.statusLabel.SetText(err.Error())
		log.Warnf("%s failed: %v", cmd, err)
		return
	}

	switch effect {
	case session.EffectImageChanged, session.EffectSetChanged:
		a.displayCurrent()
	case session.EffectViewChanged:
		a.applyView()
	case session.EffectFullscreenChanged:
		a.mainWindow.SetFullScreen(a.sess.State().Fullscreen)
	case session.EffectPrompt:
		switch cmd {
		case types.CmdRename:
			a.showRenameDialog(false)
		case types.CmdOpen:
			a.showOpenDialog()
		}
	}
}

// displayCurrent decodes and shows the current image. Decode failures show
// an error status and leave navigation alive.
func (a *App) displayCurrent() {
	path, ok := a.sess.Current()
	if !ok {
		a.current = nil
		a.image.Image = nil
		a.image.Refresh()
		a.statusLabel.SetText("no images")
		a.mainWindow.SetTitle("miniviewer")
		return
	}

	decoded, err := imaging.DecodeFile(path)
	if err != nil {
		a.current = nil
		a.image.Image = nil
		a.image.Refresh()
		a.statusLabel.SetText(fmt.Sprintf("cannot display %s: %v", filepath.Base(path), err))
		a.mainWindow.SetTitle("miniviewer - error")
		log.LogWithFields(log.F("path", path), log.F("error", err)).Warn("decode failed")
		return
	}

	a.current = decoded.Image
	a.width = decoded.Width
	a.height = decoded.Height
	a.mainWindow.SetTitle("miniviewer - " + filepath.Base(path))
	a.applyView()
}

// applyView renders the current pixels with the session's zoom and rotation.
func (a *App) applyView() {
	if a.current == nil {
		return
	}
	state := a.sess.State()

	img := imaging.Rotate(a.current, state.Rotation)
	a.image.Image = img

	w, h := float32(img.Bounds().Dx()), float32(img.Bounds().Dy())
	if state.Fit {
		a.image.SetMinSize(fyne.NewSize(0, 0))
	} else {
		a.image.SetMinSize(fyne.NewSize(w*float32(state.Zoom), h*float32(state.Zoom)))
	}
	a.image.Refresh()
	a.scroll.Refresh()

	a.statusLabel.SetText(a.sess.Status(a.width, a.height))
}

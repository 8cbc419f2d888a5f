package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/iroll/miniviewer/pkg/types"
)

// bindKeys wires the keyboard surface. Named keys arrive through TypedKey,
// case-sensitive letters through TypedRune.
func (a *App) bindKeys() {
	a.mainWindow.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			a.dispatch(types.CmdPrev)
		case fyne.KeyRight, fyne.KeySpace:
			a.dispatch(types.CmdNext)
		case fyne.KeyDelete, fyne.KeyBackspace:
			a.confirmTrash()
		case fyne.KeyEscape:
			a.dispatch(types.CmdExitFullscreen)
		}
	})

	a.mainWindow.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			a.dispatch(types.CmdZoomIn)
		case '-':
			a.dispatch(types.CmdZoomOut)
		case '1':
			a.dispatch(types.CmdZoomActual)
		case '0':
			a.dispatch(types.CmdZoomFit)
		case 'f':
			a.dispatch(types.CmdToggleFullscreen)
		case 'r':
			a.dispatch(types.CmdRotateCW)
		case 'R':
			a.dispatch(types.CmdRotateCCW)
		case 't':
			a.showRenameDialog(false)
		case 'T':
			a.showRenameDialog(true)
		case 'o':
			a.showOpenDialog()
		}
	})
}

// imageArea hosts the canvas image and turns mouse wheel scrolling into
// zoom commands.
type imageArea struct {
	widget.BaseWidget
	app *App
	img *canvas.Image
}

var _ fyne.Scrollable = (*imageArea)(nil)

func newImageArea(app *App, img *canvas.Image) *imageArea {
	ia := &imageArea{app: app, img: img}
	ia.ExtendBaseWidget(ia)
	return ia
}

func (ia *imageArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ia.img)
}

func (ia *imageArea) MinSize() fyne.Size {
	return ia.img.MinSize()
}

func (ia *imageArea) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		ia.app.dispatch(types.CmdZoomIn)
	case ev.Scrolled.DY < 0:
		ia.app.dispatch(types.CmdZoomOut)
	}
}

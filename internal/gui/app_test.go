package gui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroll/miniviewer/internal/config"
	"github.com/iroll/miniviewer/internal/nav"
	"github.com/iroll/miniviewer/internal/session"
	"github.com/iroll/miniviewer/pkg/types"
)

// newTestApp wires an App around a session without opening a window.
func newTestApp(t *testing.T, names ...string) *App {
	t.Helper()
	test.NewApp()

	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	cfg := config.NewTestConfig()
	n, err := nav.New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, n.Load(dir))

	a := &App{
		cfg:         cfg,
		sess:        session.New(cfg, n),
		image:       canvas.NewImageFromImage(nil),
		statusLabel: widget.NewLabel(""),
	}
	return a
}

func TestImageAreaScrollZoom(t *testing.T) {
	a := newTestApp(t, "a.jpg")
	area := newImageArea(a, a.image)

	area.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 1}})
	assert.InDelta(t, 1.25, a.sess.State().Zoom, 1e-9)
	assert.False(t, a.sess.State().Fit)

	area.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -1}})
	assert.InDelta(t, 1.0, a.sess.State().Zoom, 1e-9)
}

func TestDispatchViewCommands(t *testing.T) {
	a := newTestApp(t, "a.jpg")

	a.dispatch(types.CmdRotateCW)
	assert.Equal(t, 90, a.sess.State().Rotation)

	a.dispatch(types.CmdZoomActual)
	assert.Equal(t, 1.0, a.sess.State().Zoom)
	assert.False(t, a.sess.State().Fit)

	a.dispatch(types.CmdZoomFit)
	assert.True(t, a.sess.State().Fit)
}

func TestDispatchErrorGoesToStatus(t *testing.T) {
	a := newTestApp(t) // empty set

	a.dispatch(types.CmdNext)
	assert.Contains(t, a.statusLabel.Text, "no images")
}

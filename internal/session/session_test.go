package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroll/miniviewer/internal/config"
	"github.com/iroll/miniviewer/internal/errors"
	"github.com/iroll/miniviewer/internal/nav"
	"github.com/iroll/miniviewer/internal/session"
	"github.com/iroll/miniviewer/pkg/types"
)

type fakeTrash struct {
	fail bool
}

func (f *fakeTrash) Put(path string) (string, error) {
	if f.fail {
		return "", errors.NewFileError("trash full", path, errors.FileOperationFailed, nil)
	}
	return "/trash/" + filepath.Base(path), nil
}

func newSession(t *testing.T, names ...string) *session.Session {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	cfg := config.NewTestConfig()
	n, err := nav.New(cfg, &fakeTrash{})
	require.NoError(t, err)
	require.NoError(t, n.Load(dir))
	return session.New(cfg, n)
}

func TestViewerStateZoom(t *testing.T) {
	cfg := config.NewTestConfig()

	t.Run("zoom stays within bounds", func(t *testing.T) {
		v := session.NewViewerState(cfg)
		for i := 0; i < 50; i++ {
			v.ZoomIn()
		}
		assert.Equal(t, cfg.Zoom.Max, v.Zoom)

		for i := 0; i < 50; i++ {
			v.ZoomOut()
		}
		assert.Equal(t, cfg.Zoom.Min, v.Zoom)
	})

	t.Run("manual zoom leaves fit mode", func(t *testing.T) {
		v := session.NewViewerState(cfg)
		assert.True(t, v.Fit)

		v.ZoomIn()
		assert.False(t, v.Fit)
		assert.InDelta(t, 1.25, v.Zoom, 1e-9)

		v.ZoomFit()
		assert.True(t, v.Fit)
		assert.Equal(t, 1.0, v.Zoom)
	})

	t.Run("actual size is exact", func(t *testing.T) {
		v := session.NewViewerState(cfg)
		v.ZoomIn()
		v.ZoomIn()
		v.ZoomActual()
		assert.Equal(t, 1.0, v.Zoom)
		assert.False(t, v.Fit)
	})
}

func TestViewerStateRotation(t *testing.T) {
	cfg := config.NewTestConfig()
	v := session.NewViewerState(cfg)

	angles := []int{90, 180, 270, 0}
	for _, want := range angles {
		v.RotateCW()
		assert.Equal(t, want, v.Rotation)
	}

	v.RotateCCW()
	assert.Equal(t, 270, v.Rotation)
}

func TestApplyNavigation(t *testing.T) {
	t.Run("next resets view state", func(t *testing.T) {
		s := newSession(t, "a.jpg", "b.jpg")
		s.State().ZoomIn()
		s.State().RotateCW()

		effect, err := s.Apply(types.CmdNext)
		require.NoError(t, err)
		assert.Equal(t, session.EffectImageChanged, effect)
		assert.True(t, s.State().Fit)
		assert.Equal(t, 0, s.State().Rotation)
	})

	t.Run("fullscreen persists across navigation", func(t *testing.T) {
		s := newSession(t, "a.jpg", "b.jpg")

		_, err := s.Apply(types.CmdToggleFullscreen)
		require.NoError(t, err)
		assert.True(t, s.State().Fullscreen)

		_, err = s.Apply(types.CmdNext)
		require.NoError(t, err)
		assert.True(t, s.State().Fullscreen)
	})

	t.Run("wraparound lands back on the first image", func(t *testing.T) {
		s := newSession(t, "a.jpg", "b.jpg")
		s.Nav().Goto(1)

		effect, err := s.Apply(types.CmdNext)
		require.NoError(t, err)
		assert.Equal(t, session.EffectImageChanged, effect)
		current, _ := s.Current()
		assert.Equal(t, "a.jpg", filepath.Base(current))
	})

	t.Run("single image navigation is a no-op", func(t *testing.T) {
		s := newSession(t, "a.jpg")
		effect, err := s.Apply(types.CmdNext)
		require.NoError(t, err)
		assert.Equal(t, session.EffectNone, effect)
	})

	t.Run("empty set reports an error", func(t *testing.T) {
		s := newSession(t)
		_, err := s.Apply(types.CmdNext)
		assert.ErrorIs(t, err, errors.ErrEmptyImageSet)
	})
}

func TestApplyFullscreen(t *testing.T) {
	s := newSession(t, "a.jpg")

	effect, err := s.Apply(types.CmdExitFullscreen)
	require.NoError(t, err)
	assert.Equal(t, session.EffectNone, effect)

	_, err = s.Apply(types.CmdToggleFullscreen)
	require.NoError(t, err)

	effect, err = s.Apply(types.CmdExitFullscreen)
	require.NoError(t, err)
	assert.Equal(t, session.EffectFullscreenChanged, effect)
	assert.False(t, s.State().Fullscreen)
}

func TestApplyTrash(t *testing.T) {
	t.Run("moves to the next image", func(t *testing.T) {
		s := newSession(t, "a.jpg", "b.jpg")

		effect, err := s.Apply(types.CmdTrash)
		require.NoError(t, err)
		assert.Equal(t, session.EffectImageChanged, effect)
		assert.Equal(t, 1, s.Nav().Len())
	})

	t.Run("last image leaves an empty set", func(t *testing.T) {
		s := newSession(t, "a.jpg")

		effect, err := s.Apply(types.CmdTrash)
		require.NoError(t, err)
		assert.Equal(t, session.EffectSetChanged, effect)
		_, ok := s.Current()
		assert.False(t, ok)
	})

	t.Run("failure leaves the session untouched", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0644))
		cfg := config.NewTestConfig()
		n, err := nav.New(cfg, &fakeTrash{fail: true})
		require.NoError(t, err)
		require.NoError(t, n.Load(dir))
		s := session.New(cfg, n)

		_, err = s.Apply(types.CmdTrash)
		require.Error(t, err)
		assert.Equal(t, 1, s.Nav().Len())
		assert.Equal(t, 0, s.Nav().Index())
	})
}

func TestApplyPrompts(t *testing.T) {
	s := newSession(t, "a.jpg")

	effect, err := s.Apply(types.CmdRename)
	require.NoError(t, err)
	assert.Equal(t, session.EffectPrompt, effect)

	effect, err = s.Apply(types.CmdOpen)
	require.NoError(t, err)
	assert.Equal(t, session.EffectPrompt, effect)
}

func TestRenameThroughSession(t *testing.T) {
	s := newSession(t, "a.jpg", "b.jpg")

	effect, err := s.Rename("renamed.jpg")
	require.NoError(t, err)
	assert.Equal(t, session.EffectSetChanged, effect)

	current, _ := s.Current()
	assert.Equal(t, "renamed.jpg", filepath.Base(current))

	_, err = s.Rename("b.jpg")
	assert.True(t, errors.IsTargetExists(err))
}

func TestOpenThroughSession(t *testing.T) {
	s := newSession(t, "a.jpg")
	s.State().ZoomIn()

	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "x.jpg"), []byte("x"), 0644))

	effect, err := s.Open(other)
	require.NoError(t, err)
	assert.Equal(t, session.EffectImageChanged, effect)
	assert.True(t, s.State().Fit)

	current, _ := s.Current()
	assert.Equal(t, "x.jpg", filepath.Base(current))

	_, err = s.Open(filepath.Join(other, "missing"))
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	s := newSession(t, "a.jpg", "b.jpg")
	assert.Equal(t, "a.jpg  [1/2]  640x480", s.Status(640, 480))

	empty := newSession(t)
	assert.Equal(t, "no images", empty.Status(0, 0))
}

func TestRefreshThroughSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0644))
	cfg := config.NewTestConfig()
	n, err := nav.New(cfg, &fakeTrash{})
	require.NoError(t, err)
	require.NoError(t, n.Load(dir))
	s := session.New(cfg, n)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0644))
	effect, err := s.Apply(types.CmdRefresh)
	require.NoError(t, err)
	assert.Equal(t, session.EffectSetChanged, effect)
	assert.Equal(t, 2, s.Nav().Len())

	// External delete of the current image switches to a survivor
	require.NoError(t, os.Remove(filepath.Join(dir, "a.jpg")))
	effect, err = s.Apply(types.CmdRefresh)
	require.NoError(t, err)
	assert.Equal(t, session.EffectImageChanged, effect)
	current, _ := s.Current()
	assert.Equal(t, "b.jpg", filepath.Base(current))
}

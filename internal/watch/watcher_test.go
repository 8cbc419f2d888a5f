package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroll/miniviewer/internal/watch"
)

func TestWatcher(t *testing.T) {
	t.Run("create event triggers a refresh", func(t *testing.T) {
		dir := t.TempDir()
		w, err := watch.New()
		require.NoError(t, err)
		defer w.Stop()

		require.NoError(t, w.SetDirectory(dir))
		require.NoError(t, w.Start())
		assert.True(t, w.IsRunning())

		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.jpg"), []byte("x"), 0644))

		select {
		case ev := <-w.RefreshChannel():
			assert.Equal(t, filepath.Join(dir, "new.jpg"), ev.Path)
		case <-time.After(3 * time.Second):
			t.Fatal("no refresh event received")
		}
	})

	t.Run("remove event triggers a refresh", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "old.jpg")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		w, err := watch.New()
		require.NoError(t, err)
		defer w.Stop()

		require.NoError(t, w.SetDirectory(dir))
		require.NoError(t, w.Start())

		require.NoError(t, os.Remove(path))

		select {
		case <-w.RefreshChannel():
		case <-time.After(3 * time.Second):
			t.Fatal("no refresh event received")
		}
	})

	t.Run("missing directory is rejected", func(t *testing.T) {
		w, err := watch.New()
		require.NoError(t, err)
		defer w.Stop()

		assert.Error(t, w.SetDirectory(filepath.Join(t.TempDir(), "missing")))
	})

	t.Run("stop closes the refresh channel", func(t *testing.T) {
		w, err := watch.New()
		require.NoError(t, err)
		require.NoError(t, w.SetDirectory(t.TempDir()))
		require.NoError(t, w.Start())

		w.Stop()
		assert.False(t, w.IsRunning())

		_, open := <-w.RefreshChannel()
		assert.False(t, open)

		// Second stop is a no-op
		w.Stop()
	})

	t.Run("double start is an error", func(t *testing.T) {
		w, err := watch.New()
		require.NoError(t, err)
		defer w.Stop()

		require.NoError(t, w.SetDirectory(t.TempDir()))
		require.NoError(t, w.Start())
		assert.Error(t, w.Start())
	})
}

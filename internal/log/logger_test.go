package log_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iroll/miniviewer/internal/log"
)

func TestPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.WithOutput(&buf))

	t.Run("info is written", func(t *testing.T) {
		buf.Reset()
		log.Info("opened %s", "photos")
		assert.Contains(t, buf.String(), "opened photos")
	})

	t.Run("debug honours SetDebug", func(t *testing.T) {
		buf.Reset()
		log.SetDebug(false)
		log.Debugf("hidden %d", 1)
		assert.Empty(t, buf.String())

		log.SetDebug(true)
		log.Debugf("visible %d", 2)
		assert.Contains(t, buf.String(), "visible 2")
		log.SetDebug(false)
	})

	t.Run("warn with trailing args", func(t *testing.T) {
		buf.Reset()
		log.Warn("skipping file", "bad.jpg")
		assert.Contains(t, buf.String(), "skipping file")
		assert.Contains(t, buf.String(), "bad.jpg")
	})

	t.Run("fields are attached", func(t *testing.T) {
		buf.Reset()
		log.LogWithFields(log.F("path", "/p/a.jpg"), log.F("index", 3)).Info("showing")
		out := buf.String()
		assert.Contains(t, out, "showing")
		assert.Contains(t, out, "/p/a.jpg")
	})

	t.Run("error with cause", func(t *testing.T) {
		buf.Reset()
		log.LogWithError("decode failed", assert.AnError)
		out := buf.String()
		assert.Contains(t, out, "decode failed")
		assert.Contains(t, out, assert.AnError.Error())
	})
}

func TestNewLoggerWithOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewLogger(log.WithOutput(&buf))
	assert.NotNil(t, lg)
}

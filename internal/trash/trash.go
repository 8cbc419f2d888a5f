// Package trash moves files to the trash instead of deleting them.
//
// On Linux it follows the freedesktop.org trash layout
// (~/.local/share/Trash/files plus a .trashinfo record). Elsewhere, or when
// the configuration overrides the trash directory, files are moved into a
// plain directory. Nothing in this package ever unlinks a file permanently.
package trash

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/iroll/miniviewer/internal/errors"
	"github.com/iroll/miniviewer/internal/log"
)

// Trash moves files into a trash directory.
type Trash struct {
	dir      string // destination for trashed files
	infoDir  string // .trashinfo records, empty when not using the XDG layout
	override bool
}

// New creates a Trash. If dir is non-empty it overrides the platform default.
func New(dir string) (*Trash, error) {
	if dir != "" {
		return &Trash{dir: dir, override: true}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	if runtime.GOOS == "linux" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(home, ".local", "share")
		}
		return &Trash{
			dir:     filepath.Join(base, "Trash", "files"),
			infoDir: filepath.Join(base, "Trash", "info"),
		}, nil
	}

	return &Trash{dir: filepath.Join(home, ".miniviewer", "trash")}, nil
}

// Dir returns the directory trashed files land in.
func (t *Trash) Dir() string {
	return t.dir
}

// Put moves the file at path into the trash and returns the trashed location.
// On any failure the original file is left in place.
func (t *Trash) Put(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NewFileError("invalid path", path, errors.InvalidPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileError("file not found", abs, errors.FileNotFound, err)
		}
		return "", errors.NewFileError("cannot access file", abs, errors.FileAccessDenied, err)
	}

	if err := os.MkdirAll(t.dir, 0700); err != nil {
		return "", errors.NewFileError("cannot create trash directory", t.dir, errors.FileOperationFailed, err)
	}

	dest := uniqueDest(t.dir, filepath.Base(abs))

	if t.infoDir != "" {
		if err := t.writeInfo(abs, filepath.Base(dest)); err != nil {
			return "", err
		}
	}

	if err := moveFile(abs, dest); err != nil {
		if t.infoDir != "" {
			os.Remove(filepath.Join(t.infoDir, filepath.Base(dest)+".trashinfo"))
		}
		return "", errors.NewFileError("cannot move file to trash", abs, errors.FileOperationFailed, err)
	}

	log.Debugf("trashed %s -> %s", abs, dest)
	return dest, nil
}

// writeInfo records the original location per the freedesktop.org spec so
// desktop trash tools can restore the file.
func (t *Trash) writeInfo(original, trashedName string) error {
	if err := os.MkdirAll(t.infoDir, 0700); err != nil {
		return errors.NewFileError("cannot create trash info directory", t.infoDir, errors.FileOperationFailed, err)
	}
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapePath(original), time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(t.infoDir, trashedName+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(info), 0600); err != nil {
		return errors.NewFileError("cannot write trash info", infoPath, errors.FileOperationFailed, err)
	}
	return nil
}

func escapePath(p string) string {
	// Paths in trashinfo records are URL-escaped, segment by segment.
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// uniqueDest picks a destination name that does not collide with an existing
// trashed file, appending _(n) before the extension.
func uniqueDest(dir, name string) string {
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}

	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_(%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// trash lives on a different filesystem.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}

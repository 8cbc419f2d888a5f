// Package nav resolves a launch path into an ordered set of image files and
// owns the index arithmetic for moving through, trashing, renaming, and
// refreshing that set.
package nav

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/iroll/miniviewer/internal/config"
	"github.com/iroll/miniviewer/internal/errors"
	"github.com/iroll/miniviewer/internal/log"
)

// Trasher moves a file to the trash and reports where it went.
type Trasher interface {
	Put(path string) (string, error)
}

// Navigator holds the current image set and index for one open directory.
type Navigator struct {
	cfg    *config.Config
	globs  []glob.Glob
	trash  Trasher
	dir    string
	images []string
	index  int
}

// New creates a Navigator with compiled extension patterns. The Trasher may
// be nil, in which case TrashCurrent fails without touching the set.
func New(cfg *config.Config, t Trasher) (*Navigator, error) {
	globs := make([]glob.Glob, 0, len(cfg.Extensions))
	for _, pattern := range cfg.Extensions {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, errors.NewConfigError("invalid extension pattern", pattern, errors.InvalidConfig, err)
		}
		globs = append(globs, g)
	}
	return &Navigator{
		cfg:   cfg,
		globs: globs,
		trash: t,
		index: -1,
	}, nil
}

// Load resolves path into an image set and initial index. A directory yields
// its recognized images at index 0; a file yields its recognized siblings
// with the index at the file itself. A launched file whose name matches no
// pattern is still added to the set so it can be viewed.
func (n *Navigator) Load(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.NewFileError("invalid path", path, errors.InvalidPath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("no such file or directory", abs, errors.FileNotFound, err)
		}
		return errors.NewFileError("cannot access path", abs, errors.FileAccessDenied, err)
	}

	if info.IsDir() {
		images, err := n.scan(abs)
		if err != nil {
			return err
		}
		n.dir = abs
		n.images = images
		n.index = -1
		if len(images) > 0 {
			n.index = 0
		}
		log.Debugf("loaded directory %s: %d images", abs, len(images))
		return nil
	}

	dir := filepath.Dir(abs)
	images, err := n.scan(dir)
	if err != nil {
		return err
	}
	idx := indexOf(images, abs)
	if idx < 0 {
		// Launched file with an unrecognized name: include it anyway.
		images = append(images, abs)
		sortByBase(images)
		idx = indexOf(images, abs)
	}
	n.dir = dir
	n.images = images
	n.index = idx
	log.Debugf("loaded %s: %d images, index %d", abs, len(images), idx)
	return nil
}

// scan returns the recognized image files directly inside dir, sorted by
// base name.
func (n *Navigator) scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot read directory", dir, errors.FileAccessDenied, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if n.recognized(entry.Name()) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sortByBase(images)
	return images, nil
}

func (n *Navigator) recognized(name string) bool {
	lower := strings.ToLower(name)
	for _, g := range n.globs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

func sortByBase(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return filepath.Base(paths[i]) < filepath.Base(paths[j])
	})
}

func indexOf(paths []string, target string) int {
	for i, p := range paths {
		if p == target {
			return i
		}
	}
	return -1
}

// Dir returns the directory of the current image set.
func (n *Navigator) Dir() string {
	return n.dir
}

// Images returns the paths in the current set, in order.
func (n *Navigator) Images() []string {
	out := make([]string, len(n.images))
	copy(out, n.images)
	return out
}

// Len returns the number of images in the set.
func (n *Navigator) Len() int {
	return len(n.images)
}

// Index returns the current position, or -1 when the set is empty.
func (n *Navigator) Index() int {
	return n.index
}

// Current returns the current image path, or false when the set is empty.
func (n *Navigator) Current() (string, bool) {
	if n.index < 0 || n.index >= len(n.images) {
		return "", false
	}
	return n.images[n.index], true
}

// Next advances to the following image. At the end of the set it wraps to
// the first image when wrapping is enabled, otherwise it stays put.
func (n *Navigator) Next() (string, bool) {
	return n.step(1)
}

// Prev moves to the preceding image, wrapping to the last image when
// wrapping is enabled.
func (n *Navigator) Prev() (string, bool) {
	return n.step(-1)
}

func (n *Navigator) step(delta int) (string, bool) {
	if len(n.images) == 0 {
		return "", false
	}
	next := n.index + delta
	if n.cfg.Navigation.Wrap {
		next = ((next % len(n.images)) + len(n.images)) % len(n.images)
	} else {
		if next < 0 {
			next = 0
		}
		if next >= len(n.images) {
			next = len(n.images) - 1
		}
	}
	n.index = next
	return n.images[n.index], true
}

// Goto jumps to position i, clamped to the set bounds.
func (n *Navigator) Goto(i int) (string, bool) {
	if len(n.images) == 0 {
		return "", false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(n.images) {
		i = len(n.images) - 1
	}
	n.index = i
	return n.images[n.index], true
}

// TrashCurrent sends the current image to the trash and removes it from the
// set, clamping the index to the new bounds. On failure the set and index
// are unchanged.
func (n *Navigator) TrashCurrent() error {
	current, ok := n.Current()
	if !ok {
		return errors.ErrEmptyImageSet
	}
	if n.trash == nil {
		return errors.New("no trash backend configured")
	}

	if _, err := n.trash.Put(current); err != nil {
		return err
	}

	n.images = append(n.images[:n.index], n.images[n.index+1:]...)
	if n.index >= len(n.images) {
		n.index = len(n.images) - 1
	}
	log.Info("trashed %s (%d images remain)", filepath.Base(current), len(n.images))
	return nil
}

// Rename changes the current image's base name within its directory. The
// extension is kept if newBase omits one. Renaming onto an existing path is
// refused, and on any failure the set and index are unchanged.
func (n *Navigator) Rename(newBase string) (string, error) {
	current, ok := n.Current()
	if !ok {
		return "", errors.ErrEmptyImageSet
	}

	if reason := invalidNameReason(newBase); reason != "" {
		return "", errors.NewFileError(reason, newBase, errors.InvalidPath, nil)
	}

	if filepath.Ext(newBase) == "" {
		newBase += filepath.Ext(current)
	}
	dest := filepath.Join(filepath.Dir(current), newBase)
	if dest == current {
		return current, nil
	}

	if _, err := os.Stat(dest); err == nil {
		return "", errors.NewFileError("target name already exists", dest, errors.TargetExists, nil)
	} else if !os.IsNotExist(err) {
		return "", errors.NewFileError("cannot check target", dest, errors.FileAccessDenied, err)
	}

	if err := os.Rename(current, dest); err != nil {
		return "", errors.NewFileError("rename failed", current, errors.FileOperationFailed, err)
	}

	n.images[n.index] = dest
	log.Info("renamed %s -> %s", filepath.Base(current), newBase)
	return dest, nil
}

// DatePrefixedName suggests a new base name for the current image with its
// modification date prepended. A name that already carries the prefix is
// returned unchanged so the prefix is never doubled.
func (n *Navigator) DatePrefixedName() (string, error) {
	current, ok := n.Current()
	if !ok {
		return "", errors.ErrEmptyImageSet
	}
	info, err := os.Stat(current)
	if err != nil {
		return "", errors.NewFileError("cannot stat file", current, errors.FileAccessDenied, err)
	}
	base := filepath.Base(current)
	prefix := info.ModTime().Format(n.cfg.Rename.DateFormat)
	if strings.HasPrefix(base, prefix) {
		return base, nil
	}
	return prefix + base, nil
}

// RenameWithDatePrefix applies the date-prefixed name directly.
func (n *Navigator) RenameWithDatePrefix() (string, error) {
	name, err := n.DatePrefixedName()
	if err != nil {
		return "", err
	}
	return n.Rename(name)
}

// Refresh rescans the directory. The previously current image stays current
// when it survives; otherwise the index clamps to the nearest valid position.
func (n *Navigator) Refresh() error {
	if n.dir == "" {
		return errors.New("nothing loaded")
	}
	previous, _ := n.Current()
	prevIndex := n.index

	images, err := n.scan(n.dir)
	if err != nil {
		return err
	}
	n.images = images

	if idx := indexOf(images, previous); idx >= 0 {
		n.index = idx
		return nil
	}
	n.index = prevIndex
	if n.index >= len(images) {
		n.index = len(images) - 1
	}
	if n.index < 0 && len(images) > 0 {
		n.index = 0
	}
	return nil
}

// invalidNameReason reports why base is unusable as a file name, or "" when
// it is fine. Windows-reserved names are refused everywhere so renamed
// folders stay portable.
func invalidNameReason(base string) string {
	if base == "" {
		return "name is empty"
	}
	if base == "." || base == ".." {
		return "name is reserved"
	}
	if strings.ContainsAny(base, `/\:*?"<>|`) {
		return "name contains invalid characters"
	}
	stem := strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
	reserved := map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true,
		"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
		"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
	}
	if reserved[stem] {
		return "name is reserved on some platforms"
	}
	return ""
}

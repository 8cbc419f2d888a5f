// Package session holds the viewer's presentation state and dispatches
// viewer commands against the navigator, so every keyboard operation can be
// exercised without a live display.
package session

import (
	"fmt"
	"path/filepath"

	"github.com/iroll/miniviewer/internal/config"
	"github.com/iroll/miniviewer/internal/errors"
	"github.com/iroll/miniviewer/internal/log"
	"github.com/iroll/miniviewer/internal/nav"
	"github.com/iroll/miniviewer/pkg/types"
)

// ViewerState is the presentation state for the displayed image. Zoom and
// rotation reset when the image changes; fullscreen persists.
type ViewerState struct {
	cfg        *config.Config
	Zoom       float64
	Fit        bool
	Rotation   int
	Fullscreen bool
}

// NewViewerState returns a state in fit mode at zoom 1.
func NewViewerState(cfg *config.Config) ViewerState {
	return ViewerState{cfg: cfg, Zoom: 1.0, Fit: true}
}

// ZoomIn multiplies the zoom by the configured step and leaves fit mode.
func (v *ViewerState) ZoomIn() {
	v.setZoom(v.Zoom * v.cfg.Zoom.In)
}

// ZoomOut divides the zoom by the configured step and leaves fit mode.
func (v *ViewerState) ZoomOut() {
	v.setZoom(v.Zoom * v.cfg.Zoom.Out)
}

// ZoomActual sets 100% zoom.
func (v *ViewerState) ZoomActual() {
	v.setZoom(1.0)
}

// ZoomFit returns to fit-to-window mode.
func (v *ViewerState) ZoomFit() {
	v.Fit = true
	v.Zoom = 1.0
}

func (v *ViewerState) setZoom(z float64) {
	if z < v.cfg.Zoom.Min {
		z = v.cfg.Zoom.Min
	}
	if z > v.cfg.Zoom.Max {
		z = v.cfg.Zoom.Max
	}
	v.Zoom = z
	v.Fit = false
}

// RotateCW rotates the view 90 degrees clockwise.
func (v *ViewerState) RotateCW() {
	v.Rotation = (v.Rotation + 90) % 360
}

// RotateCCW rotates the view 90 degrees counter-clockwise.
func (v *ViewerState) RotateCCW() {
	v.Rotation = (v.Rotation + 270) % 360
}

// ResetForNewImage restores fit mode and upright rotation. Fullscreen is
// left alone.
func (v *ViewerState) ResetForNewImage() {
	v.Zoom = 1.0
	v.Fit = true
	v.Rotation = 0
}

// Effect tells the UI what changed after a command was applied.
type Effect int

const (
	// EffectNone means nothing visible changed.
	EffectNone Effect = iota
	// EffectImageChanged means a different image is now current.
	EffectImageChanged
	// EffectViewChanged means zoom or rotation changed on the same image.
	EffectViewChanged
	// EffectFullscreenChanged means the fullscreen flag toggled.
	EffectFullscreenChanged
	// EffectSetChanged means the image set changed without changing which
	// image is shown (rename, refresh).
	EffectSetChanged
	// EffectPrompt means the UI must collect input (rename dialog, open
	// dialog) and call back into the session.
	EffectPrompt
)

// Session binds a navigator to a ViewerState and applies commands.
type Session struct {
	cfg   *config.Config
	nav   *nav.Navigator
	state ViewerState
}

// New creates a Session over an already-constructed navigator.
func New(cfg *config.Config, navigator *nav.Navigator) *Session {
	return &Session{
		cfg:   cfg,
		nav:   navigator,
		state: NewViewerState(cfg),
	}
}

// Nav returns the underlying navigator.
func (s *Session) Nav() *nav.Navigator {
	return s.nav
}

// State returns the current viewer state.
func (s *Session) State() *ViewerState {
	return &s.state
}

// Current returns the current image path, or false when the set is empty.
func (s *Session) Current() (string, bool) {
	return s.nav.Current()
}

// Apply executes cmd and reports what the UI must update. CmdRename and
// CmdOpen only request a prompt; the UI calls Rename or Open with the
// collected input.
func (s *Session) Apply(cmd types.Command) (Effect, error) {
	log.Debugf("command: %s", cmd)

	switch cmd {
	case types.CmdNext, types.CmdPrev:
		before, _ := s.nav.Current()
		var after string
		var ok bool
		if cmd == types.CmdNext {
			after, ok = s.nav.Next()
		} else {
			after, ok = s.nav.Prev()
		}
		if !ok {
			return EffectNone, errors.ErrEmptyImageSet
		}
		if after != before {
			s.state.ResetForNewImage()
			return EffectImageChanged, nil
		}
		return EffectNone, nil

	case types.CmdZoomIn:
		s.state.ZoomIn()
		return EffectViewChanged, nil
	case types.CmdZoomOut:
		s.state.ZoomOut()
		return EffectViewChanged, nil
	case types.CmdZoomActual:
		s.state.ZoomActual()
		return EffectViewChanged, nil
	case types.CmdZoomFit:
		s.state.ZoomFit()
		return EffectViewChanged, nil
	case types.CmdRotateCW:
		s.state.RotateCW()
		return EffectViewChanged, nil
	case types.CmdRotateCCW:
		s.state.RotateCCW()
		return EffectViewChanged, nil

	case types.CmdToggleFullscreen:
		s.state.Fullscreen = !s.state.Fullscreen
		return EffectFullscreenChanged, nil
	case types.CmdExitFullscreen:
		if !s.state.Fullscreen {
			return EffectNone, nil
		}
		s.state.Fullscreen = false
		return EffectFullscreenChanged, nil

	case types.CmdTrash:
		if err := s.nav.TrashCurrent(); err != nil {
			return EffectNone, err
		}
		s.state.ResetForNewImage()
		if s.nav.Len() == 0 {
			return EffectSetChanged, nil
		}
		return EffectImageChanged, nil

	case types.CmdRename, types.CmdOpen:
		return EffectPrompt, nil

	case types.CmdRenameWithDate:
		if _, err := s.nav.RenameWithDatePrefix(); err != nil {
			return EffectNone, err
		}
		return EffectSetChanged, nil

	case types.CmdRefresh:
		before, _ := s.nav.Current()
		if err := s.nav.Refresh(); err != nil {
			return EffectNone, err
		}
		after, ok := s.nav.Current()
		if !ok {
			return EffectSetChanged, nil
		}
		if after != before {
			s.state.ResetForNewImage()
			return EffectImageChanged, nil
		}
		return EffectSetChanged, nil
	}

	return EffectNone, nil
}

// Rename applies a user-entered base name to the current image.
func (s *Session) Rename(newBase string) (Effect, error) {
	if _, err := s.nav.Rename(newBase); err != nil {
		return EffectNone, err
	}
	return EffectSetChanged, nil
}

// Open loads a new path (file or directory) into the session.
func (s *Session) Open(path string) (Effect, error) {
	if err := s.nav.Load(path); err != nil {
		return EffectNone, err
	}
	s.state.ResetForNewImage()
	return EffectImageChanged, nil
}

// Status formats the status line for the current image:
// name, one-based position over set size, and pixel dimensions.
func (s *Session) Status(width, height int) string {
	current, ok := s.nav.Current()
	if !ok {
		return "no images"
	}
	return fmt.Sprintf("%s  [%d/%d]  %dx%d",
		filepath.Base(current), s.nav.Index()+1, s.nav.Len(), width, height)
}

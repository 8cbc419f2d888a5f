package types

// Command is a viewer operation triggered by a key press, mouse event, or
// menu action. The UIs translate their input events into Commands and hand
// them to the session, which keeps every operation testable without a
// display.
type Command int

const (
	CmdNone Command = iota
	CmdNext
	CmdPrev
	CmdZoomIn
	CmdZoomOut
	CmdZoomActual
	CmdZoomFit
	CmdRotateCW
	CmdRotateCCW
	CmdToggleFullscreen
	CmdExitFullscreen
	CmdTrash
	CmdRename
	CmdRenameWithDate
	CmdRefresh
	CmdOpen
)

// String returns the command name for logs and status messages.
func (c Command) String() string {
	switch c {
	case CmdNext:
		return "next"
	case CmdPrev:
		return "prev"
	case CmdZoomIn:
		return "zoom-in"
	case CmdZoomOut:
		return "zoom-out"
	case CmdZoomActual:
		return "zoom-actual"
	case CmdZoomFit:
		return "zoom-fit"
	case CmdRotateCW:
		return "rotate-cw"
	case CmdRotateCCW:
		return "rotate-ccw"
	case CmdToggleFullscreen:
		return "fullscreen"
	case CmdExitFullscreen:
		return "exit-fullscreen"
	case CmdTrash:
		return "trash"
	case CmdRename:
		return "rename"
	case CmdRenameWithDate:
		return "rename-with-date"
	case CmdRefresh:
		return "refresh"
	case CmdOpen:
		return "open"
	default:
		return "none"
	}
}

// Package tui implements the terminal cull mode: a bubbletea list over the
// image set with mark, trash, and rename operations.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iroll/miniviewer/internal/session"
	"github.com/iroll/miniviewer/pkg/types"
)

type mode int

const (
	modeNormal mode = iota
	modeRename
)

// pageSize rows moved by PageUp/PageDown.
const pageSize = 10

type Model struct {
	// Core state
	sess     *session.Session
	keys     types.KeyMap
	marked   map[string]bool
	showHelp bool
	mode     mode

	// Rename input state
	input textinput.Model

	statusMsg string
	errMsg    string
	width     int
	height    int
	version   string
}

// New creates the cull-mode model over an existing session.
func New(sess *session.Session, version string) *Model {
	input := textinput.New()
	input.Prompt = "rename: "
	input.CharLimit = 255

	return &Model{
		sess:    sess,
		keys:    types.DefaultKeyMap(),
		marked:  make(map[string]bool),
		input:   input,
		version: version,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		newModel := m.copy()
		newModel.width = msg.Width
		newModel.height = msg.Height
		return newModel, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	newModel := m.copy()

	switch newModel.mode {
	case modeRename:
		return newModel.handleRenameMode(msg)
	default:
		return newModel.handleNormalKeys(msg)
	}
}

func (m *Model) copy() *Model {
	newModel := &Model{
		sess:      m.sess,
		keys:      m.keys,
		marked:    make(map[string]bool, len(m.marked)),
		showHelp:  m.showHelp,
		mode:      m.mode,
		input:     m.input,
		statusMsg: m.statusMsg,
		errMsg:    m.errMsg,
		width:     m.width,
		height:    m.height,
		version:   m.version,
	}
	for k, v := range m.marked {
		newModel.marked[k] = v
	}
	return newModel
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Down):
		m.applyCommand(types.CmdNext)
	case key.Matches(msg, m.keys.Up):
		m.applyCommand(types.CmdPrev)
	case key.Matches(msg, m.keys.PageDown):
		m.sess.Nav().Goto(m.sess.Nav().Index() + pageSize)
	case key.Matches(msg, m.keys.PageUp):
		m.sess.Nav().Goto(m.sess.Nav().Index() - pageSize)
	case key.Matches(msg, m.keys.GotoTop):
		m.sess.Nav().Goto(0)
	case key.Matches(msg, m.keys.GotoBottom):
		m.sess.Nav().Goto(m.sess.Nav().Len() - 1)

	case key.Matches(msg, m.keys.Mark):
		if current, ok := m.sess.Current(); ok {
			m.marked[current] = !m.marked[current]
			m.applyCommand(types.CmdNext)
		}

	case key.Matches(msg, m.keys.TrashMarks):
		m.trashMarked()

	case key.Matches(msg, m.keys.Rename):
		return m.startRename(false)
	case key.Matches(msg, m.keys.DateRename):
		return m.startRename(true)

	case key.Matches(msg, m.keys.Refresh):
		m.applyCommand(types.CmdRefresh)
		m.statusMsg = fmt.Sprintf("rescanned, %d images", m.sess.Nav().Len())
	}

	return m, nil
}

func (m *Model) startRename(withDate bool) (tea.Model, tea.Cmd) {
	current, ok := m.sess.Current()
	if !ok {
		m.errMsg = "no images"
		return m, nil
	}

	name := filepath.Base(current)
	if withDate {
		suggested, err := m.sess.Nav().DatePrefixedName()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		name = suggested
	}

	m.mode = modeRename
	m.input.SetValue(name)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) handleRenameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.input.Blur()
		if _, err := m.sess.Rename(m.input.Value()); err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = "renamed to " + m.input.Value()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// trashMarked sends every marked image to the trash, or the current image
// when nothing is marked.
func (m *Model) trashMarked() {
	nav := m.sess.Nav()

	if len(m.marked) == 0 {
		if err := nav.TrashCurrent(); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.statusMsg = "trashed 1 image"
		return
	}

	trashed := 0
	for path, marked := range m.marked {
		if !marked {
			continue
		}
		idx := -1
		for i, p := range nav.Images() {
			if p == path {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		nav.Goto(idx)
		if err := nav.TrashCurrent(); err != nil {
			m.errMsg = err.Error()
			continue
		}
		trashed++
	}
	m.marked = make(map[string]bool)
	m.statusMsg = fmt.Sprintf("trashed %d images", trashed)
}

func (m *Model) applyCommand(cmd types.Command) {
	if _, err := m.sess.Apply(cmd); err != nil {
		m.errMsg = err.Error()
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("miniviewer %s — %s", m.version, m.sess.Nav().Dir())
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	images := m.sess.Nav().Images()
	cursor := m.sess.Nav().Index()

	if len(images) == 0 {
		b.WriteString(StatusStyle.Render("no images"))
		b.WriteString("\n")
	}

	start, end := window(cursor, len(images), m.listHeight())
	for i := start; i < end; i++ {
		name := filepath.Base(images[i])
		line := "  " + name
		if m.marked[images[i]] {
			line = "✗ " + name
		}
		switch {
		case i == cursor:
			b.WriteString(CursorStyle.Render("> " + name))
		case m.marked[images[i]]:
			b.WriteString(MarkedStyle.Render(line))
		default:
			b.WriteString(FileStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeRename {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.statusMsg != "" {
		b.WriteString(StatusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	if len(images) > 0 && cursor >= 0 {
		position := fmt.Sprintf("[%d/%d]", cursor+1, len(images))
		b.WriteString(StatusStyle.Render(position))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(HelpStyle.Render(helpText))
	} else {
		b.WriteString(HelpStyle.Render("? help · q quit"))
	}

	return App.Render(b.String())
}

const helpText = `↑/k prev · ↓/j next · g/G first/last
space mark · x trash marked · t rename · T rename with date
r rescan · ? help · q quit`

// listHeight returns how many list rows fit in the current window.
func (m *Model) listHeight() int {
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

// window computes the visible slice of the list so the cursor stays on
// screen.
func window(cursor, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

// Marked reports whether path is currently marked for trashing.
func (m *Model) Marked(path string) bool {
	return m.marked[path]
}

// ShowHelp reports whether the help block is visible.
func (m *Model) ShowHelp() bool {
	return m.showHelp
}

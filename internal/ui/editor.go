package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"splitdesk/internal/command"
	"splitdesk/internal/geom"
	"splitdesk/internal/registry"
	"splitdesk/internal/split"
)

// EditorView is the leaf pane content for an editor. Its logical state
// (path, cursor, scroll) lives in the pane registry under the view's ID; the
// view renders it and keeps the viewport in sync.
type EditorView struct {
	ID string

	reg      *registry.Registry
	lines    []string
	viewport viewport.Model
	rect     geom.Rect
	Focused  bool
}

var (
	_ split.Content   = (*EditorView)(nil)
	_ split.Cloneable = (*EditorView)(nil)
)

// NewEditorView creates a view over the registry state stored under id.
func NewEditorView(id string, reg *registry.Registry) *EditorView {
	return &EditorView{
		ID:       id,
		reg:      reg,
		viewport: viewport.New(80, 24),
	}
}

// SetText sets the buffer contents shown in the viewport.
func (e *EditorView) SetText(text string) {
	e.lines = strings.Split(text, "\n")
	e.refresh()
}

func (e *EditorView) state() *registry.EditorState {
	if s, ok := e.reg.Get(e.ID); ok {
		return s
	}
	return &registry.EditorState{}
}

// Split clones the registry state into a fresh pane and returns a view over
// it, plus the command that restores the source's scroll offset in the clone.
func (e *EditorView) Split() (string, split.Content, tea.Cmd) {
	src := e.state()
	id := registry.NewID()
	e.reg.Insert(id, src.Clone())

	clone := NewEditorView(id, e.reg)
	clone.lines = e.lines
	clone.refresh()

	x, y := src.ScrollX, src.ScrollY
	return id, clone, func() tea.Msg {
		return command.RestoreScrollMsg{Target: id, X: x, Y: y}
	}
}

// Measure fills whatever box the layout offers.
func (e *EditorView) Measure(bc geom.Constraints) geom.Size {
	return bc.Max()
}

// Place commits the rectangle and resizes the viewport under the header line.
func (e *EditorView) Place(r geom.Rect) {
	if r == e.rect {
		return
	}
	e.rect = r
	h := r.Height - 1
	if h < 1 {
		h = 1
	}
	e.viewport.Width = r.Width
	e.viewport.Height = h
	e.refresh()
}

// Update moves the cursor on navigation keys and scrolls the viewport.
func (e *EditorView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		e.viewport, cmd = e.viewport.Update(msg)
		return cmd
	}

	s := e.state()
	switch key.String() {
	case "up", "k":
		if s.CursorLine > 0 {
			s.CursorLine--
		}
	case "down", "j":
		if s.CursorLine < e.maxLine() {
			s.CursorLine++
		}
	case "left", "h":
		if s.CursorCol > 0 {
			s.CursorCol--
		}
	case "right", "l":
		s.CursorCol++
	default:
		return nil
	}
	e.EnsureCursorVisible()
	return nil
}

func (e *EditorView) maxLine() int {
	if len(e.lines) == 0 {
		return 0
	}
	return len(e.lines) - 1
}

// EnsureCursorVisible scrolls so the cursor line is inside the viewport.
func (e *EditorView) EnsureCursorVisible() {
	s := e.state()
	top := s.ScrollY
	bottom := top + e.viewport.Height - 1
	if s.CursorLine < top {
		s.ScrollY = s.CursorLine
	} else if s.CursorLine > bottom {
		s.ScrollY = s.CursorLine - e.viewport.Height + 1
	}
	e.viewport.SetYOffset(s.ScrollY)
}

// RestoreScroll sets the scroll offset, typically after a split clone.
func (e *EditorView) RestoreScroll(x, y int) {
	s := e.state()
	s.ScrollX = x
	s.ScrollY = y
	e.viewport.SetYOffset(y)
}

// View renders the header line and the buffer viewport.
func (e *EditorView) View() string {
	s := e.state()
	path := s.Path
	if path == "" {
		path = "[untitled]"
	}
	style := Styles.Title
	if e.Focused {
		style = Styles.Active
	}
	header := style.Render(path) + Styles.Muted.Render(
		fmt.Sprintf("  %d:%d", s.CursorLine+1, s.CursorCol+1))
	return header + "\n" + e.viewport.View()
}

func (e *EditorView) refresh() {
	if len(e.lines) == 0 {
		e.viewport.SetContent(Styles.Empty.Render("(empty buffer)"))
		return
	}
	var b strings.Builder
	for i, line := range e.lines {
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("%4d ", i+1)))
		b.WriteString(Styles.Normal.Render(line))
		if i < len(e.lines)-1 {
			b.WriteByte('\n')
		}
	}
	e.viewport.SetContent(b.String())
}

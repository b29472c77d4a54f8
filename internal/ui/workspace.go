package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitdesk/internal/command"
	"splitdesk/internal/geom"
	"splitdesk/internal/keybind"
	"splitdesk/internal/logger"
	"splitdesk/internal/registry"
	"splitdesk/internal/search"
	"splitdesk/internal/split"
	"splitdesk/internal/term"
)

// Workspace area identities. Containers and panels are addressable focus
// targets just like panes.
const (
	AreaEditors  = "workspace.editors"
	AreaTerminal = "workspace.terminal"
	AreaSearch   = "workspace.search"
)

const (
	terminalPanelHeight = 12
	searchPanelWidth    = 48
)

// Workspace owns the split containers, the pane registry, and the focus
// state, and routes commands between them. Structural commands go to the
// container owning the target; focus and scroll requests emitted by the
// containers are applied here.
type Workspace struct {
	Root  string
	Modal bool

	reg   *registry.Registry
	keys  *keybind.Registry
	panel *term.Panel
	index search.Index

	editors   *split.Container
	terminals *split.Container
	results   *search.Results

	focus       *FocusManager
	size        geom.Size
	searchShown bool
}

// NewWorkspace assembles the workspace areas. root is the open folder, empty
// when none is open; runner spawns terminal shells.
func NewWorkspace(root string, modal bool, keys *keybind.Registry, runner term.Runner) *Workspace {
	w := &Workspace{
		Root:  root,
		Modal: modal,
		reg:   registry.New(),
		keys:  keys,
	}
	w.panel = term.NewPanel(runner, root)
	w.editors = split.New(AreaEditors).
		WithRegistry(w.reg).
		WithFocusFallback(w.reg).
		WithKeys(keys).
		WithEnvironment(w)
	w.terminals = split.New(AreaTerminal).
		Horizontal().
		WithFocusFallback(w.reg).
		WithTerminalHost(w.panel)
	w.results = search.NewResults()
	w.focus = &FocusManager{
		Current:  AreaEditors,
		Order:    []string{AreaEditors, AreaTerminal, AreaSearch},
		AreaOf:   w.areaOf,
		OnChange: w.onFocusChange,
	}
	return w
}

// WithIndex attaches the search index backing the results panel.
func (w *Workspace) WithIndex(idx search.Index) *Workspace {
	w.index = idx
	return w
}

// WorkspaceOpen implements split.Environment.
func (w *Workspace) WorkspaceOpen() bool { return w.Root != "" }

// ModalEnabled implements split.Environment.
func (w *Workspace) ModalEnabled() bool { return w.Modal }

// Registry exposes the pane registry.
func (w *Workspace) Registry() *registry.Registry { return w.reg }

// Editors exposes the editor area container.
func (w *Workspace) Editors() *split.Container { return w.editors }

// Terminals exposes the terminal panel container.
func (w *Workspace) Terminals() *split.Container { return w.terminals }

// Focused returns the focused pane or area identity.
func (w *Workspace) Focused() string { return w.focus.Current }

// TerminalFocused reports whether focus sits in a terminal pane, in which
// case printable keys belong to the shell rather than keybindings.
func (w *Workspace) TerminalFocused() bool {
	if w.focus.Current == AreaTerminal {
		return true
	}
	_, ok := w.terminals.Find(w.focus.Current)
	return ok
}

func (w *Workspace) areaOf(id string) string {
	switch id {
	case AreaEditors, AreaTerminal, AreaSearch:
		return id
	}
	if _, ok := w.terminals.Find(id); ok {
		return AreaTerminal
	}
	return AreaEditors
}

func (w *Workspace) onFocusChange(from, to string) {
	if w.reg.Tracks(to) {
		w.reg.SetLastActive(to)
	}
	for _, p := range w.editors.Children() {
		if v, ok := p.Content.(*EditorView); ok {
			v.Focused = v.ID == to
		}
	}
	logger.Debug("focus change", "from", from, "to", to)
}

// OpenFile opens a file in a new editor pane at the front of the editor area
// and returns the pane identity with the resulting commands.
func (w *Workspace) OpenFile(path string) (string, tea.Cmd) {
	id := registry.NewID()
	w.reg.Insert(id, &registry.EditorState{Path: path})

	v := NewEditorView(id, w.reg)
	if data, err := os.ReadFile(path); err == nil {
		v.SetText(string(data))
	} else {
		logger.Warn("open file", "path", path, "err", err)
	}

	cmd := w.editors.AddPane(id, v)
	return id, cmd
}

// ShowMatches populates and reveals the search results panel.
func (w *Workspace) ShowMatches(matches []search.Match) tea.Cmd {
	w.results.SetMatches(matches)
	w.searchShown = true
	w.layout()
	return func() tea.Msg { return command.FocusMsg{Target: AreaSearch} }
}

// SearchPath shows the index matches recorded for a path.
func (w *Workspace) SearchPath(path string) tea.Cmd {
	if w.index == nil {
		return nil
	}
	return w.ShowMatches(w.index.Lookup(path))
}

// Update routes one message through the workspace.
func (w *Workspace) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.size = geom.Size{Width: msg.Width, Height: msg.Height}
		w.layout()
		return nil
	case command.FocusMsg:
		w.focus.SetFocus(msg.Target)
		return nil
	case command.EnsureVisibleMsg:
		if v := w.editorByID(msg.Target); v != nil {
			v.EnsureCursorVisible()
		}
		return nil
	case command.RestoreScrollMsg:
		if v := w.editorByID(msg.Target); v != nil {
			v.RestoreScroll(msg.X, msg.Y)
		}
		return nil
	case command.LayoutInvalidatedMsg, command.ChildrenChangedMsg:
		w.layout()
		return nil
	case command.JumpToLocationMsg:
		return w.jumpTo(msg)
	case command.WorkbenchMsg:
		return w.runCommand(msg.Name)
	case term.ExitedMsg:
		cmd, _ := w.terminals.Dispatch(command.CloseTerminalMsg{
			Target: msg.PaneID,
			TermID: msg.TermID,
		})
		return cmd
	case term.OutputMsg:
		return w.terminals.Update(msg)
	case tea.KeyMsg:
		return w.routeKey(msg)
	case tea.MouseMsg:
		if cmd := w.editors.Update(msg); cmd != nil {
			return cmd
		}
		return w.terminals.Update(msg)
	}

	if cmd, handled := w.editors.Dispatch(msg); handled {
		return cmd
	}
	if cmd, handled := w.terminals.Dispatch(msg); handled {
		return cmd
	}
	return nil
}

// routeKey delivers key input to the focused pane only.
func (w *Workspace) routeKey(msg tea.KeyMsg) tea.Cmd {
	id := w.focus.Current
	if id == AreaSearch {
		return w.results.Update(msg)
	}
	if content, ok := w.editors.Find(id); ok {
		return content.Update(msg)
	}
	if content, ok := w.terminals.Find(id); ok {
		return content.Update(msg)
	}
	return nil
}

// runCommand executes a workbench command against the focused pane.
func (w *Workspace) runCommand(name string) tea.Cmd {
	target := w.focus.Current
	switch name {
	case command.Quit:
		return tea.Quit
	case command.EnableModal:
		w.Modal = true
		return nil
	case command.DisableModal:
		w.Modal = false
		return nil
	case command.SplitVertical:
		return w.dispatch(command.SplitMsg{Target: target, Vertical: true})
	case command.SplitClose:
		if s, ok := w.panel.ByPane(target); ok {
			return w.dispatch(command.CloseTerminalMsg{Target: target, TermID: s.TermID})
		}
		return w.dispatch(command.CloseMsg{Target: target})
	case command.SplitExchange:
		return w.dispatch(command.ExchangeMsg{Target: target})
	case command.SplitLeft:
		return w.dispatch(command.MoveMsg{Target: target, Direction: command.DirLeft})
	case command.SplitRight:
		return w.dispatch(command.MoveMsg{Target: target, Direction: command.DirRight})
	case command.SplitUp:
		return w.dispatch(command.MoveMsg{Target: target, Direction: command.DirUp})
	case command.SplitDown:
		return w.dispatch(command.MoveMsg{Target: target, Direction: command.DirDown})
	case command.ToggleTerminal:
		return w.toggleTerminal()
	default:
		logger.Debug("unhandled workbench command", "name", name)
		return nil
	}
}

func (w *Workspace) dispatch(msg tea.Msg) tea.Cmd {
	if cmd, handled := w.editors.Dispatch(msg); handled {
		return cmd
	}
	cmd, _ := w.terminals.Dispatch(msg)
	return cmd
}

// toggleTerminal shows the terminal panel, spawning its first session when
// needed, or hides it and hands focus back to the last active editor.
func (w *Workspace) toggleTerminal() tea.Cmd {
	if w.panel.Shown() {
		w.panel.HidePanel()
		w.layout()
		if id, ok := w.reg.LastActive(); ok {
			return func() tea.Msg { return command.FocusMsg{Target: id} }
		}
		return func() tea.Msg { return command.FocusMsg{Target: AreaEditors} }
	}

	w.panel.Show()
	w.layout()
	if cmd, handled := w.terminals.Dispatch(command.InitTerminalPanelMsg{AutoFocus: true}); handled && cmd != nil {
		return cmd
	}
	if id := w.panel.ActivePane(); id != "" {
		return func() tea.Msg { return command.FocusMsg{Target: id} }
	}
	return nil
}

// jumpTo focuses an editor showing the path, opening one when necessary, and
// moves its cursor to the match location.
func (w *Workspace) jumpTo(msg command.JumpToLocationMsg) tea.Cmd {
	line, col := msg.Line-1, msg.Col-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}

	for _, p := range w.editors.Children() {
		v, ok := p.Content.(*EditorView)
		if !ok {
			continue
		}
		if s, tracked := w.reg.Get(v.ID); tracked && s.Path == msg.Path {
			s.CursorLine = line
			s.CursorCol = col
			v.EnsureCursorVisible()
			id := v.ID
			return func() tea.Msg { return command.FocusMsg{Target: id} }
		}
	}

	id, cmd := w.OpenFile(msg.Path)
	if s, ok := w.reg.Get(id); ok {
		s.CursorLine = line
		s.CursorCol = col
	}
	if v := w.editorByID(id); v != nil {
		v.EnsureCursorVisible()
	}
	return cmd
}

func (w *Workspace) editorByID(id string) *EditorView {
	content, ok := w.editors.Find(id)
	if !ok {
		return nil
	}
	v, _ := content.(*EditorView)
	return v
}

// layout recomputes every area's rectangle from the window size.
func (w *Workspace) layout() {
	if w.size.IsZero() {
		return
	}
	width, height := w.size.Width, w.size.Height

	termH := 0
	if w.panel.Shown() {
		termH = terminalPanelHeight
		if termH > height/2 {
			termH = height / 2
		}
	}
	searchW := 0
	if w.searchShown {
		searchW = searchPanelWidth
		if searchW > width/2 {
			searchW = width / 2
		}
	}

	editorRect := geom.Rect{Width: width - searchW, Height: height - termH}
	w.editors.Measure(geom.Constrain(editorRect.Size()))
	w.editors.Place(editorRect)

	if searchW > 0 {
		r := geom.Rect{X: width - searchW, Width: searchW, Height: height - termH}
		w.results.Measure(geom.Constrain(r.Size()))
		w.results.Place(r)
	}
	if termH > 0 {
		r := geom.Rect{Y: height - termH, Width: width, Height: termH}
		w.terminals.Measure(geom.Constrain(r.Size()))
		w.terminals.Place(r)
	}
}

// View composes the areas into the final frame.
func (w *Workspace) View() string {
	top := w.editors.View()
	if w.searchShown {
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, w.results.View())
	}
	if !w.panel.Shown() {
		return top
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, w.terminals.View())
}

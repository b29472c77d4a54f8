package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"splitdesk/internal/keybind"
)

// AppModel is the root model: a workspace plus the key sequence handler that
// turns bound sequences into workbench commands before panes see them.
type AppModel struct {
	Workspace  *Workspace
	KeyHandler *keybind.Handler

	// InitialFile, when set, is opened into the first editor pane.
	InitialFile string
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	if a.InitialFile == "" {
		return nil
	}
	_, cmd := a.Workspace.OpenFile(a.InitialFile)
	return cmd
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		// Printable keys belong to a focused shell; only control sequences
		// reach the keybind handler then.
		if !(a.Workspace.TerminalFocused() && isTextKey(key)) {
			if consumed, cmd := a.KeyHandler.Handle(key); consumed {
				return a, cmd
			}
		}
		if key.String() == "tab" {
			a.Workspace.focus.Next()
			return a, nil
		}
		if key.String() == "shift+tab" {
			a.Workspace.focus.Prev()
			return a, nil
		}
	}
	return a, a.Workspace.Update(msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.Workspace.View()
	if a.KeyHandler.LeaderWaiting {
		pending := strings.Join(a.KeyHandler.Buffer, " ")
		base += "\n" + Styles.Hint.Render(pending+" -")
	}
	return base
}

func isTextKey(key tea.KeyMsg) bool {
	return key.Type == tea.KeyRunes || key.Type == tea.KeySpace
}

// NewAppModel creates the root application model.
func NewAppModel(ws *Workspace, reg *keybind.Registry) *AppModel {
	return &AppModel{
		Workspace:  ws,
		KeyHandler: keybind.NewHandler(reg),
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

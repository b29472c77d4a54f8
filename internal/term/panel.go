package term

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/xid"

	"splitdesk/internal/logger"
	"splitdesk/internal/split"
)

// Panel owns the terminal sessions behind the terminal panel's split
// container and implements the engine's TerminalHost contract.
type Panel struct {
	runner  Runner
	workDir string

	sessions   map[string]*Session // keyed by term id
	activeTerm string
	activePane string
	shown      bool
}

var _ split.TerminalHost = (*Panel)(nil)

// NewPanel creates a panel spawning shells in workDir.
func NewPanel(runner Runner, workDir string) *Panel {
	return &Panel{
		runner:   runner,
		workDir:  workDir,
		sessions: make(map[string]*Session),
	}
}

// Spawn starts a new shell session and returns it as pane content together
// with the command that pumps its output back into the event loop.
func (p *Panel) Spawn() (paneID, termID string, content split.Content, cmd tea.Cmd) {
	paneID = xid.New().String()
	termID = xid.New().String()

	s := NewSession(p.runner, p.workDir, paneID, termID)
	p.sessions[termID] = s
	p.shown = true

	logger.Debug("spawn terminal", "pane", paneID, "term", termID)
	return paneID, termID, s, s.Start()
}

// Release closes and forgets the session for a term id.
func (p *Panel) Release(termID string) {
	s, ok := p.sessions[termID]
	if !ok {
		return
	}
	_ = s.Close()
	delete(p.sessions, termID)
	if p.activeTerm == termID {
		p.activeTerm = ""
		p.activePane = ""
	}
}

// Activate records the panel's active session.
func (p *Panel) Activate(paneID, termID string) {
	p.activePane = paneID
	p.activeTerm = termID
}

// Count returns the number of live sessions.
func (p *Panel) Count() int {
	return len(p.sessions)
}

// HidePanel marks the panel hidden after its last terminal closes.
func (p *Panel) HidePanel() {
	p.shown = false
}

// Shown reports whether the panel should be rendered.
func (p *Panel) Shown() bool {
	return p.shown
}

// Show marks the panel visible.
func (p *Panel) Show() {
	p.shown = true
}

// Session returns the session for a term id.
func (p *Panel) Session(termID string) (*Session, bool) {
	s, ok := p.sessions[termID]
	return s, ok
}

// ByPane returns the session hosted in the given pane.
func (p *Panel) ByPane(paneID string) (*Session, bool) {
	for _, s := range p.sessions {
		if s.PaneID == paneID {
			return s, true
		}
	}
	return nil, false
}

// ActivePane returns the pane identity of the active session.
func (p *Panel) ActivePane() string {
	return p.activePane
}

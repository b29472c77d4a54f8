// Package term hosts shell sessions inside split panes. Spawning is
// asynchronous: the PTY is started when the pane's init command runs, and
// output is pumped through a channel back into the event loop, so the layout
// engine never blocks on process I/O.
package term

import (
	"bytes"
	"io"
	"os/exec"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitdesk/internal/geom"
	"splitdesk/internal/logger"
)

// OutputMsg carries bytes read from a session's PTY for display.
type OutputMsg struct {
	PaneID string
	Data   []byte
}

// ExitedMsg is delivered when a session's shell exits.
type ExitedMsg struct {
	PaneID string
	TermID string
}

// Session is a PTY-backed shell hosted as pane content. It fills whatever
// box the layout gives it and resizes the PTY when placed.
type Session struct {
	PaneID string
	TermID string

	runner   Runner
	workDir  string
	ptmx     io.ReadWriteCloser
	content  *bytes.Buffer
	viewport viewport.Model
	rect     geom.Rect
	outputCh chan []byte
	started  bool
}

// NewSession creates a session that will spawn a shell in workDir on Start.
func NewSession(runner Runner, workDir, paneID, termID string) *Session {
	vp := viewport.New(80, 24)
	return &Session{
		PaneID:   paneID,
		TermID:   termID,
		runner:   runner,
		workDir:  workDir,
		content:  &bytes.Buffer{},
		viewport: vp,
		outputCh: make(chan []byte, 64),
	}
}

// Start spawns the shell and begins reading from the PTY.
func (s *Session) Start() tea.Cmd {
	if s.started {
		return s.waitForOutput()
	}
	s.started = true

	shell := "sh"
	if path, err := exec.LookPath("bash"); err == nil {
		shell = path
	}
	cmd := exec.Command(shell)
	cmd.Dir = s.workDir
	if cmd.Dir == "" {
		cmd.Dir = "."
	}

	size := WinSize{Rows: 24, Cols: 80}
	if !s.rect.Size().IsZero() {
		size = WinSize{Rows: uint16(s.rect.Height), Cols: uint16(s.rect.Width)}
	}
	ptmx, err := s.runner.Start(cmd, size)
	if err != nil {
		logger.Error("spawn shell", "pane", s.PaneID, "err", err)
		s.content.WriteString("Failed to spawn shell: " + err.Error() + "\r\n")
		s.refreshViewport()
		return nil
	}
	s.ptmx = ptmx

	// Reader goroutine: PTY -> channel. The channel close signals exit.
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				select {
				case s.outputCh <- cp:
				default:
					// Channel full, drop (avoid blocking the shell)
				}
			}
			if err != nil {
				close(s.outputCh)
				return
			}
		}
	}()

	return s.waitForOutput()
}

func (s *Session) waitForOutput() tea.Cmd {
	return func() tea.Msg {
		data, ok := <-s.outputCh
		if !ok {
			return ExitedMsg{PaneID: s.PaneID, TermID: s.TermID}
		}
		return OutputMsg{PaneID: s.PaneID, Data: data}
	}
}

// Measure implements the pane content contract: a terminal takes whatever
// space it is offered.
func (s *Session) Measure(bc geom.Constraints) geom.Size {
	return bc.Max()
}

// Place commits the final rectangle and resizes the PTY to match.
func (s *Session) Place(r geom.Rect) {
	if r == s.rect {
		return
	}
	s.rect = r
	h := r.Height - 1 // one line of header
	if h < 1 {
		h = 1
	}
	s.viewport.Width = r.Width
	s.viewport.Height = h
	if s.ptmx != nil {
		_ = s.runner.Resize(s.ptmx, WinSize{Rows: uint16(h), Cols: uint16(r.Width)})
	}
	s.refreshViewport()
}

// Update feeds output into the viewport and forwards key input to the PTY.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OutputMsg:
		if msg.PaneID != s.PaneID {
			return nil
		}
		s.content.Write(msg.Data)
		s.refreshViewport()
		s.viewport.GotoBottom()
		return s.waitForOutput()
	case tea.KeyMsg:
		if s.ptmx != nil {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				_, _ = s.ptmx.Write(b)
			}
		}
		return nil
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// View renders the session header and scrollback.
func (s *Session) View() string {
	header := headerStyle.Render("terminal ") + dimStyle.Render(s.TermID)
	return header + "\n" + s.viewport.View()
}

// Close releases the PTY. The reader goroutine ends on the next read error.
func (s *Session) Close() error {
	if s.ptmx != nil {
		return s.ptmx.Close()
	}
	return nil
}

func (s *Session) refreshViewport() {
	s.viewport.SetContent(s.content.String())
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// keyToPTYBytes converts a Bubble Tea KeyMsg to bytes the PTY expects.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}

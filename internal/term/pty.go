package term

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// WinSize represents terminal dimensions in rows and columns.
type WinSize struct {
	Rows uint16
	Cols uint16
}

// Runner is the interface for spawning and controlling a PTY.
// Implementations can be swapped (e.g. creack/pty, or a mock for tests).
type Runner interface {
	Start(cmd *exec.Cmd, size WinSize) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size WinSize) error
}

// SystemPTY implements Runner using github.com/creack/pty.
type SystemPTY struct{}

var _ Runner = (*SystemPTY)(nil)

// Start spawns cmd in a PTY with the given size.
func (s *SystemPTY) Start(cmd *exec.Cmd, size WinSize) (io.ReadWriteCloser, error) {
	ws := &pty.Winsize{Rows: size.Rows, Cols: size.Cols}
	return pty.StartWithSize(cmd, ws)
}

// Resize resizes the PTY. The rwc must be the *os.File returned by Start;
// other types are a no-op.
func (s *SystemPTY) Resize(rwc io.ReadWriteCloser, size WinSize) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

package split

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitdesk/internal/command"
	"splitdesk/internal/geom"
)

// affordance is one row of the empty-container command list: the workbench
// command, the rect it was laid out into (relative to the container, cached
// for hit testing), and the key sequence it is bound to.
type affordance struct {
	cmd  command.WorkbenchCommand
	rect geom.Rect
	key  string
}

const unboundLabel = "Unbound"

// keyGap is the space between a command description and its key hint.
const keyGap = 2

// layoutAffordances rebuilds the empty-state command list for the given
// container size. Descriptions are right-aligned ending at the horizontal
// center; rows stack downward starting just below the vertical center.
func (c *Container) layoutAffordances(size geom.Size) {
	cmds := command.EmptyContainerCommands(c.modalEnabled(), c.workspaceOpen())

	originX := size.Width / 2
	originY := size.Height/2 + 2

	c.affordances = c.affordances[:0]
	for i, cmd := range cmds {
		w := lipgloss.Width(cmd.Desc)
		rect := geom.Rect{X: originX - w, Y: originY + i, Width: w, Height: 1}

		key := unboundLabel
		if c.keys != nil {
			if seq, ok := c.keys.SequenceFor(cmd.Name); ok {
				key = seq
			}
		}
		c.affordances = append(c.affordances, affordance{cmd: cmd, rect: rect, key: key})
	}
	if c.hovered >= len(c.affordances) {
		c.hovered = -1
	}
}

// Affordances returns the empty-state commands with their resolved key
// sequences, in display order.
func (c *Container) Affordances() []command.WorkbenchCommand {
	out := make([]command.WorkbenchCommand, len(c.affordances))
	for i, a := range c.affordances {
		out[i] = a.cmd
	}
	return out
}

// hitAffordance returns the index of the affordance containing the
// container-relative point, or -1.
func (c *Container) hitAffordance(p geom.Point) int {
	for i, a := range c.affordances {
		if a.rect.Contains(p) {
			return i
		}
	}
	return -1
}

// handleEmptyMouse tracks hover highlights and dispatches the clicked
// command. Mouse coordinates arrive in screen cells; the container's placed
// origin translates them into container space.
func (c *Container) handleEmptyMouse(msg tea.MouseMsg) tea.Cmd {
	p := geom.Point{X: msg.X - c.origin.X, Y: msg.Y - c.origin.Y}

	switch msg.Action {
	case tea.MouseActionMotion:
		c.hovered = c.hitAffordance(p)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if i := c.hitAffordance(p); i >= 0 {
			name := c.affordances[i].cmd.Name
			return func() tea.Msg {
				return command.WorkbenchMsg{Name: name}
			}
		}
	}
	return nil
}

var (
	emptyDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	emptyHoverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	emptyLogoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
)

// viewEmpty renders the placeholder affordance list instead of delegating to
// children.
func (c *Container) viewEmpty() string {
	w, h := c.size.Width, c.size.Height
	if w <= 0 || h <= 0 {
		return ""
	}

	rows := make([]string, h)

	logoY := h/2 - 2
	if logoY >= 0 && logoY < h {
		rows[logoY] = padLeft("splitdesk", w/2-len("splitdesk")/2, emptyLogoStyle)
	}

	for i, a := range c.affordances {
		if a.rect.Y < 0 || a.rect.Y >= h {
			continue
		}
		style := emptyDimStyle
		if i == c.hovered {
			style = emptyHoverStyle
		}
		line := padLeft(a.cmd.Desc, a.rect.X, style) +
			strings.Repeat(" ", keyGap) +
			emptyDimStyle.Render(a.key)
		rows[a.rect.Y] = line
	}

	return strings.Join(rows, "\n")
}

func padLeft(s string, x int, style lipgloss.Style) string {
	if x < 0 {
		x = 0
	}
	return strings.Repeat(" ", x) + style.Render(s)
}

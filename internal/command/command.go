// Package command defines the discrete commands exchanged between the split
// layout engine and the rest of the application. Inbound commands address a
// pane or container by identity; outbound commands are requests the engine
// emits instead of acting on shared state itself.
package command

// Direction is a directional focus move within a split container.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// SplitMsg asks the container owning Target to split it, inserting a clone
// of the target immediately after it.
type SplitMsg struct {
	Target   string
	Vertical bool // axis hint from the keybinding; the container's own axis wins
}

// CloseMsg asks the container owning Target to close it.
type CloseMsg struct {
	Target string
}

// ExchangeMsg asks the container owning Target to swap it with its next sibling.
type ExchangeMsg struct {
	Target string
}

// MoveMsg asks for a directional focus move from Target. No structural change.
type MoveMsg struct {
	Target    string
	Direction Direction
}

// OpenTerminalMsg asks for a new terminal pane inserted after Target.
type OpenTerminalMsg struct {
	Target string
}

// CloseTerminalMsg closes the terminal pane identified by Target.
type CloseTerminalMsg struct {
	Target string
	TermID string
}

// InitTerminalPanelMsg creates the first terminal when the panel is opened.
// AutoFocus moves focus to the new terminal.
type InitTerminalPanelMsg struct {
	AutoFocus bool
}

// FocusMsg is an outbound request to focus the given pane (or container when
// it has emptied). The engine never asserts focus itself.
type FocusMsg struct {
	Target string
}

// EnsureVisibleMsg is an outbound request to scroll the pane's cursor into view.
type EnsureVisibleMsg struct {
	Target string
}

// RestoreScrollMsg is an outbound request to restore a pane's scroll offset,
// emitted when a split clones the source pane's viewport position.
type RestoreScrollMsg struct {
	Target string
	X      int
	Y      int
}

// LayoutInvalidatedMsg signals that a container's geometry must be recomputed.
type LayoutInvalidatedMsg struct {
	Container string
}

// ChildrenChangedMsg signals that a container's child set changed.
type ChildrenChangedMsg struct {
	Container string
}

// JumpToLocationMsg is emitted by the search results pane when the user
// activates a match.
type JumpToLocationMsg struct {
	Path string
	Line int
	Col  int
}

// WorkbenchMsg dispatches a workbench command by name, e.g. from an
// empty-container affordance click.
type WorkbenchMsg struct {
	Name string
}

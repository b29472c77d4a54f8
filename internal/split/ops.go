package split

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"

	"splitdesk/internal/command"
	"splitdesk/internal/logger"
	"splitdesk/internal/trace"
)

func focusCmd(id string) tea.Cmd {
	return func() tea.Msg { return command.FocusMsg{Target: id} }
}

func ensureVisibleCmd(id string) tea.Cmd {
	return func() tea.Msg { return command.EnsureVisibleMsg{Target: id} }
}

func (c *Container) childrenChanged() tea.Cmd {
	id := c.ID
	return func() tea.Msg { return command.ChildrenChangedMsg{Container: id} }
}

func (c *Container) invalidate() tea.Cmd {
	id := c.ID
	return func() tea.Msg { return command.LayoutInvalidatedMsg{Container: id} }
}

func (c *Container) opAttrs(target string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("container.id", c.ID),
		attribute.String("pane.id", target),
	}
}

// SplitPane clones the target pane's state into a new pane inserted
// immediately after it. The new pane joins as a flexible child and all flex
// weights are re-evened. No-op when the target is gone or its content does
// not support splitting.
func (c *Container) SplitPane(target string) tea.Cmd {
	defer trace.Op("split.pane", c.opAttrs(target)...)()

	idx := c.indexOf(target)
	if idx < 0 {
		return nil
	}
	cl, ok := c.children[idx].Content.(Cloneable)
	if !ok {
		return nil
	}

	newID, content, followUp := cl.Split()
	c.insertFlexChild(idx+1, newID, content, 1.0)
	c.evenFlexChildren()
	c.syncOrder()

	logger.Debug("split pane", "container", c.ID, "target", target, "new", newID)
	return tea.Batch(followUp, c.childrenChanged(), c.invalidate())
}

// AddPane inserts an existing pane at the front of the container and
// requests focus for it. Used when a view opens its first editor.
func (c *Container) AddPane(id string, content Content) tea.Cmd {
	defer trace.Op("split.add", c.opAttrs(id)...)()

	c.insertFlexChild(0, id, content, 1.0)
	c.evenFlexChildren()
	c.syncOrder()

	logger.Debug("add pane", "container", c.ID, "pane", id)
	return tea.Batch(focusCmd(id), c.childrenChanged(), c.invalidate())
}

// ClosePane removes the target pane. Focus moves to the sibling after it, or
// before it when the target was last. Closing the only child empties the
// container; focus then falls back to the registry's last active pane, or to
// the container itself.
func (c *Container) ClosePane(target string) tea.Cmd {
	defer trace.Op("split.close", c.opAttrs(target)...)()

	idx := c.indexOf(target)
	if idx < 0 {
		return nil
	}

	var cmds []tea.Cmd
	if len(c.children) > 1 {
		newIdx := idx + 1
		if idx >= len(c.children)-1 {
			newIdx = idx - 1
		}
		cmds = append(cmds, focusCmd(c.children[newIdx].ID))
	} else {
		cmds = append(cmds, focusCmd(c.fallbackTarget(target)))
	}

	if c.registry != nil {
		c.registry.Remove(target)
	}
	c.removeChild(idx)
	c.evenFlexChildren()
	c.syncOrder()

	logger.Debug("close pane", "container", c.ID, "target", target, "remaining", len(c.children))
	cmds = append(cmds, c.childrenChanged(), c.invalidate())
	return tea.Batch(cmds...)
}

// fallbackTarget picks where focus goes when the container empties.
func (c *Container) fallbackTarget(closing string) string {
	if c.fallback != nil {
		if id, ok := c.fallback.LastActive(); ok && id != closing {
			return id
		}
	}
	return c.ID
}

// ExchangePane swaps the target with its immediate next sibling in the child
// order only (contents stay with their panes) and requests focus for the old
// neighbor. No-op on the last child or a single-child container.
func (c *Container) ExchangePane(target string) tea.Cmd {
	defer trace.Op("split.exchange", c.opAttrs(target)...)()

	if len(c.children) <= 1 {
		return nil
	}
	idx := c.indexOf(target)
	if idx < 0 || idx >= len(c.children)-1 {
		return nil
	}

	neighbor := c.children[idx+1].ID
	c.children[idx], c.children[idx+1] = c.children[idx+1], c.children[idx]

	if c.registry != nil && c.registry.Tracks(target) {
		c.syncOrder()
	}

	logger.Debug("exchange pane", "container", c.ID, "target", target, "neighbor", neighbor)
	return tea.Batch(focusCmd(neighbor), c.invalidate())
}

// MovePane computes a directional focus move from the target. Structure is
// untouched: the result is a focus request plus a scroll-into-view request
// for the new target. Moves past either end, and moves orthogonal to the
// container's axis, are no-ops so a single keybinding can route through
// nested containers of mixed axes.
func (c *Container) MovePane(target string, dir command.Direction) tea.Cmd {
	idx := c.indexOf(target)
	if idx < 0 {
		return nil
	}

	newIdx := idx
	if c.Axis == Vertical {
		switch dir {
		case command.DirLeft:
			if idx == 0 {
				return nil
			}
			newIdx = idx - 1
		case command.DirRight:
			if idx >= len(c.children)-1 {
				return nil
			}
			newIdx = idx + 1
		}
	} else {
		switch dir {
		case command.DirUp:
			if idx == 0 {
				return nil
			}
			newIdx = idx - 1
		case command.DirDown:
			if idx >= len(c.children)-1 {
				return nil
			}
			newIdx = idx + 1
		}
	}
	if newIdx == idx {
		return nil
	}

	id := c.children[newIdx].ID
	return tea.Batch(focusCmd(id), ensureVisibleCmd(id))
}

// SplitTerminal spawns a new terminal session in a pane inserted after the
// target. Requires a terminal host.
func (c *Container) SplitTerminal(target string) tea.Cmd {
	defer trace.Op("split.terminal", c.opAttrs(target)...)()

	if c.terminal == nil {
		return nil
	}
	idx := c.indexOf(target)
	if idx < 0 {
		return nil
	}

	paneID, termID, content, spawn := c.terminal.Spawn()
	c.insertFlexChild(idx+1, paneID, content, 1.0)
	c.evenFlexChildren()
	c.syncOrder()

	logger.Debug("split terminal", "container", c.ID, "pane", paneID, "term", termID)
	return tea.Batch(spawn, c.childrenChanged(), c.invalidate())
}

// CloseTerminal closes the terminal pane identified by target and releases
// its session. Closing the last terminal hides the panel and hands focus back
// to the last active pane.
func (c *Container) CloseTerminal(termID, target string) tea.Cmd {
	defer trace.Op("split.terminal_close", c.opAttrs(target)...)()

	if c.terminal == nil || len(c.children) == 0 {
		return nil
	}

	if len(c.children) == 1 {
		c.terminal.Release(termID)
		c.removeChild(0)
		c.evenFlexChildren()
		c.terminal.HidePanel()

		cmds := []tea.Cmd{c.childrenChanged(), c.invalidate()}
		if c.fallback != nil {
			if id, ok := c.fallback.LastActive(); ok {
				cmds = append(cmds, focusCmd(id))
			}
		}
		logger.Debug("close last terminal", "container", c.ID, "term", termID)
		return tea.Batch(cmds...)
	}

	idx := c.indexOf(target)
	if idx < 0 {
		return nil
	}
	newIdx := idx + 1
	if idx >= len(c.children)-1 {
		newIdx = idx - 1
	}
	next := c.children[newIdx].ID

	c.terminal.Release(termID)
	c.removeChild(idx)
	c.evenFlexChildren()

	logger.Debug("close terminal", "container", c.ID, "term", termID)
	return tea.Batch(focusCmd(next), c.childrenChanged(), c.invalidate())
}

// InitTerminalPanel creates the panel's first terminal when none exist.
func (c *Container) InitTerminalPanel(autoFocus bool) tea.Cmd {
	defer trace.Op("split.terminal_init", c.opAttrs("")...)()

	if c.terminal == nil || c.terminal.Count() > 0 {
		return nil
	}

	paneID, termID, content, spawn := c.terminal.Spawn()
	c.insertFlexChild(0, paneID, content, 1.0)
	c.terminal.Activate(paneID, termID)

	cmds := []tea.Cmd{spawn, c.childrenChanged(), c.invalidate()}
	if autoFocus {
		cmds = append(cmds, focusCmd(paneID))
	}
	logger.Debug("init terminal panel", "container", c.ID, "pane", paneID, "focus", autoFocus)
	return tea.Batch(cmds...)
}

// Dispatch routes an addressed structural command to this container or a
// nested one. Returns handled=false when no container in the subtree owns
// the target, which callers treat as a no-op.
func (c *Container) Dispatch(msg tea.Msg) (tea.Cmd, bool) {
	switch m := msg.(type) {
	case command.SplitMsg:
		if c.Has(m.Target) {
			return c.SplitPane(m.Target), true
		}
	case command.CloseMsg:
		if c.Has(m.Target) {
			return c.ClosePane(m.Target), true
		}
	case command.ExchangeMsg:
		if c.Has(m.Target) {
			return c.ExchangePane(m.Target), true
		}
	case command.MoveMsg:
		if c.Has(m.Target) {
			return c.MovePane(m.Target, m.Direction), true
		}
	case command.OpenTerminalMsg:
		if c.Has(m.Target) {
			return c.SplitTerminal(m.Target), true
		}
	case command.CloseTerminalMsg:
		if c.Has(m.Target) {
			return c.CloseTerminal(m.TermID, m.Target), true
		}
	case command.InitTerminalPanelMsg:
		if c.terminal != nil {
			return c.InitTerminalPanel(m.AutoFocus), true
		}
	default:
		return nil, false
	}

	for _, p := range c.children {
		if nested, ok := p.Content.(*Container); ok {
			if cmd, handled := nested.Dispatch(msg); handled {
				return cmd, true
			}
		}
	}
	return nil, false
}

// Update implements Content. Structural commands are dispatched within the
// subtree; mouse events feed the empty-state affordances; other messages are
// forwarded to children (key input is routed by the workspace to the focused
// pane only, never broadcast here).
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return nil
	case tea.MouseMsg:
		if len(c.children) == 0 {
			return c.handleEmptyMouse(msg)
		}
	}

	if cmd, handled := c.Dispatch(msg); handled {
		return cmd
	}

	var cmds []tea.Cmd
	for _, p := range c.children {
		if cmd := p.Content.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

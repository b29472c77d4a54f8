package split

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitdesk/internal/command"
	"splitdesk/internal/geom"
	"splitdesk/internal/registry"
)

// cloneFill is a splittable fillContent whose clone gets a fixed identity.
type cloneFill struct {
	fillContent
	next string
}

func (c *cloneFill) Split() (string, Content, tea.Cmd) {
	id := c.next
	return id, &cloneFill{next: id + "'"}, func() tea.Msg {
		return command.RestoreScrollMsg{Target: id, X: 3, Y: 7}
	}
}

// collect flattens a possibly batched command into its messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func focusTargets(msgs []tea.Msg) []string {
	var out []string
	for _, m := range msgs {
		if f, ok := m.(command.FocusMsg); ok {
			out = append(out, f.Target)
		}
	}
	return out
}

func hasMsg[T tea.Msg](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}

// editorContainer builds a three-child container whose panes are tracked by
// a fresh registry, the way the editor area is wired.
func editorContainer(t *testing.T) (*Container, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	c := New("main").WithRegistry(reg).WithFocusFallback(reg)
	for _, id := range []string{"e0", "e1", "e2"} {
		reg.Insert(id, &registry.EditorState{Path: id + ".go"})
		c.WithFlexChild(id, &cloneFill{next: id + "+"}, 1)
	}
	reg.SetOrder(c.ChildIDs())
	return c, reg
}

func TestSplitPaneInsertsAfterTarget(t *testing.T) {
	c, reg := editorContainer(t)

	// Give two panes uneven weights to verify re-evening.
	c.Children()[0].Params = 2.5

	msgs := collect(c.SplitPane("e1"))

	require.Equal(t, []string{"e0", "e1", "e1+", "e2"}, c.ChildIDs())
	for _, p := range c.Children() {
		assert.Equal(t, 1.0, p.Params, "flex weights must be re-evened")
	}
	// Registry order mirrors the child order for tracked panes; the clone
	// is not registry-tracked in this test, so it is filtered out.
	assert.Equal(t, []string{"e0", "e1", "e2"}, reg.Order())

	assert.True(t, hasMsg[command.ChildrenChangedMsg](msgs))
	assert.True(t, hasMsg[command.LayoutInvalidatedMsg](msgs))

	var restore *command.RestoreScrollMsg
	for _, m := range msgs {
		if r, ok := m.(command.RestoreScrollMsg); ok {
			restore = &r
		}
	}
	require.NotNil(t, restore, "split must restore the clone's scroll offset")
	assert.Equal(t, "e1+", restore.Target)
}

func TestSplitPaneMissingTargetIsNoop(t *testing.T) {
	c, _ := editorContainer(t)
	assert.Nil(t, c.SplitPane("gone"))
	assert.Equal(t, []string{"e0", "e1", "e2"}, c.ChildIDs())
}

func TestSplitPaneUnsplittableContentIsNoop(t *testing.T) {
	c := New("main").WithFlexChild("raw", &fillContent{}, 1)
	assert.Nil(t, c.SplitPane("raw"))
	assert.Len(t, c.Children(), 1)
}

func TestClosePaneFocusesNextSibling(t *testing.T) {
	c, reg := editorContainer(t)

	msgs := collect(c.ClosePane("e1"))

	assert.Equal(t, []string{"e0", "e2"}, c.ChildIDs())
	assert.Equal(t, []string{"e0", "e2"}, reg.Order())
	assert.False(t, reg.Tracks("e1"), "closed pane state must leave the registry")
	assert.Equal(t, []string{"e2"}, focusTargets(msgs))
}

func TestCloseLastIndexFocusesPreviousSibling(t *testing.T) {
	c, _ := editorContainer(t)

	msgs := collect(c.ClosePane("e2"))

	assert.Equal(t, []string{"e0", "e1"}, c.ChildIDs())
	assert.Equal(t, []string{"e1"}, focusTargets(msgs))
}

func TestCloseOnlyChildEmptiesAndFallsBack(t *testing.T) {
	reg := registry.New()
	reg.Insert("solo", &registry.EditorState{})
	reg.Insert("elsewhere", &registry.EditorState{})
	reg.SetLastActive("elsewhere")

	c := New("main").WithRegistry(reg).WithFocusFallback(reg).
		WithFlexChild("solo", &cloneFill{}, 1)

	msgs := collect(c.ClosePane("solo"))

	assert.Empty(t, c.Children())
	assert.Equal(t, []string{"elsewhere"}, focusTargets(msgs))
}

func TestCloseOnlyChildWithoutFallbackFocusesContainer(t *testing.T) {
	reg := registry.New()
	reg.Insert("solo", &registry.EditorState{})
	c := New("main").WithRegistry(reg).WithFocusFallback(reg).
		WithFlexChild("solo", &cloneFill{}, 1)

	msgs := collect(c.ClosePane("solo"))

	assert.Equal(t, []string{"main"}, focusTargets(msgs))
}

func TestCloseToEmptyThenMeasureYieldsAffordances(t *testing.T) {
	reg := registry.New()
	reg.Insert("solo", &registry.EditorState{})
	c := New("main").WithRegistry(reg).WithFocusFallback(reg).
		WithFlexChild("solo", &cloneFill{}, 1)

	collect(c.ClosePane("solo"))
	require.Empty(t, c.Children())

	size := c.Measure(geom.Constraints{MaxWidth: 80, MaxHeight: 24})
	assert.Equal(t, geom.Size{Width: 80, Height: 24}, size)
	assert.NotEmpty(t, c.Affordances(), "empty container must offer commands, not fail layout")
}

func TestClosePaneMissingTargetIsNoop(t *testing.T) {
	c, reg := editorContainer(t)
	assert.Nil(t, c.ClosePane("gone"))
	assert.Equal(t, []string{"e0", "e1", "e2"}, c.ChildIDs())
	assert.Equal(t, []string{"e0", "e1", "e2"}, reg.Order())
}

func TestExchangeSwapsWithNextSibling(t *testing.T) {
	c, reg := editorContainer(t)

	msgs := collect(c.ExchangePane("e1"))

	assert.Equal(t, []string{"e0", "e2", "e1"}, c.ChildIDs())
	assert.Equal(t, []string{"e0", "e2", "e1"}, reg.Order())
	assert.Equal(t, []string{"e2"}, focusTargets(msgs), "focus goes to the old neighbor")
}

func TestExchangeLastChildIsNoop(t *testing.T) {
	c, _ := editorContainer(t)
	assert.Nil(t, c.ExchangePane("e2"))
	assert.Equal(t, []string{"e0", "e1", "e2"}, c.ChildIDs())
}

func TestExchangeSingleChildIsNoop(t *testing.T) {
	c := New("main").WithFlexChild("only", &fillContent{}, 1)
	assert.Nil(t, c.ExchangePane("only"))
}

func TestExchangeUntrackedPaneSkipsRegistrySync(t *testing.T) {
	reg := registry.New()
	reg.Insert("e0", &registry.EditorState{})
	c := New("main").WithRegistry(reg).
		WithFlexChild("t0", &fillContent{}, 1).
		WithFlexChild("t1", &fillContent{}, 1)
	reg.SetOrder([]string{"e0"})

	collect(c.ExchangePane("t0"))

	assert.Equal(t, []string{"t1", "t0"}, c.ChildIDs())
	assert.Equal(t, []string{"e0"}, reg.Order(), "untracked swap must not disturb registry order")
}

func TestMoveRightFocusesNeighbor(t *testing.T) {
	c, _ := editorContainer(t)

	msgs := collect(c.MovePane("e0", command.DirRight))

	assert.Equal(t, []string{"e1"}, focusTargets(msgs))
	assert.True(t, hasMsg[command.EnsureVisibleMsg](msgs))
	assert.Equal(t, []string{"e0", "e1", "e2"}, c.ChildIDs(), "move never mutates children")
}

func TestMovePastBoundaryIsNoop(t *testing.T) {
	c, _ := editorContainer(t)
	assert.Nil(t, c.MovePane("e0", command.DirLeft))
	assert.Nil(t, c.MovePane("e2", command.DirRight))
}

func TestMoveOrthogonalToAxisIsNoop(t *testing.T) {
	c, _ := editorContainer(t) // vertical axis
	assert.Nil(t, c.MovePane("e1", command.DirUp))
	assert.Nil(t, c.MovePane("e1", command.DirDown))

	h := New("panel").Horizontal().
		WithFlexChild("t0", &fillContent{}, 1).
		WithFlexChild("t1", &fillContent{}, 1)
	assert.Nil(t, h.MovePane("t0", command.DirLeft))
	assert.NotNil(t, h.MovePane("t0", command.DirDown))
}

func TestOrderInvariantAcrossOperationSequence(t *testing.T) {
	c, reg := editorContainer(t)

	ops := []func() tea.Cmd{
		func() tea.Cmd { return c.ExchangePane("e0") },
		func() tea.Cmd { return c.SplitPane("e1") },
		func() tea.Cmd { return c.ClosePane("e0") },
		func() tea.Cmd { return c.ExchangePane("e1") },
		func() tea.Cmd { return c.MovePane("e2", command.DirLeft) },
		func() tea.Cmd { return c.ClosePane("e2") },
	}
	for i, op := range ops {
		op()

		var tracked []string
		for _, id := range c.ChildIDs() {
			if reg.Tracks(id) {
				tracked = append(tracked, id)
			}
		}
		assert.Equal(t, tracked, reg.Order(), "registry order diverged after op %d", i)
	}
}

func TestDispatchRoutesToNestedContainer(t *testing.T) {
	inner := New("inner").Horizontal().
		WithFlexChild("i0", &fillContent{}, 1).
		WithFlexChild("i1", &fillContent{}, 1)
	outer := New("outer").
		WithFlexChild("o0", &fillContent{}, 1).
		WithFlexChild("nested", inner, 1)

	cmd, handled := outer.Dispatch(command.ExchangeMsg{Target: "i0"})
	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"i1", "i0"}, inner.ChildIDs())

	_, handled = outer.Dispatch(command.ExchangeMsg{Target: "missing"})
	assert.False(t, handled, "unknown targets are left for other routers")
}

// fakeTerminalHost counts sessions and records lifecycle calls.
type fakeTerminalHost struct {
	next     int
	open     map[string]bool
	active   string
	hidden   bool
	spawnCmd tea.Cmd
}

func newFakeTerminalHost() *fakeTerminalHost {
	return &fakeTerminalHost{open: make(map[string]bool)}
}

func (h *fakeTerminalHost) Spawn() (string, string, Content, tea.Cmd) {
	h.next++
	termID := "term-" + string(rune('0'+h.next))
	h.open[termID] = true
	return "pane-" + termID, termID, &fillContent{}, h.spawnCmd
}

func (h *fakeTerminalHost) Release(termID string) { delete(h.open, termID) }

func (h *fakeTerminalHost) Activate(paneID, termID string) { h.active = termID }

func (h *fakeTerminalHost) Count() int { return len(h.open) }

func (h *fakeTerminalHost) HidePanel() { h.hidden = true }

func TestInitTerminalPanelSpawnsOnce(t *testing.T) {
	host := newFakeTerminalHost()
	c := New("terminals").Horizontal().WithTerminalHost(host)

	msgs := collect(c.InitTerminalPanel(true))

	require.Len(t, c.Children(), 1)
	assert.Equal(t, "term-1", host.active)
	assert.Equal(t, []string{"pane-term-1"}, focusTargets(msgs))

	// A second init is a no-op while a terminal exists.
	assert.Nil(t, c.InitTerminalPanel(true))
	assert.Len(t, c.Children(), 1)
}

func TestInitTerminalPanelWithoutAutoFocus(t *testing.T) {
	host := newFakeTerminalHost()
	c := New("terminals").Horizontal().WithTerminalHost(host)

	msgs := collect(c.InitTerminalPanel(false))
	assert.Empty(t, focusTargets(msgs))
}

func TestSplitTerminalInsertsAfterTarget(t *testing.T) {
	host := newFakeTerminalHost()
	c := New("terminals").Horizontal().WithTerminalHost(host)
	collect(c.InitTerminalPanel(false))

	collect(c.SplitTerminal("pane-term-1"))

	assert.Equal(t, []string{"pane-term-1", "pane-term-2"}, c.ChildIDs())
	assert.Equal(t, 2, host.Count())
}

func TestCloseTerminalFocusesSibling(t *testing.T) {
	host := newFakeTerminalHost()
	c := New("terminals").Horizontal().WithTerminalHost(host)
	collect(c.InitTerminalPanel(false))
	collect(c.SplitTerminal("pane-term-1"))

	msgs := collect(c.CloseTerminal("term-1", "pane-term-1"))

	assert.Equal(t, []string{"pane-term-2"}, c.ChildIDs())
	assert.Equal(t, []string{"pane-term-2"}, focusTargets(msgs))
	assert.False(t, host.open["term-1"])
}

func TestCloseLastTerminalHidesPanel(t *testing.T) {
	reg := registry.New()
	reg.Insert("editor", &registry.EditorState{})
	reg.SetLastActive("editor")

	host := newFakeTerminalHost()
	c := New("terminals").Horizontal().WithTerminalHost(host).WithFocusFallback(reg)
	collect(c.InitTerminalPanel(false))

	msgs := collect(c.CloseTerminal("term-1", "pane-term-1"))

	assert.Empty(t, c.Children())
	assert.True(t, host.hidden)
	assert.Equal(t, 0, host.Count())
	assert.Equal(t, []string{"editor"}, focusTargets(msgs))
}

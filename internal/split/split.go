// Package split implements the split layout engine: a container owning an
// ordered list of panes along one axis, the flex sizing algorithm that places
// them, and the structural operations (split, close, exchange, directional
// move) that keep the pane order and the pane registry's logical order in
// lockstep.
//
// Containers nest: a pane's content may itself be a Container. The engine is
// driven synchronously from the event loop; operations are total functions
// over the current state and never return errors. A target identity that no
// longer exists makes the operation a silent no-op, because commands can race
// against a just-closed pane during event delivery.
package split

import (
	tea "github.com/charmbracelet/bubbletea"

	"splitdesk/internal/geom"
)

// Axis is the direction children are arranged in.
// Vertical means side-by-side children separated by vertical divider lines;
// Horizontal means stacked children separated by horizontal lines.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// main returns the extent of s along the container's main axis.
func (a Axis) main(s geom.Size) int {
	if a == Vertical {
		return s.Width
	}
	return s.Height
}

// cross returns the extent of s along the perpendicular axis.
func (a Axis) cross(s geom.Size) int {
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

// Content is the contract any pane content must satisfy. Measure must never
// fail: content that cannot honor a constraint clamps and reports the clamped
// size. Place commits a final rectangle and must not cache anything that
// affects future Measure calls.
type Content interface {
	Measure(bc geom.Constraints) geom.Size
	Place(r geom.Rect)
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Cloneable is implemented by leaf content that supports the split operation.
// Split clones the content's relevant state (for an editor: registry state,
// cursor, scroll offset) into a fresh pane and returns its identity together
// with any follow-up command (typically a scroll restoration).
type Cloneable interface {
	Content
	Split() (id string, content Content, cmd tea.Cmd)
}

// Registry is the slice of the pane registry the engine needs: order
// mirroring and state removal for registry-tracked leaf panes.
type Registry interface {
	Tracks(id string) bool
	Remove(id string)
	SetOrder(ids []string)
}

// FocusFallback supplies the focus target used when the last child closes,
// typically the registry's most recently active pane.
type FocusFallback interface {
	LastActive() (string, bool)
}

// KeyTable resolves a workbench command name to its bound key sequence for
// the empty-container affordance list. First match wins.
type KeyTable interface {
	SequenceFor(cmdName string) (string, bool)
}

// Environment exposes the two workspace flags the empty-container affordance
// list depends on. Narrow by design: layout never sees the whole workspace.
type Environment interface {
	WorkspaceOpen() bool
	ModalEnabled() bool
}

// TerminalHost creates and releases terminal sessions on behalf of the
// engine. Spawning is asynchronous: the returned command delivers output and
// readiness back into the event loop.
type TerminalHost interface {
	Spawn() (paneID, termID string, content Content, cmd tea.Cmd)
	Release(termID string)
	Activate(paneID, termID string)
	Count() int
	HidePanel()
}

// Pane is one slot in a Container. Either a leaf content or a nested
// Container, sized Fixed (exact extent in cells) or Flex (weight share of the
// leftover space).
type Pane struct {
	ID      string
	Content Content
	Flex    bool
	Params  float64 // weight when Flex, requested extent in cells otherwise

	// Rect is the last computed rectangle, relative to the container.
	// Derived cache only; never authoritative.
	Rect geom.Rect
}

// Container is the split layout node. The child order is semantically
// meaningful: it is the visual left-to-right / top-to-bottom order and, for
// registry-tracked panes, must equal the registry's logical order.
type Container struct {
	ID         string
	Axis       Axis
	ShowBorder bool

	children []*Pane

	registry Registry
	fallback FocusFallback
	keys     KeyTable
	env      Environment
	terminal TerminalHost

	// size and origin from the last Measure/Place pass, used by the
	// empty-state hit testing and border painting.
	size   geom.Size
	origin geom.Point

	affordances []affordance
	hovered     int
}

// New creates an empty vertical container with borders shown.
func New(id string) *Container {
	return &Container{
		ID:         id,
		Axis:       Vertical,
		ShowBorder: true,
		hovered:    -1,
	}
}

// Horizontal switches the container to the horizontal axis.
func (c *Container) Horizontal() *Container {
	c.Axis = Horizontal
	return c
}

// HideBorder disables divider lines between children.
func (c *Container) HideBorder() *Container {
	c.ShowBorder = false
	return c
}

// WithRegistry attaches the pane registry slice used for order mirroring.
// Leave unset for containers whose panes the registry does not track
// (e.g. the terminal panel).
func (c *Container) WithRegistry(r Registry) *Container {
	c.registry = r
	return c
}

// WithFocusFallback attaches the close-to-empty focus fallback.
func (c *Container) WithFocusFallback(f FocusFallback) *Container {
	c.fallback = f
	return c
}

// WithKeys attaches the keybinding table for empty-state affordances.
func (c *Container) WithKeys(k KeyTable) *Container {
	c.keys = k
	return c
}

// WithEnvironment attaches the workspace flags for empty-state affordances.
func (c *Container) WithEnvironment(e Environment) *Container {
	c.env = e
	return c
}

// WithTerminalHost attaches the terminal session factory.
func (c *Container) WithTerminalHost(h TerminalHost) *Container {
	c.terminal = h
	return c
}

// WithFlexChild appends a flexible child with the given weight.
func (c *Container) WithFlexChild(id string, content Content, weight float64) *Container {
	c.children = append(c.children, &Pane{ID: id, Content: content, Flex: true, Params: weight})
	return c
}

// WithFixedChild appends a fixed child with the given main-axis extent.
func (c *Container) WithFixedChild(id string, content Content, extent int) *Container {
	c.children = append(c.children, &Pane{ID: id, Content: content, Params: float64(extent)})
	return c
}

// Children returns the panes in visual order.
func (c *Container) Children() []*Pane {
	return c.children
}

// ChildIDs returns the child identities in visual order.
func (c *Container) ChildIDs() []string {
	ids := make([]string, len(c.children))
	for i, p := range c.children {
		ids[i] = p.ID
	}
	return ids
}

// Has reports whether the identity is a direct child of this container.
func (c *Container) Has(id string) bool {
	return c.indexOf(id) >= 0
}

// Find resolves an identity to its content anywhere in the subtree.
func (c *Container) Find(id string) (Content, bool) {
	for _, p := range c.children {
		if p.ID == id {
			return p.Content, true
		}
		if nested, ok := p.Content.(*Container); ok {
			if content, found := nested.Find(id); found {
				return content, true
			}
		}
	}
	return nil, false
}

// indexOf resolves an identity to its current index, -1 when absent.
// Identities are resolved on every operation; indices are never cached
// across events.
func (c *Container) indexOf(id string) int {
	for i, p := range c.children {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// insertFlexChild inserts a flexible pane at index.
func (c *Container) insertFlexChild(index int, id string, content Content, weight float64) {
	p := &Pane{ID: id, Content: content, Flex: true, Params: weight}
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = p
}

// removeChild removes the pane at index.
func (c *Container) removeChild(index int) {
	c.children = append(c.children[:index], c.children[index+1:]...)
}

// evenFlexChildren renormalizes all flexible children to weight 1.0.
// Called after every insertion and removal.
func (c *Container) evenFlexChildren() {
	for _, p := range c.children {
		if p.Flex {
			p.Params = 1.0
		}
	}
}

// syncOrder mirrors the child order into the registry's logical order.
func (c *Container) syncOrder() {
	if c.registry == nil {
		return
	}
	c.registry.SetOrder(c.ChildIDs())
}

// workspaceOpen and modalEnabled tolerate a missing environment.
func (c *Container) workspaceOpen() bool {
	return c.env != nil && c.env.WorkspaceOpen()
}

func (c *Container) modalEnabled() bool {
	return c.env != nil && c.env.ModalEnabled()
}

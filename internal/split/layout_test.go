package split

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitdesk/internal/geom"
)

// fillContent fills whatever box it is given. The common case for editors
// and terminals.
type fillContent struct {
	placed geom.Rect
}

func (f *fillContent) Measure(bc geom.Constraints) geom.Size { return bc.Max() }
func (f *fillContent) Place(r geom.Rect)                     { f.placed = r }
func (f *fillContent) Update(tea.Msg) tea.Cmd                { return nil }
func (f *fillContent) View() string                          { return "" }

// rigidContent always reports the same size, whatever the constraints.
// Models content with a minimum it cannot shrink below (e.g. a status line).
type rigidContent struct {
	size   geom.Size
	placed geom.Rect
}

func (r *rigidContent) Measure(geom.Constraints) geom.Size { return r.size }
func (r *rigidContent) Place(rect geom.Rect)               { r.placed = rect }
func (r *rigidContent) Update(tea.Msg) tea.Cmd             { return nil }
func (r *rigidContent) View() string                       { return "" }

func threeFlex() *Container {
	return New("main").
		WithFlexChild("c0", &fillContent{}, 1).
		WithFlexChild("c1", &fillContent{}, 1).
		WithFlexChild("c2", &fillContent{}, 1)
}

func widths(c *Container) []int {
	out := make([]int, len(c.Children()))
	for i, p := range c.Children() {
		out[i] = p.Rect.Width
	}
	return out
}

func xs(c *Container) []int {
	out := make([]int, len(c.Children()))
	for i, p := range c.Children() {
		out[i] = p.Rect.X
	}
	return out
}

func TestFlexConservation(t *testing.T) {
	c := threeFlex()
	size := c.Measure(geom.Constraints{MaxWidth: 300, MaxHeight: 40})

	assert.Equal(t, []int{100, 100, 100}, widths(c))
	assert.Equal(t, []int{0, 100, 200}, xs(c))
	assert.Equal(t, geom.Size{Width: 300, Height: 40}, size)
}

func TestFlexRemainderGoesToLastChild(t *testing.T) {
	c := threeFlex()
	c.Measure(geom.Constraints{MaxWidth: 100, MaxHeight: 10})

	w := widths(c)
	assert.Equal(t, []int{33, 33, 34}, w)
	assert.Equal(t, 100, w[0]+w[1]+w[2], "shares must sum exactly to the available extent")
}

func TestSizingIdempotence(t *testing.T) {
	c := threeFlex()
	bc := geom.Constraints{MaxWidth: 301, MaxHeight: 17}

	first := c.Measure(bc)
	rects1 := make([]geom.Rect, len(c.Children()))
	for i, p := range c.Children() {
		rects1[i] = p.Rect
	}

	second := c.Measure(bc)
	for i, p := range c.Children() {
		assert.Equal(t, rects1[i], p.Rect, "child %d rect changed between identical passes", i)
	}
	assert.Equal(t, first, second)
}

func TestFixedChildReservesExtent(t *testing.T) {
	c := New("main").
		WithFixedChild("side", &rigidContent{size: geom.Size{Width: 30, Height: 5}}, 30).
		WithFlexChild("body", &fillContent{}, 1)

	c.Measure(geom.Constraints{MaxWidth: 100, MaxHeight: 20})

	assert.Equal(t, 30, c.Children()[0].Rect.Width)
	assert.Equal(t, 70, c.Children()[1].Rect.Width)
	assert.Equal(t, 30, c.Children()[1].Rect.X)
}

func TestFixedChildReportedExtentWins(t *testing.T) {
	// Requested 30 but the content only wants 12: placement uses the
	// reported extent, not the request.
	c := New("main").
		WithFixedChild("side", &rigidContent{size: geom.Size{Width: 12, Height: 5}}, 30).
		WithFlexChild("body", &fillContent{}, 1)

	c.Measure(geom.Constraints{MaxWidth: 100, MaxHeight: 20})

	assert.Equal(t, 12, c.Children()[0].Rect.Width)
	assert.Equal(t, 12, c.Children()[1].Rect.X)
	// Flex leftover was computed from the reported extent.
	assert.Equal(t, 88, c.Children()[1].Rect.Width)
}

func TestOverConstrainedFixedSqueezesFlexToZero(t *testing.T) {
	c := New("main").
		WithFixedChild("big", &rigidContent{size: geom.Size{Width: 120, Height: 5}}, 120).
		WithFlexChild("body", &fillContent{}, 1)

	c.Measure(geom.Constraints{MaxWidth: 100, MaxHeight: 20})

	assert.Equal(t, 0, c.Children()[1].Rect.Width, "flex children squeeze to zero, never negative")
}

func TestZeroWeightSumGivesZeroExtents(t *testing.T) {
	c := New("main").
		WithFlexChild("a", &fillContent{}, 0).
		WithFlexChild("b", &fillContent{}, 0)

	c.Measure(geom.Constraints{MaxWidth: 100, MaxHeight: 20})

	assert.Equal(t, []int{0, 0}, widths(c))
}

func TestActualExtentPushesSiblings(t *testing.T) {
	// The rigid child overflows its 100-cell allocation; the next child is
	// pushed right and the container reports the overflowing total.
	c := New("main").
		WithFlexChild("rigid", &rigidContent{size: geom.Size{Width: 150, Height: 10}}, 1).
		WithFlexChild("fill", &fillContent{}, 1).
		WithFlexChild("fill2", &fillContent{}, 1)

	size := c.Measure(geom.Constraints{MaxWidth: 300, MaxHeight: 10})

	assert.Equal(t, []int{0, 150, 250}, xs(c))
	assert.Equal(t, 350, size.Width, "container reports the accumulated actual extent")
}

func TestSplitScenarioReflows(t *testing.T) {
	// Three flexible children at width 300 get 100 each; splitting the
	// second evens four children to 75 each.
	c := threeFlex()
	c.children[1].Content = &cloneFill{next: "c1b"}

	bc := geom.Constraints{MaxWidth: 300, MaxHeight: 40}
	c.Measure(bc)
	assert.Equal(t, []int{100, 100, 100}, widths(c))

	cmd := c.SplitPane("c1")
	require.NotNil(t, cmd)
	require.Len(t, c.Children(), 4)

	c.Measure(bc)
	assert.Equal(t, []int{75, 75, 75, 75}, widths(c))
}

func TestHorizontalAxisStacksChildren(t *testing.T) {
	c := New("panel").Horizontal().
		WithFlexChild("t0", &fillContent{}, 1).
		WithFlexChild("t1", &fillContent{}, 1)

	size := c.Measure(geom.Constraints{MaxWidth: 80, MaxHeight: 21})

	assert.Equal(t, 10, c.Children()[0].Rect.Height)
	assert.Equal(t, 11, c.Children()[1].Rect.Height)
	assert.Equal(t, 10, c.Children()[1].Rect.Y)
	assert.Equal(t, geom.Size{Width: 80, Height: 21}, size)
}

func TestPlaceOffsetsChildren(t *testing.T) {
	left := &fillContent{}
	right := &fillContent{}
	c := New("main").
		WithFlexChild("l", left, 1).
		WithFlexChild("r", right, 1)

	c.Measure(geom.Constraints{MaxWidth: 100, MaxHeight: 20})
	c.Place(geom.Rect{X: 10, Y: 5, Width: 100, Height: 20})

	assert.Equal(t, geom.Rect{X: 10, Y: 5, Width: 50, Height: 20}, left.placed)
	assert.Equal(t, geom.Rect{X: 60, Y: 5, Width: 50, Height: 20}, right.placed)
}

func TestNestedContainerRecursion(t *testing.T) {
	innerLeft := &fillContent{}
	innerRight := &fillContent{}
	inner := New("inner").Horizontal().
		WithFlexChild("il", innerLeft, 1).
		WithFlexChild("ir", innerRight, 1)

	outer := New("outer").
		WithFlexChild("left", &fillContent{}, 1).
		WithFlexChild("nested", inner, 1)

	outer.Measure(geom.Constraints{MaxWidth: 200, MaxHeight: 40})
	outer.Place(geom.Rect{X: 0, Y: 0, Width: 200, Height: 40})

	assert.Equal(t, geom.Rect{X: 100, Y: 0, Width: 100, Height: 20}, innerLeft.placed)
	assert.Equal(t, geom.Rect{X: 100, Y: 20, Width: 100, Height: 20}, innerRight.placed)
}

package split

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"splitdesk/internal/geom"
)

// Measure runs the single-axis flex allocation over the children and caches
// each pane's container-relative rectangle. Children are measured with their
// allocation but placed by their actual measured extent: content that cannot
// shrink below a minimum pushes subsequent children instead of being clipped,
// so the container may report a size larger than its constraints.
//
// The pass is idempotent: identical children and constraints yield identical
// placements.
func (c *Container) Measure(bc geom.Constraints) geom.Size {
	my := bc.Max()
	c.size = my

	if len(c.children) == 0 {
		c.layoutAffordances(my)
		return my
	}

	// Pass 1: fixed children reserve their requested extent; their actual
	// measured extent is what counts for placement.
	nonFlexTotal := 0
	maxCross := 0
	for _, p := range c.children {
		if p.Flex {
			continue
		}
		box := c.mainBox(int(p.Params), my)
		size := p.Content.Measure(geom.Constrain(box))
		nonFlexTotal += c.Axis.main(size)
		if cr := c.Axis.cross(size); cr > maxCross {
			maxCross = cr
		}
		p.Rect = p.Rect.WithSize(size)
	}

	flexSum := 0.0
	flexCount := 0
	for _, p := range c.children {
		if p.Flex {
			flexSum += p.Params
			flexCount++
		}
	}

	// Over-constrained fixed children squeeze flex children to zero,
	// never negative.
	flexTotal := c.Axis.main(my) - nonFlexTotal
	if flexTotal < 0 {
		flexTotal = 0
	}

	// Pass 2: allocate leftover space by weight and place in order by
	// actual extents. The last flexible child absorbs the rounding
	// remainder so the shares sum exactly to the leftover.
	offset := 0
	allocated := 0
	seen := 0
	for _, p := range c.children {
		if p.Flex {
			var alloc int
			seen++
			switch {
			case flexSum == 0:
				alloc = 0
			case seen == flexCount:
				alloc = flexTotal - allocated
			default:
				alloc = int(float64(flexTotal) * p.Params / flexSum)
			}
			allocated += alloc

			box := c.mainBox(alloc, my)
			size := p.Content.Measure(geom.Constrain(box))
			if cr := c.Axis.cross(size); cr > maxCross {
				maxCross = cr
			}
			p.Rect = p.Rect.WithSize(size)
		}
		p.Rect = p.Rect.WithOrigin(c.mainPoint(offset))
		offset += c.Axis.main(p.Rect.Size())
	}

	if c.Axis == Vertical {
		return geom.Size{Width: offset, Height: maxCross}
	}
	return geom.Size{Width: maxCross, Height: offset}
}

// mainBox builds a measurement box with the given main-axis extent and the
// full available cross-axis extent.
func (c *Container) mainBox(main int, avail geom.Size) geom.Size {
	if c.Axis == Vertical {
		return geom.Size{Width: main, Height: avail.Height}
	}
	return geom.Size{Width: avail.Width, Height: main}
}

// mainPoint builds a container-relative origin at the given main-axis offset.
func (c *Container) mainPoint(offset int) geom.Point {
	if c.Axis == Vertical {
		return geom.Point{X: offset}
	}
	return geom.Point{Y: offset}
}

// Place commits the container's absolute rectangle and recursively places
// each child at its cached relative rectangle shifted by the origin.
func (c *Container) Place(r geom.Rect) {
	c.origin = r.Origin()
	c.size = r.Size()
	for _, p := range c.children {
		abs := p.Rect.WithOrigin(p.Rect.Origin().Add(r.Origin()))
		p.Content.Place(abs)
	}
}

// View renders the children in order along the axis. When borders are shown,
// every child after the first yields its leading column (or row) to a divider
// line, mirroring how the layout pass leaves dividers on child boundaries.
func (c *Container) View() string {
	if len(c.children) == 0 {
		return c.viewEmpty()
	}

	parts := make([]string, 0, len(c.children))
	for i, p := range c.children {
		w, h := p.Rect.Width, p.Rect.Height
		if w <= 0 || h <= 0 {
			continue
		}
		view := p.Content.View()
		if c.ShowBorder && i > 0 && len(c.children) > 1 {
			if c.Axis == Vertical {
				divider := strings.TrimSuffix(strings.Repeat("│\n", h), "\n")
				view = lipgloss.JoinHorizontal(lipgloss.Top,
					borderStyle.Render(divider),
					lipgloss.Place(w-1, h, lipgloss.Left, lipgloss.Top, view),
				)
			} else {
				view = lipgloss.JoinVertical(lipgloss.Left,
					borderStyle.Render(strings.Repeat("─", w)),
					lipgloss.Place(w, h-1, lipgloss.Left, lipgloss.Top, view),
				)
			}
		} else {
			view = lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, view)
		}
		parts = append(parts, view)
	}

	if c.Axis == Vertical {
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

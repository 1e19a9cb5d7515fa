// internal/rendering/layout/floats.go

package layout

import (
	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// FloatList tracks the floated boxes placed so far in one block formatting
// context. Block placement asks it for clearance and line building asks it
// for the indentation a float carves out of a line.
type FloatList struct {
	boxes []*LayoutBox
}

func NewFloatList() *FloatList { return &FloatList{} }

// Add records a placed float. Geometry must be final before adding.
func (fl *FloatList) Add(b *LayoutBox) {
	fl.boxes = append(fl.boxes, b)
}

// clearanceAt returns how far a box at y must move down to clear the
// floats matching the given clear value. Zero when nothing blocks it.
func (fl *FloatList) clearanceAt(y float64, clear style.ClearType) float64 {
	if fl == nil || clear == style.ClearNone {
		return 0
	}
	lowest := y
	for _, fb := range fl.boxes {
		ft := fb.Style.Float
		applies := clear == style.ClearBoth ||
			(clear == style.ClearLeft && ft == style.FloatLeft) ||
			(clear == style.ClearRight && ft == style.FloatRight)
		if !applies {
			continue
		}
		if bottom := fb.Dimensions.MarginBox().Bottom(); bottom > lowest {
			lowest = bottom
		}
	}
	return lowest - y
}

// indentationAt reports how much horizontal space floats consume from each
// side of the container at the given y. Both values are zero when no float
// overlaps that line.
func (fl *FloatList) indentationAt(y, containerX, containerWidth float64) (left, right float64) {
	if fl == nil {
		return 0, 0
	}
	leftEdge := containerX
	rightEdge := containerX + containerWidth
	for _, fb := range fl.boxes {
		mb := fb.Dimensions.MarginBox()
		if y < mb.Y || y >= mb.Bottom() {
			continue
		}
		if fb.Style.Float == style.FloatLeft {
			if r := mb.Right(); r > leftEdge {
				leftEdge = r
			}
		} else if mb.X < rightEdge {
			rightEdge = mb.X
		}
	}
	return leftEdge - containerX, containerX + containerWidth - rightEdge
}

// maxExtent returns the lowest margin edge of any float in this context.
// A formatting context root grows its auto height to contain it.
func (fl *FloatList) maxExtent() float64 {
	if fl == nil {
		return 0
	}
	lowest := 0.0
	for _, fb := range fl.boxes {
		if bottom := fb.Dimensions.MarginBox().Bottom(); bottom > lowest {
			lowest = bottom
		}
	}
	return lowest
}

// placeFloat sizes a floated child, finds the highest position where it
// fits beside earlier floats, and anchors it there. The float does not
// advance the flow cursor; it only registers with the formatting context.
func (b *LayoutBox) placeFloat(child *LayoutBox, e *Engine, flow *flowContext) {
	child.layout(e)

	cb := b.Dimensions.Content
	y := flow.y + flow.collapsed()
	y += b.floats.clearanceAt(y, child.Style.Clear)

	// Descend one pixel at a time until the float fits between the
	// established floats, or the line is unobstructed.
	width := child.Dimensions.MarginBox().Width
	var li, ri float64
	for {
		li, ri = b.floats.indentationAt(y, cb.X, cb.Width)
		if li == 0 && ri == 0 {
			break
		}
		if width <= cb.Width-li-ri {
			break
		}
		y++
	}

	d := &child.Dimensions
	var targetX float64
	if child.Style.Float == style.FloatRight {
		targetX = cb.X + cb.Width - ri - d.Margin.Right - d.Border.Right - d.Padding.Right - d.Content.Width
	} else {
		targetX = cb.X + li + d.Margin.Left + d.Border.Left + d.Padding.Left
	}
	targetY := y + d.Margin.Top + d.Border.Top + d.Padding.Top
	child.translate(targetX-d.Content.X, targetY-d.Content.Y)

	b.floats.Add(child)
}

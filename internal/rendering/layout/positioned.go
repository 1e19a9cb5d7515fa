// internal/rendering/layout/positioned.go

package layout

import (
	"math"

	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// layoutOutOfFlow walks the tree after normal flow and places absolutely
// and fixed positioned boxes. Running as a second pass means every
// positioning context already has its final in-flow geometry.
func (b *LayoutBox) layoutOutOfFlow(e *Engine) {
	for _, child := range b.Children {
		if child.Style.IsOutOfFlow() {
			child.layoutPositioned(e)
			continue
		}
		child.layoutOutOfFlow(e)
	}
}

// positioningParent returns the box offsets resolve against: the nearest
// positioned ancestor, or the root. Fixed boxes always anchor to the root,
// whose padding box is the viewport.
func (b *LayoutBox) positioningParent() *LayoutBox {
	if b.Style.Position != style.PositionFixed {
		for p := b.Parent; p != nil; p = p.Parent {
			if p.Node != nil && p.Style.IsPositioned() {
				return p
			}
		}
	}
	return b.Root()
}

// layoutPositioned places one out-of-flow box against the padding box of
// its positioning context. Horizontal constraints are solved first, the
// content is laid out from a scratch origin to learn its height, then the
// vertical constraints close over the result and the subtree moves to its
// final position.
func (b *LayoutBox) layoutPositioned(e *Engine) {
	pcb := b.positioningParent()
	box := pcb.Dimensions.PaddingBox()
	cs := &b.Style
	d := &b.Dimensions

	refW := pcb.Dimensions.Content.Width
	refH := pcb.Dimensions.Content.Height
	refHAuto := (pcb.Style.Height.IsAuto() || pcb.Style.Height.IsNone()) && pcb.Parent != nil

	b.resolvePaddingAndBorders(refW, e)

	offset := func(l style.Length, ref float64, vertical bool) float64 {
		if l.IsAuto() || l.IsNone() {
			return math.NaN()
		}
		if vertical && l.Unit == style.UnitPercent && refHAuto {
			return math.NaN()
		}
		return e.px(l, ref, cs)
	}
	left := offset(cs.Offset.Left, refW, false)
	right := offset(cs.Offset.Right, refW, false)
	top := offset(cs.Offset.Top, refH, true)
	bottom := offset(cs.Offset.Bottom, refH, true)

	width := e.autoPx(cs.Width, refW, cs)
	if !math.IsNaN(width) && cs.BoxSizing == style.BorderBox {
		width = math.Max(0, width-d.Padding.Horizontal()-d.Border.Horizontal())
	}
	height := e.autoPx(cs.Height, refH, cs)
	if cs.Height.Unit == style.UnitPercent && refHAuto {
		height = math.NaN()
	}
	if !math.IsNaN(height) && cs.BoxSizing == style.BorderBox {
		height = math.Max(0, height-d.Padding.Vertical()-d.Border.Vertical())
	}

	ml := e.marginPx(cs.Margin.Left, refW, cs)
	mr := e.marginPx(cs.Margin.Right, refW, cs)
	mt := e.marginPx(cs.Margin.Top, refW, cs)
	mb := e.marginPx(cs.Margin.Bottom, refW, cs)

	left, width, ml, mr = b.solveAbsHorizontal(box.Width, left, width, right, ml, mr, e)
	width = b.clampWidth(width, refW, e)
	d.Content.Width = width
	d.Margin.Left, d.Margin.Right = ml, mr

	// Content flows from a zero origin; coordinates become real when the
	// whole subtree translates below.
	b.floats = NewFloatList()
	d.Content.X = 0
	d.Content.Y = 0
	b.layoutBlockFlow(e)
	if math.IsNaN(height) {
		height = b.contentExtent()
	}
	height = b.clampHeight(height, refH, refHAuto, e)
	d.Content.Height = height

	top, mt, mb = solveAbsVertical(box.Height, top, height, bottom, mt, mb)
	d.Margin.Top, d.Margin.Bottom = mt, mb

	finalX := box.X + left + ml + d.Border.Left + d.Padding.Left
	finalY := box.Y + top + mt + d.Border.Top + d.Padding.Top
	b.translate(finalX-d.Content.X, finalY-d.Content.Y)

	b.layoutOutOfFlow(e)
}

// solveAbsHorizontal resolves left + margins + width + right against the
// available space, with NaN marking the auto unknowns. When both offsets
// are auto the box sits at its static position, the padding box origin.
// An auto width shrinks to fit.
func (b *LayoutBox) solveAbsHorizontal(space, left, width, right, ml, mr float64, e *Engine) (float64, float64, float64, float64) {
	if math.IsNaN(left) && math.IsNaN(right) {
		left = 0 // static position
	}
	if math.IsNaN(width) {
		if math.IsNaN(ml) {
			ml = 0
		}
		if math.IsNaN(mr) {
			mr = 0
		}
		if !math.IsNaN(left) && !math.IsNaN(right) {
			width = math.Max(0, space-left-right-ml-mr)
		} else {
			avail := space - ml - mr
			if !math.IsNaN(left) {
				avail -= left
			} else {
				avail -= right
			}
			width = b.shrinkToFitWidth(e, avail)
		}
	}
	switch {
	case math.IsNaN(left):
		if math.IsNaN(ml) {
			ml = 0
		}
		if math.IsNaN(mr) {
			mr = 0
		}
		left = space - width - right - ml - mr
	case math.IsNaN(right):
		if math.IsNaN(ml) {
			ml = 0
		}
		if math.IsNaN(mr) {
			mr = 0
		}
	default:
		// Offsets and width all fixed: auto margins share the slack, and
		// when nothing is auto the right offset simply gives way.
		free := space - left - width - right
		switch {
		case math.IsNaN(ml) && math.IsNaN(mr):
			ml, mr = free/2, free/2
		case math.IsNaN(ml):
			ml = free - mr
		case math.IsNaN(mr):
			mr = free - ml
		}
	}
	return left, width, ml, mr
}

// solveAbsVertical mirrors the horizontal solver. Height is always known
// by the time this runs, auto having already been filled from the content.
func solveAbsVertical(space, top, height, bottom, mt, mb float64) (float64, float64, float64) {
	switch {
	case math.IsNaN(top) && math.IsNaN(bottom):
		top = 0 // static position
		if math.IsNaN(mt) {
			mt = 0
		}
		if math.IsNaN(mb) {
			mb = 0
		}
	case math.IsNaN(top):
		if math.IsNaN(mt) {
			mt = 0
		}
		if math.IsNaN(mb) {
			mb = 0
		}
		top = space - height - bottom - mt - mb
	case math.IsNaN(bottom):
		if math.IsNaN(mt) {
			mt = 0
		}
		if math.IsNaN(mb) {
			mb = 0
		}
	default:
		free := space - top - height - bottom
		switch {
		case math.IsNaN(mt) && math.IsNaN(mb):
			mt, mb = free/2, free/2
		case math.IsNaN(mt):
			mt = free - mb
		case math.IsNaN(mb):
			mb = free - mt
		}
	}
	return top, mt, mb
}

// applyRelativeOffsets nudges a relatively positioned box from its normal
// flow position without affecting any sibling. Top beats bottom and left
// beats right when both are given. Sticky positioning degrades to
// relative; there is no scroll state to pin against.
func (b *LayoutBox) applyRelativeOffsets(e *Engine) {
	pos := b.Style.Position
	if pos != style.PositionRelative && pos != style.PositionSticky {
		return
	}
	cs := &b.Style
	var cbW, cbH float64
	if b.Parent != nil {
		cbW = b.Parent.Dimensions.Content.Width
		cbH = b.Parent.Dimensions.Content.Height
	}
	set := func(l style.Length) bool { return !l.IsAuto() && !l.IsNone() }

	var dx, dy float64
	switch {
	case set(cs.Offset.Top):
		dy = e.px(cs.Offset.Top, cbH, cs)
	case set(cs.Offset.Bottom):
		dy = -e.px(cs.Offset.Bottom, cbH, cs)
	}
	switch {
	case set(cs.Offset.Left):
		dx = e.px(cs.Offset.Left, cbW, cs)
	case set(cs.Offset.Right):
		dx = -e.px(cs.Offset.Right, cbW, cs)
	}
	b.translate(dx, dy)
}

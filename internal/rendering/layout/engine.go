// internal/rendering/layout/engine.go

// Package layout turns a styled tree into a box tree with resolved
// geometry: block flow with collapsed margins, line boxes with word
// wrapping, floats, and a second pass for out-of-flow boxes.
package layout

import (
	"math"

	"github.com/xkilldash9x/ordinal/internal/rendering/css"
	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// Engine computes layout for one viewport. Engines are cheap and hold no
// per-document state; a caller that renders concurrently gives each
// document its own trees and may share the engine.
type Engine struct {
	viewport     css.Viewport
	rootFontSize float64
}

// NewEngine creates a layout engine. A degenerate viewport falls back to
// the default desktop size.
func NewEngine(viewport css.Viewport) *Engine {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = css.DefaultViewport()
	}
	return &Engine{viewport: viewport, rootFontSize: style.BaseFontSize}
}

// SetRootFontSize overrides the font size rem units resolve against.
func (e *Engine) SetRootFontSize(px float64) {
	if px > 0 {
		e.rootFontSize = px
	}
}

// Viewport returns the viewport geometry resolves against.
func (e *Engine) Viewport() css.Viewport { return e.viewport }

// Layout builds the box tree for a styled tree and computes its geometry.
// The root box takes the viewport as its initial containing block. Returns
// nil when nothing renders (for example a display: none root).
func (e *Engine) Layout(styleRoot *style.StyledNode) *LayoutBox {
	root := e.buildBoxTree(styleRoot, nil)
	if root == nil {
		return nil
	}
	root.Dimensions.Content = Rect{Width: e.viewport.Width, Height: e.viewport.Height}
	root.layout(e)
	root.layoutOutOfFlow(e)
	return root
}

// layout computes the box's geometry in normal flow. Out-of-flow boxes are
// never dispatched here; the positioned pass places them afterwards.
func (b *LayoutBox) layout(e *Engine) {
	if b.establishesBFC() {
		if b.floats == nil {
			b.floats = NewFloatList()
		}
	} else if b.Parent != nil {
		b.floats = b.Parent.floats
	}

	switch b.Type {
	case BlockBox:
		b.layoutBlock(e)
	case AnonymousBox:
		b.layoutAnonymous(e)
	case InlineBox:
		if b.Style.Display == style.DisplayInlineBlock {
			b.layoutBlock(e)
		} else {
			b.layoutInline(e)
		}
	case TextBox:
		b.layoutText()
	}

	b.applyRelativeOffsets(e)
}

// translate shifts the box and its whole subtree. Placement helpers lay
// content out at a tentative origin and move it here, so children never
// end up stranded at stale coordinates.
func (b *LayoutBox) translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	b.Dimensions.Content.X += dx
	b.Dimensions.Content.Y += dy
	for _, c := range b.Children {
		c.translate(dx, dy)
	}
}

// px resolves a length against a reference size using the box's font and
// the engine's root font and viewport.
func (e *Engine) px(l style.Length, reference float64, cs *ComputedStyle) float64 {
	return l.ToPx(reference, cs.FontSize, e.rootFontSize, e.viewport.Width, e.viewport.Height)
}

// autoPx resolves a length, mapping auto and absent values to NaN so the
// constraint solvers can treat them algebraically.
func (e *Engine) autoPx(l style.Length, reference float64, cs *ComputedStyle) float64 {
	if l.IsAuto() || l.IsNone() {
		return math.NaN()
	}
	return e.px(l, reference, cs)
}

// marginPx resolves a margin: auto stays NaN for the solvers, absent or
// unparseable values collapse to zero.
func (e *Engine) marginPx(l style.Length, reference float64, cs *ComputedStyle) float64 {
	if l.IsAuto() {
		return math.NaN()
	}
	if l.IsNone() {
		return 0
	}
	return e.px(l, reference, cs)
}

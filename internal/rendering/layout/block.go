// internal/rendering/layout/block.go

package layout

import (
	"math"

	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// flowContext carries the state of one block flow: the y cursor past the
// last placed border edge, plus the pending adjoining margins. Collapsed
// margins keep the largest positive and most negative values seen and sum
// them, so 20px over 10px yields 20 and -10 against 20 yields 10.
type flowContext struct {
	y      float64
	maxPos float64
	maxNeg float64
}

func newFlowContext(startY float64) *flowContext {
	return &flowContext{y: startY}
}

func (c *flowContext) add(margin float64) {
	if margin >= 0 {
		c.maxPos = math.Max(c.maxPos, margin)
	} else {
		c.maxNeg = math.Min(c.maxNeg, margin)
	}
}

func (c *flowContext) collapsed() float64 { return c.maxPos + c.maxNeg }

func (c *flowContext) reset() {
	c.maxPos, c.maxNeg = 0, 0
}

// layoutBlock lays out a block-level box: solve the horizontal constraints
// top-down, flow the children, then resolve the height bottom-up.
func (b *LayoutBox) layoutBlock(e *Engine) {
	b.solveBlockWidth(e)

	d := &b.Dimensions
	if b.Parent != nil {
		d.Content.X = b.Parent.Dimensions.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	} else {
		// The root's content rect starts at the viewport origin; its own
		// edges push it inward before any child flows.
		d.Content.X += d.Margin.Left + d.Border.Left + d.Padding.Left
		d.Content.Y += d.Margin.Top + d.Border.Top + d.Padding.Top
	}

	// A usable explicit height is applied before the children flow so
	// their percentage heights have something to resolve against. The
	// final height pass recomputes the same value.
	if h, ok := b.explicitHeight(e); ok {
		d.Content.Height = h
	}

	b.layoutBlockFlow(e)
	b.solveBlockHeight(e)
}

// layoutBlockFlow positions the in-flow children vertically, collapsing
// adjoining sibling margins. Floats register with the formatting context
// without advancing the cursor; out-of-flow children are left for the
// positioned pass.
func (b *LayoutBox) layoutBlockFlow(e *Engine) {
	flow := newFlowContext(b.Dimensions.Content.Y)

	for _, child := range b.Children {
		if child.Style.IsOutOfFlow() {
			continue
		}
		if child.Style.IsFloated() {
			b.placeFloat(child, e, flow)
			continue
		}

		// Margins must be known before the child can be placed. The child
		// solves again inside layout; the inputs have not changed so the
		// second pass lands on the same values.
		if child.Type != AnonymousBox {
			child.solveBlockWidth(e)
		}
		marginTop := child.Dimensions.Margin.Top

		// An anonymous wrapper or a new formatting context seals off the
		// pending margins instead of collapsing through.
		if child.Type == AnonymousBox || child.establishesBFC() {
			flow.y += flow.collapsed()
			flow.reset()
		}
		flow.add(marginTop)

		if child.Style.Clear != style.ClearNone && b.floats != nil {
			potential := flow.y + flow.collapsed()
			if clearance := b.floats.clearanceAt(potential, child.Style.Clear); clearance > 0 {
				flow.y = potential + clearance
				flow.reset()
				flow.add(marginTop)
			}
		}

		d := &child.Dimensions
		collapsedTop := flow.collapsed()
		d.Content.Y = flow.y + collapsedTop + d.Border.Top + d.Padding.Top

		child.layout(e)

		flow.y += collapsedTop + d.Border.Top + d.Padding.Top +
			d.Content.Height + d.Padding.Bottom + d.Border.Bottom
		flow.reset()
		flow.add(d.Margin.Bottom)
	}
}

// solveBlockWidth resolves the horizontal constraint
//
//	margin-left + border + padding + width + margin-right = containing width
//
// treating auto values as unknowns: an auto width absorbs the free space,
// two auto margins center the box, and when everything is fixed the right
// margin takes up the slack. Widths are clamped to min/max bounds after
// auto resolution and the margins are re-solved against the clamped value.
func (b *LayoutBox) solveBlockWidth(e *Engine) {
	cs := &b.Style
	d := &b.Dimensions

	if b.Parent == nil {
		ref := d.Content.Width
		b.resolvePaddingAndBorders(ref, e)
		b.resolveMargins(ref, e)
		return
	}

	cbWidth := b.Parent.Dimensions.Content.Width
	b.resolvePaddingAndBorders(cbWidth, e)
	static := d.Padding.Horizontal() + d.Border.Horizontal()

	// Vertical margins never participate in the width equation.
	mt := e.marginPx(cs.Margin.Top, cbWidth, cs)
	if math.IsNaN(mt) {
		mt = 0
	}
	mb := e.marginPx(cs.Margin.Bottom, cbWidth, cs)
	if math.IsNaN(mb) {
		mb = 0
	}
	d.Margin.Top, d.Margin.Bottom = mt, mb

	width := e.autoPx(cs.Width, cbWidth, cs)
	if !math.IsNaN(width) && cs.BoxSizing == style.BorderBox {
		width = math.Max(0, width-static)
	}
	ml := e.marginPx(cs.Margin.Left, cbWidth, cs)
	mr := e.marginPx(cs.Margin.Right, cbWidth, cs)

	avail := cbWidth - static

	if cs.Display == style.DisplayInlineBlock || cs.IsFloated() {
		// Atomic boxes never stretch; auto resolves by shrink-to-fit and
		// auto margins are simply zero.
		if math.IsNaN(ml) {
			ml = 0
		}
		if math.IsNaN(mr) {
			mr = 0
		}
		if math.IsNaN(width) {
			width = b.shrinkToFitWidth(e, avail-ml-mr)
		}
		width = b.clampWidth(width, cbWidth, e)
		d.Content.Width = width
		d.Margin.Left, d.Margin.Right = ml, mr
		return
	}

	if math.IsNaN(width) {
		// Auto width fills the line; auto margins collapse to zero first.
		if math.IsNaN(ml) {
			ml = 0
		}
		if math.IsNaN(mr) {
			mr = 0
		}
		width = math.Max(0, avail-ml-mr)
	}

	width = b.clampWidth(width, cbWidth, e)

	// Final margin pass against the clamped width.
	free := avail - width
	switch {
	case math.IsNaN(ml) && math.IsNaN(mr):
		ml = free / 2
		mr = free / 2
	case math.IsNaN(ml):
		ml = free - mr
	default:
		// Over- or under-constrained: the right margin absorbs the rest.
		mr = free - ml
	}

	d.Content.Width = width
	d.Margin.Left, d.Margin.Right = ml, mr
}

// clampWidth applies min-width and max-width to a resolved content width.
// Min wins over max, and border-box bounds are converted to content terms.
func (b *LayoutBox) clampWidth(width, referenceWidth float64, e *Engine) float64 {
	cs := &b.Style
	static := b.Dimensions.Padding.Horizontal() + b.Dimensions.Border.Horizontal()
	adjust := func(v float64) float64 {
		if cs.BoxSizing == style.BorderBox {
			return math.Max(0, v-static)
		}
		return v
	}
	if !cs.MaxWidth.IsNone() && !cs.MaxWidth.IsAuto() {
		if maxW := adjust(e.px(cs.MaxWidth, referenceWidth, cs)); width > maxW {
			width = maxW
		}
	}
	if !cs.MinWidth.IsNone() && !cs.MinWidth.IsAuto() {
		if minW := adjust(e.px(cs.MinWidth, referenceWidth, cs)); width < minW {
			width = minW
		}
	}
	return math.Max(0, width)
}

// heightReference returns the height percentages resolve against and
// whether that reference is itself auto. The root's reference is the
// viewport, which is always definite.
func (b *LayoutBox) heightReference() (float64, bool) {
	if b.Parent == nil {
		return b.Dimensions.Content.Height, false
	}
	refHeight := b.Parent.Dimensions.Content.Height
	refAuto := (b.Parent.Style.Height.IsAuto() || b.Parent.Style.Height.IsNone()) &&
		b.Parent.Parent != nil
	return refHeight, refAuto
}

// explicitHeight resolves a declared height to a content height, reporting
// false for auto and for percentages of an auto-height container.
func (b *LayoutBox) explicitHeight(e *Engine) (float64, bool) {
	cs := &b.Style
	refHeight, refAuto := b.heightReference()
	if cs.Height.IsAuto() || cs.Height.IsNone() ||
		(cs.Height.Unit == style.UnitPercent && refAuto) {
		return 0, false
	}
	h := e.px(cs.Height, refHeight, cs)
	if cs.BoxSizing == style.BorderBox {
		h = math.Max(0, h-b.Dimensions.Padding.Vertical()-b.Dimensions.Border.Vertical())
	}
	return b.clampHeight(h, refHeight, refAuto, e), true
}

// solveBlockHeight resolves the used height: an explicit height wins unless
// it is a percentage of an auto-height container, otherwise the box grows
// to the margin edge of its lowest in-flow child. Formatting context roots
// also contain their floats.
func (b *LayoutBox) solveBlockHeight(e *Engine) {
	if h, ok := b.explicitHeight(e); ok {
		b.Dimensions.Content.Height = h
		return
	}
	refHeight, refAuto := b.heightReference()
	b.Dimensions.Content.Height = b.clampHeight(b.contentExtent(), refHeight, refAuto, e)
}

// contentExtent measures how far the in-flow children reach below the
// content top. A formatting context root also contains its floats.
func (b *LayoutBox) contentExtent() float64 {
	d := &b.Dimensions
	extent := 0.0
	for _, child := range b.Children {
		if child.Style.IsOutOfFlow() || child.Style.IsFloated() {
			continue
		}
		mb := child.Dimensions.MarginBox()
		if bottom := mb.Bottom() - d.Content.Y; bottom > extent {
			extent = bottom
		}
	}
	if b.establishesBFC() && b.floats != nil {
		if fb := b.floats.maxExtent() - d.Content.Y; fb > extent {
			extent = fb
		}
	}
	return math.Max(0, extent)
}

// clampHeight mirrors clampWidth for the vertical axis. Percentage bounds
// against an auto-height container are ignored.
func (b *LayoutBox) clampHeight(height, refHeight float64, refAuto bool, e *Engine) float64 {
	cs := &b.Style
	static := b.Dimensions.Padding.Vertical() + b.Dimensions.Border.Vertical()
	adjust := func(v float64) float64 {
		if cs.BoxSizing == style.BorderBox {
			return math.Max(0, v-static)
		}
		return v
	}
	usable := func(l style.Length) bool {
		if l.IsNone() || l.IsAuto() {
			return false
		}
		return l.Unit != style.UnitPercent || !refAuto
	}
	if usable(cs.MaxHeight) {
		if maxH := adjust(e.px(cs.MaxHeight, refHeight, cs)); height > maxH {
			height = maxH
		}
	}
	if usable(cs.MinHeight) {
		if minH := adjust(e.px(cs.MinHeight, refHeight, cs)); height < minH {
			height = minH
		}
	}
	return math.Max(0, height)
}

// resolvePaddingAndBorders fills in the padding and border edge widths.
// Percentages resolve against the containing width on every side.
func (b *LayoutBox) resolvePaddingAndBorders(referenceWidth float64, e *Engine) {
	cs := &b.Style
	pad := func(l style.Length) float64 {
		if l.IsAuto() || l.IsNone() {
			return 0
		}
		return math.Max(0, e.px(l, referenceWidth, cs))
	}
	b.Dimensions.Padding = Edges{
		Top:    pad(cs.Padding.Top),
		Right:  pad(cs.Padding.Right),
		Bottom: pad(cs.Padding.Bottom),
		Left:   pad(cs.Padding.Left),
	}
	b.Dimensions.Border = cs.BorderWidth
}

// resolveMargins fills in all four margins, treating auto as zero. Block
// width solving replaces the horizontal pair with the constraint solution.
func (b *LayoutBox) resolveMargins(referenceWidth float64, e *Engine) {
	cs := &b.Style
	m := func(l style.Length) float64 {
		v := e.marginPx(l, referenceWidth, cs)
		if math.IsNaN(v) {
			return 0
		}
		return v
	}
	b.Dimensions.Margin = Edges{
		Top:    m(cs.Margin.Top),
		Right:  m(cs.Margin.Right),
		Bottom: m(cs.Margin.Bottom),
		Left:   m(cs.Margin.Left),
	}
}

// shrinkToFitWidth sizes an atomic box to its content, capped by the space
// available in the containing block.
func (b *LayoutBox) shrinkToFitWidth(e *Engine, available float64) float64 {
	if available < 0 {
		available = 0
	}
	return math.Max(0, math.Min(b.preferredWidth(e), available))
}

// preferredWidth estimates the width the subtree would take without any
// wrapping: inline runs accumulate, block children take the widest line.
func (b *LayoutBox) preferredWidth(e *Engine) float64 {
	if b.Type == TextBox {
		return style.MeasureString(b.Text, b.Style.FontSize)
	}

	cs := &b.Style
	static := 0.0
	pad := func(l style.Length) float64 {
		if l.IsAuto() || l.IsNone() || l.Unit == style.UnitPercent {
			return 0
		}
		return math.Max(0, e.px(l, 0, cs))
	}
	static += pad(cs.Padding.Left) + pad(cs.Padding.Right)
	static += cs.BorderWidth.Left + cs.BorderWidth.Right

	if !cs.Width.IsAuto() && !cs.Width.IsNone() && cs.Width.Unit != style.UnitPercent {
		w := e.px(cs.Width, 0, cs)
		if cs.BoxSizing == style.BorderBox {
			return math.Max(w, static)
		}
		return w + static
	}

	widest, line := 0.0, 0.0
	for _, child := range b.Children {
		if child.Style.IsOutOfFlow() {
			continue
		}
		w := child.preferredWidth(e)
		if child.IsBlockLevel() {
			widest = math.Max(widest, math.Max(line, w))
			line = 0
			continue
		}
		line += w
	}
	return math.Max(widest, line) + static
}

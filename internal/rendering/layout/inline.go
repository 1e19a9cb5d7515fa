// internal/rendering/layout/inline.go

package layout

import (
	"math"
	"strings"

	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// lineState tracks the line box being filled: its left edge and width
// after float indentation, how much is used, and the tallest fragment so
// far.
type lineState struct {
	x      float64
	y      float64
	avail  float64
	width  float64
	height float64
}

// layoutAnonymous lays out an anonymous wrapper: it spans its parent's
// content width and stacks line boxes of inline fragments inside.
func (b *LayoutBox) layoutAnonymous(e *Engine) {
	if b.Parent == nil {
		return
	}
	b.Dimensions.Content.X = b.Parent.Dimensions.Content.X
	b.Dimensions.Content.Width = b.Parent.Dimensions.Content.Width
	b.Dimensions.Content.Height = b.layoutInlineFlow(e)
}

// layoutInlineFlow flows the children into line boxes, wrapping text at
// word boundaries. A text box that does not fit is split into continuation
// fragments that share the source node; the first fragment on a line is
// never broken, so a word wider than the line overflows instead of
// disappearing. Children are rebuilt in order with continuations inserted
// after their originals. Returns the stacked height of the lines.
func (b *LayoutBox) layoutInlineFlow(e *Engine) float64 {
	d := &b.Dimensions
	top := d.Content.Y
	y := top
	cw := d.Content.Width

	rebuilt := make([]*LayoutBox, 0, len(b.Children))
	var line lineState

	openLine := func() {
		left, right := b.floats.indentationAt(y, d.Content.X, cw)
		line = lineState{
			x:     d.Content.X + left,
			y:     y,
			avail: math.Max(0, cw-left-right),
		}
	}
	closeLine := func() {
		if line.width == 0 {
			return // an empty line box contributes no height
		}
		if line.height == 0 {
			line.height = b.Style.LineHeight
		}
		y += line.height
	}
	wrapLine := func() {
		closeLine()
		openLine()
	}
	grow := func(effective float64) {
		if effective > line.height {
			line.height = effective
		}
	}

	openLine()
	for _, child := range b.Children {
		if child.Style.IsOutOfFlow() {
			rebuilt = append(rebuilt, child)
			continue
		}

		if child.Type == TextBox {
			rebuilt = b.flowText(child, &line, wrapLine, grow, rebuilt)
			continue
		}

		// Atomic inline fragment: size it, then slot it into the line.
		child.layout(e)
		mb := child.Dimensions.MarginBox()
		if line.width > 0 && line.width+mb.Width > line.avail {
			wrapLine()
		}
		cd := &child.Dimensions
		dx := line.x + line.width + cd.Margin.Left + cd.Border.Left + cd.Padding.Left - cd.Content.X
		dy := line.y + cd.Margin.Top + cd.Border.Top + cd.Padding.Top - cd.Content.Y
		child.translate(dx, dy)
		line.width += mb.Width
		grow(math.Max(cd.BorderBox().Height, child.Style.LineHeight))
		rebuilt = append(rebuilt, child)
	}
	closeLine()

	b.Children = rebuilt
	return y - top
}

// flowText wraps one text box across line boxes word by word. Fragments
// are placed flush at the current line position; the original box carries
// the first fragment and each continuation is a fresh box on the same DOM
// node.
func (b *LayoutBox) flowText(t *LayoutBox, line *lineState,
	wrapLine func(), grow func(float64), rebuilt []*LayoutBox) []*LayoutBox {

	words := strings.Fields(t.Text)
	if len(words) == 0 {
		return rebuilt
	}
	spaceWidth := style.MeasureString(" ", t.Style.FontSize)

	frag := t
	start, count := 0, 0
	fragWidth := 0.0

	emit := func() {
		if count == 0 {
			return
		}
		frag.Text = strings.Join(words[start:start+count], " ")
		frag.layoutText()
		fd := &frag.Dimensions
		frag.translate(line.x+line.width-fd.Content.X, line.y-fd.Content.Y)
		line.width += fd.Content.Width
		grow(math.Max(fd.Content.Height, frag.Style.LineHeight))
		rebuilt = append(rebuilt, frag)
	}

	for i, word := range words {
		join := style.MeasureString(word, t.Style.FontSize)
		if count > 0 {
			join += spaceWidth
		}
		if line.width+fragWidth+join > line.avail && (line.width > 0 || count > 0) {
			emit()
			wrapLine()
			frag = &LayoutBox{Node: t.Node, Style: t.Style, Type: TextBox, Parent: b}
			start, count, fragWidth = i, 0, 0
			join = style.MeasureString(word, t.Style.FontSize)
		}
		count++
		fragWidth += join
	}
	emit()
	return rebuilt
}

// layoutInline lays out a non-atomic inline element (a span): children run
// in a single unwrapped row and the box shrinks around them. The enclosing
// inline flow decides where the run sits and whether it wraps as a unit.
func (b *LayoutBox) layoutInline(e *Engine) {
	ref := 0.0
	if b.Parent != nil {
		ref = b.Parent.Dimensions.Content.Width
	}
	b.resolvePaddingAndBorders(ref, e)
	b.resolveMargins(ref, e)
	b.layoutInlineRun(e)
}

// layoutInlineRun places the children side by side at the box's current
// origin and sizes the content rect around them.
func (b *LayoutBox) layoutInlineRun(e *Engine) {
	d := &b.Dimensions
	x := d.Content.X
	tallest := 0.0

	for _, child := range b.Children {
		if child.Style.IsOutOfFlow() {
			continue
		}
		child.layout(e)
		cd := &child.Dimensions
		dx := x + cd.Margin.Left + cd.Border.Left + cd.Padding.Left - cd.Content.X
		dy := d.Content.Y + cd.Margin.Top + cd.Border.Top + cd.Padding.Top - cd.Content.Y
		child.translate(dx, dy)
		x += cd.MarginBox().Width
		if h := cd.MarginBox().Height; h > tallest {
			tallest = h
		}
	}

	d.Content.Width = x - d.Content.X
	d.Content.Height = math.Max(b.Style.LineHeight, tallest)
}

// layoutText sizes a text fragment from its measured run and line height.
// Position comes from the line builder.
func (b *LayoutBox) layoutText() {
	b.Dimensions.Content.Width = style.MeasureString(b.Text, b.Style.FontSize)
	b.Dimensions.Content.Height = b.Style.LineHeight
}

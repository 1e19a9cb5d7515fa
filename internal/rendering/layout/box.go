// internal/rendering/layout/box.go
package layout

import (
	"strings"

	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// BoxType classifies a node of the layout tree.
type BoxType int

const (
	// BlockBox stacks vertically in its parent and contains either block
	// boxes or anonymous wrappers, never raw inline content.
	BlockBox BoxType = iota
	// InlineBox flows horizontally inside line boxes.
	InlineBox
	// AnonymousBox is a generated block wrapper around a run of inline
	// content inside a block container.
	AnonymousBox
	// TextBox is a leaf holding a measured text run. Wrapping may split
	// one DOM text node into several TextBox fragments.
	TextBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	case TextBox:
		return "text"
	}
	return "unknown"
}

// LayoutBox is one node of the layout tree. Node is nil for anonymous
// wrappers; Text carries the run a TextBox renders, which for wrapped text
// is a fragment of the DOM node's data.
type LayoutBox struct {
	Node       *dom.Node
	Style      ComputedStyle
	Type       BoxType
	Dimensions Dimensions
	Parent     *LayoutBox
	Children   []*LayoutBox
	Text       string

	floats *FloatList
}

// IsBlockLevel reports whether the box stacks vertically in block flow.
func (b *LayoutBox) IsBlockLevel() bool {
	return b.Type == BlockBox || b.Type == AnonymousBox
}

// Root returns the top of the layout tree.
func (b *LayoutBox) Root() *LayoutBox {
	cur := b
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// establishesBFC reports whether the box starts its own block formatting
// context, giving it a private float list.
func (b *LayoutBox) establishesBFC() bool {
	if b.Parent == nil {
		return true
	}
	if b.Style.IsFloated() || b.Style.IsOutOfFlow() {
		return true
	}
	if b.Style.Display == style.DisplayInlineBlock {
		return true
	}
	if b.Style.OverflowX != style.OverflowVisible || b.Style.OverflowY != style.OverflowVisible {
		return true
	}
	return false
}

// WalkBoxes visits the box and its descendants depth-first, stopping early
// when visit returns false.
func (b *LayoutBox) WalkBoxes(visit func(*LayoutBox) bool) {
	b.walkBoxes(visit)
}

func (b *LayoutBox) walkBoxes(visit func(*LayoutBox) bool) bool {
	if !visit(b) {
		return false
	}
	for _, c := range b.Children {
		if !c.walkBoxes(visit) {
			return false
		}
	}
	return true
}

// CountBoxes returns the number of boxes in the subtree.
func (b *LayoutBox) CountBoxes() int {
	n := 0
	b.WalkBoxes(func(*LayoutBox) bool { n++; return true })
	return n
}

// Tags never rendered even without a user-agent stylesheet.
var unrenderedTags = map[string]bool{
	"head": true, "script": true, "style": true, "title": true,
	"meta": true, "link": true, "base": true,
}

// buildBoxTree converts a styled subtree into layout boxes. display: none
// subtrees, unrendered document machinery, and whitespace-only text produce
// no box. Inline and inline-block displays are promoted to block for the
// root and for floated or out-of-flow boxes, which always behave as block
// containers.
func (e *Engine) buildBoxTree(sn *style.StyledNode, parent *LayoutBox) *LayoutBox {
	if sn == nil || sn.Node == nil {
		return nil
	}
	if sn.Node.Type == dom.ElementNode && unrenderedTags[sn.Node.Tag] {
		return nil
	}

	cs := computeStyle(sn, e.rootFontSize, e.viewport)
	if cs.Display == style.DisplayNone {
		return nil
	}

	if sn.Node.Type == dom.TextNode {
		if strings.TrimSpace(sn.Node.Data) == "" {
			return nil
		}
		return &LayoutBox{Node: sn.Node, Style: cs, Type: TextBox, Parent: parent, Text: sn.Node.Data}
	}

	isRoot := parent == nil
	boxType := boxTypeFor(cs.Display)
	if (isRoot || cs.IsFloated() || cs.IsOutOfFlow()) && boxType == InlineBox {
		boxType = BlockBox
		cs.Display = style.DisplayBlock
	}

	box := &LayoutBox{Node: sn.Node, Style: cs, Type: boxType, Parent: parent}
	for _, child := range sn.Children {
		if childBox := e.buildBoxTree(child, box); childBox != nil {
			box.addChild(childBox)
		}
	}
	return box
}

// boxTypeFor maps a display value to a box type. The table displays have no
// dedicated algorithm and lay out as blocks; list items are blocks with a
// marker this engine does not paint.
func boxTypeFor(d style.DisplayType) BoxType {
	switch d {
	case style.DisplayInline, style.DisplayInlineBlock:
		return InlineBox
	default:
		return BlockBox
	}
}

// isBlockContainer reports whether the box flows its children as blocks.
// Inline-blocks are inline outside but block containers inside.
func (b *LayoutBox) isBlockContainer() bool {
	if b.Type == BlockBox {
		return true
	}
	return b.Type == InlineBox && b.Style.Display == style.DisplayInlineBlock
}

// addChild appends a built child, wrapping runs of inline-level children in
// an anonymous block when the parent is a block container. Consecutive
// inline children share one wrapper; a block child ends the run.
func (b *LayoutBox) addChild(child *LayoutBox) {
	child.Parent = b
	if !b.isBlockContainer() || child.IsBlockLevel() {
		b.Children = append(b.Children, child)
		return
	}

	var wrapper *LayoutBox
	if n := len(b.Children); n > 0 && b.Children[n-1].Type == AnonymousBox {
		wrapper = b.Children[n-1]
	} else {
		wrapper = &LayoutBox{
			Style:  anonymousStyle(&b.Style),
			Type:   AnonymousBox,
			Parent: b,
		}
		b.Children = append(b.Children, wrapper)
	}
	child.Parent = wrapper
	wrapper.Children = append(wrapper.Children, child)
}

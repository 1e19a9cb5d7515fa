// internal/rendering/layout/query.go

package layout

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/ordinal/api/schemas"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
)

// HitTest returns the box whose margin rect contains the point, preferring
// the deepest box and, at equal depth, the one painted last. Returns nil
// when the point misses every box.
func HitTest(root *LayoutBox, x, y float64) *LayoutBox {
	if root == nil {
		return nil
	}
	var best *LayoutBox
	bestDepth := -1
	var walk func(b *LayoutBox, depth int)
	walk = func(b *LayoutBox, depth int) {
		if b.Dimensions.MarginBox().Contains(x, y) && depth >= bestDepth {
			best, bestDepth = b, depth
		}
		for _, child := range b.Children {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return best
}

// GeometryFor finds the first rendered element matching a simple selector
// and reports its box geometry. Elements pruned from the box tree, such as
// display: none subtrees, cannot be found.
func GeometryFor(root *LayoutBox, selector string) (*schemas.BoxGeometry, error) {
	if root == nil {
		return nil, fmt.Errorf("layout tree is empty")
	}
	var found *LayoutBox
	root.WalkBoxes(func(b *LayoutBox) bool {
		if b.Node != nil && b.Node.MatchesSimple(selector) {
			found = b
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("no rendered element matches %q", selector)
	}
	return found.Geometry(), nil
}

// Geometry converts the box's resolved dimensions into the wire shape.
// The top-level rect is the border box, matching what a browser's
// getBoundingClientRect reports.
func (b *LayoutBox) Geometry() *schemas.BoxGeometry {
	border := b.Dimensions.BorderBox()
	return &schemas.BoxGeometry{
		Selector: describeNode(b.Node),
		X:        border.X,
		Y:        border.Y,
		Width:    border.Width,
		Height:   border.Height,
		Content:  rectDTO(b.Dimensions.Content),
		Padding:  rectDTO(b.Dimensions.PaddingBox()),
		Border:   rectDTO(border),
		Margin:   rectDTO(b.Dimensions.MarginBox()),
	}
}

func rectDTO(r Rect) schemas.RectDTO {
	return schemas.RectDTO{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// describeNode renders a compact selector-like description of the node
// that produced a box: tag, #id, then classes. Anonymous boxes have no
// node and describe as empty; text fragments describe as "#text".
func describeNode(n *dom.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case dom.TextNode:
		return "#text"
	case dom.DocumentNode:
		return "#document"
	case dom.ElementNode:
	default:
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Tag)
	if id := n.ID(); id != "" {
		sb.WriteString("#")
		sb.WriteString(id)
	}
	for _, class := range n.ClassList() {
		sb.WriteString(".")
		sb.WriteString(class)
	}
	return sb.String()
}

// internal/rendering/dump.go
package rendering

import (
	"fmt"
	"sort"
	"strings"

	tp "github.com/xlab/treeprint"

	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
	"github.com/xkilldash9x/ordinal/internal/rendering/layout"
)

// DumpDOM renders the document tree as an ASCII tree, one node per line.
func DumpDOM(doc *dom.Node) string {
	if doc == nil {
		return ""
	}
	root := tp.New()
	root.SetValue(domLabel(doc))
	for _, c := range doc.Children {
		addDOMNode(root, c)
	}
	return root.String()
}

func addDOMNode(parent tp.Tree, n *dom.Node) {
	if len(n.Children) == 0 {
		parent.AddNode(domLabel(n))
		return
	}
	branch := parent.AddBranch(domLabel(n))
	for _, c := range n.Children {
		addDOMNode(branch, c)
	}
}

func domLabel(n *dom.Node) string {
	switch n.Type {
	case dom.DocumentNode:
		return "#document"
	case dom.TextNode:
		return fmt.Sprintf("#text %q", truncate(n.Data, 40))
	case dom.CommentNode:
		return fmt.Sprintf("<!--%s-->", truncate(n.Data, 40))
	}

	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	// Attributes print sorted so dumps are stable.
	names := make([]string, 0, len(n.Attributes))
	for name := range n.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, " %s=%q", name, n.Attributes[name])
	}
	sb.WriteByte('>')
	return sb.String()
}

// DumpLayout renders the box tree as an ASCII tree. Each line carries the
// box type, the element it came from, and the border-box rectangle.
func DumpLayout(root *layout.LayoutBox) string {
	if root == nil {
		return ""
	}
	tree := tp.New()
	tree.SetValue(layoutLabel(root))
	for _, c := range root.Children {
		addLayoutBox(tree, c)
	}
	return tree.String()
}

func addLayoutBox(parent tp.Tree, b *layout.LayoutBox) {
	if len(b.Children) == 0 {
		parent.AddNode(layoutLabel(b))
		return
	}
	branch := parent.AddBranch(layoutLabel(b))
	for _, c := range b.Children {
		addLayoutBox(branch, c)
	}
}

func layoutLabel(b *layout.LayoutBox) string {
	geo := b.Geometry()
	label := b.Type.String()
	if geo.Selector != "" {
		label += " " + geo.Selector
	}
	if b.Type == layout.TextBox {
		label += fmt.Sprintf(" %q", truncate(b.Text, 24))
	}
	return fmt.Sprintf("%s (%.4g,%.4g) %.4gx%.4g", label, geo.X, geo.Y, geo.Width, geo.Height)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

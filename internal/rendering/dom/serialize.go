// internal/rendering/dom/serialize.go
package dom

import (
	"sort"
	"strings"
)

const indentStep = "  "

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five characters that are unsafe in HTML text and
// attribute values. It is the inverse of the parser's entity decoding.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Serialize renders the subtree as indented HTML: two spaces per depth,
// attributes sorted by name, void elements self-closed, an element whose
// only child is a text node printed on a single line, and whitespace-only
// text nodes dropped. A document node prints its doctype first.
func (n *Node) Serialize() string {
	var sb strings.Builder
	n.serialize(&sb, 0)
	return sb.String()
}

func (n *Node) serialize(sb *strings.Builder, depth int) {
	indent := strings.Repeat(indentStep, depth)

	switch n.Type {
	case DocumentNode:
		if n.Doctype != "" {
			sb.WriteString("<!DOCTYPE ")
			sb.WriteString(n.Doctype)
			sb.WriteString(">\n")
		}
		for _, c := range n.Children {
			c.serialize(sb, depth)
		}

	case TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		sb.WriteString(indent)
		sb.WriteString(EscapeHTML(n.Data))
		sb.WriteString("\n")

	case CommentNode:
		sb.WriteString(indent)
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->\n")

	case ElementNode:
		sb.WriteString(indent)
		sb.WriteString("<")
		sb.WriteString(n.Tag)
		n.writeAttributes(sb)

		if n.IsVoid() {
			sb.WriteString(" />\n")
			return
		}
		sb.WriteString(">")

		// A lone text child stays on the open tag's line.
		if len(n.Children) == 1 && n.Children[0].Type == TextNode {
			sb.WriteString(EscapeHTML(n.Children[0].Data))
			sb.WriteString("</")
			sb.WriteString(n.Tag)
			sb.WriteString(">\n")
			return
		}

		sb.WriteString("\n")
		for _, c := range n.Children {
			c.serialize(sb, depth+1)
		}
		sb.WriteString(indent)
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteString(">\n")
	}
}

func (n *Node) writeAttributes(sb *strings.Builder) {
	if len(n.Attributes) == 0 {
		return
	}
	names := make([]string, 0, len(n.Attributes))
	for name := range n.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(EscapeHTML(n.Attributes[name]))
		sb.WriteString(`"`)
	}
}

// OuterHTML renders the node and its subtree as compact HTML with no
// indentation or whitespace trimming.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.outerHTML(&sb)
	return sb.String()
}

// InnerHTML renders only the node's children as compact HTML.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.Children {
		c.outerHTML(&sb)
	}
	return sb.String()
}

func (n *Node) outerHTML(sb *strings.Builder) {
	switch n.Type {
	case DocumentNode:
		if n.Doctype != "" {
			sb.WriteString("<!DOCTYPE ")
			sb.WriteString(n.Doctype)
			sb.WriteString(">")
		}
		for _, c := range n.Children {
			c.outerHTML(sb)
		}
	case TextNode:
		sb.WriteString(EscapeHTML(n.Data))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case ElementNode:
		sb.WriteString("<")
		sb.WriteString(n.Tag)
		n.writeAttributes(sb)
		if n.IsVoid() {
			sb.WriteString(" />")
			return
		}
		sb.WriteString(">")
		for _, c := range n.Children {
			c.outerHTML(sb)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteString(">")
	}
}

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixture returns a small document for traversal tests:
//
//	document
//	└── html
//	    ├── head
//	    └── body
//	        ├── div#main
//	        │   ├── "hello "
//	        │   └── span ── "world"
//	        └── <!--note-->
func buildFixture() (*Node, map[string]*Node) {
	doc := NewDocument()
	html := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	div := NewElement("div")
	div.SetAttribute("id", "main")
	span := NewElement("span")
	hello := NewText("hello ")
	world := NewText("world")
	note := NewComment("note")

	doc.AppendChild(html)
	html.AppendChild(head)
	html.AppendChild(body)
	body.AppendChild(div)
	div.AppendChild(hello)
	div.AppendChild(span)
	span.AppendChild(world)
	body.AppendChild(note)

	return doc, map[string]*Node{
		"html": html, "head": head, "body": body,
		"div": div, "span": span, "note": note,
	}
}

func TestAppendChildReparents(t *testing.T) {
	a := NewElement("div")
	b := NewElement("section")
	child := NewElement("p")

	a.AppendChild(child)
	require.Equal(t, a, child.Parent)
	require.Len(t, a.Children, 1)

	// Appending elsewhere must detach from the first parent.
	b.AppendChild(child)
	assert.Equal(t, b, child.Parent)
	assert.Empty(t, a.Children)
	assert.Len(t, b.Children, 1)
}

func TestInsertChildClampsIndex(t *testing.T) {
	parent := NewElement("ul")
	first := NewElement("li")
	second := NewElement("li")
	parent.AppendChild(first)
	parent.AppendChild(second)

	early := NewElement("li")
	parent.InsertChild(-5, early)
	require.Equal(t, early, parent.Children[0])

	late := NewElement("li")
	parent.InsertChild(99, late)
	require.Equal(t, late, parent.Children[len(parent.Children)-1])

	middle := NewElement("li")
	parent.InsertChild(2, middle)
	assert.Equal(t, []*Node{early, first, middle, second, late}, parent.Children)
	for _, c := range parent.Children {
		assert.Equal(t, parent, c.Parent)
	}
}

func TestRemoveAndReplaceChild(t *testing.T) {
	parent := NewElement("div")
	a := NewElement("a")
	b := NewElement("b")
	c := NewElement("c")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)

	removed := parent.RemoveChildAt(1)
	require.Equal(t, b, removed)
	assert.Nil(t, b.Parent)
	assert.Equal(t, []*Node{a, c}, parent.Children)

	assert.Nil(t, parent.RemoveChildAt(10), "out of range returns nil")

	replacement := NewElement("em")
	require.True(t, parent.ReplaceChild(c, replacement))
	assert.Nil(t, c.Parent)
	assert.Equal(t, parent, replacement.Parent)
	assert.Equal(t, []*Node{a, replacement}, parent.Children)

	assert.False(t, parent.ReplaceChild(c, NewElement("i")), "already removed")

	assert.True(t, parent.RemoveChild(a))
	assert.False(t, parent.RemoveChild(a))

	parent.ClearChildren()
	assert.Empty(t, parent.Children)
	assert.Nil(t, replacement.Parent)
}

func TestVoidElementsRefuseChildren(t *testing.T) {
	for tag := range voidElements {
		t.Run(tag, func(t *testing.T) {
			void := NewElement(tag)
			void.AppendChild(NewElement("span"))
			void.InsertChild(0, NewText("nope"))
			assert.Empty(t, void.Children)
		})
	}
}

func TestWalkDepthFirstOrderAndEarlyStop(t *testing.T) {
	doc, nodes := buildFixture()

	var order []string
	doc.WalkDepthFirst(func(n *Node) bool {
		switch n.Type {
		case ElementNode:
			order = append(order, n.Tag)
		case CommentNode:
			order = append(order, "#comment")
		case TextNode:
			order = append(order, "#text")
		case DocumentNode:
			order = append(order, "#document")
		}
		return true
	})
	assert.Equal(t,
		[]string{"#document", "html", "head", "body", "div", "#text", "span", "#text", "#comment"},
		order)

	// The visitor returning false must stop the whole walk, not one branch.
	var seen []*Node
	doc.WalkDepthFirst(func(n *Node) bool {
		seen = append(seen, n)
		return n != nodes["head"]
	})
	assert.Equal(t, nodes["head"], seen[len(seen)-1])
	assert.Len(t, seen, 3)
}

func TestWalkBreadthFirstOrder(t *testing.T) {
	doc, _ := buildFixture()

	var order []string
	doc.WalkBreadthFirst(func(n *Node) bool {
		if n.Type == ElementNode {
			order = append(order, n.Tag)
		}
		return true
	})
	assert.Equal(t, []string{"html", "head", "body", "div", "span"}, order)
}

func TestTextContent(t *testing.T) {
	doc, nodes := buildFixture()
	assert.Equal(t, "hello world", doc.TextContent())
	assert.Equal(t, "hello world", nodes["div"].TextContent())
	assert.Equal(t, "world", nodes["span"].TextContent())
	assert.Equal(t, "", nodes["head"].TextContent())
}

func TestSiblingAccessors(t *testing.T) {
	_, nodes := buildFixture()
	body := nodes["body"]

	require.Equal(t, nodes["div"], body.FirstChild())
	require.Equal(t, nodes["note"], body.LastChild())
	assert.Equal(t, nodes["note"], nodes["div"].NextSibling())
	assert.Equal(t, nodes["div"], nodes["note"].PreviousSibling())
	assert.Nil(t, nodes["div"].PreviousSibling())
	assert.Nil(t, nodes["note"].NextSibling())

	assert.Equal(t, nodes["head"], nodes["body"].PreviousElementSibling())
	assert.Nil(t, nodes["head"].PreviousElementSibling())
}

func TestAttributeHelpers(t *testing.T) {
	el := NewElement("DIV")
	assert.Equal(t, "div", el.Tag, "tag names are lowercased")

	el.SetAttribute("Class", "ad promo")
	el.SetAttribute("ID", "banner")

	v, ok := el.Attribute("class")
	require.True(t, ok)
	assert.Equal(t, "ad promo", v)

	assert.Equal(t, "banner", el.ID())
	assert.Equal(t, []string{"ad", "promo"}, el.ClassList())
	assert.True(t, el.HasClass("ad"))
	assert.True(t, el.HasClass("promo"))
	assert.False(t, el.HasClass("ad promo"))

	el.RemoveAttribute("class")
	assert.False(t, el.HasClass("ad"))
}

func TestDocumentAccessors(t *testing.T) {
	doc, nodes := buildFixture()
	require.Equal(t, nodes["html"], doc.DocumentElement())
	assert.Equal(t, nodes["head"], doc.Head())
	assert.Equal(t, nodes["body"], doc.Body())

	title := NewElement("title")
	title.AppendChild(NewText("  Ordinal  "))
	nodes["head"].AppendChild(title)
	assert.Equal(t, "Ordinal", doc.Title())
}

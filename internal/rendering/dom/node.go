// internal/rendering/dom/node.go
package dom

import "strings"

// NodeType discriminates the four node kinds held in a document tree.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

// String returns a short human-readable name for the node type.
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	}
	return "unknown"
}

// voidElements are the tags that can never contain children. Insertion into
// one of these is refused at the tree level, so the invariant holds even when
// a caller bypasses the parser and mutates the tree directly.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// IsVoidTag reports whether tag names an HTML void element.
func IsVoidTag(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// Node is a single node in the document tree. The struct is a tagged variant:
// Type selects which fields are meaningful. Children are owned by their
// parent; Parent is a plain back-reference and never participates in
// ownership, so the tree stays acyclic for the garbage collector and for
// traversal alike.
type Node struct {
	Type NodeType

	// Tag is the lowercased element name. Element nodes only.
	Tag string
	// Data holds the payload of text and comment nodes.
	Data string
	// Attributes maps lowercased attribute names to values. Element nodes only.
	Attributes map[string]string
	// Doctype is the raw doctype identifier ("html", ...). Document nodes only.
	Doctype string

	Parent   *Node
	Children []*Node
}

// NewDocument returns an empty document node.
func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

// NewElement returns an element node for tag. Tag and attribute names are
// case-insensitive in HTML, so both are stored lowercased.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		Tag:        strings.ToLower(tag),
		Attributes: make(map[string]string),
	}
}

// NewText returns a text node carrying data.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment returns a comment node carrying data.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// IsVoid reports whether the node is a void element.
func (n *Node) IsVoid() bool {
	return n.Type == ElementNode && voidElements[n.Tag]
}

// detach removes child from its current parent, if any, keeping every
// back-reference consistent before the child is adopted elsewhere.
func detach(child *Node) {
	if child == nil || child.Parent == nil {
		return
	}
	child.Parent.RemoveChild(child)
}

// AppendChild adds child as the last child of n. Appending to a void element
// or appending nil is ignored.
func (n *Node) AppendChild(child *Node) {
	if child == nil || n.IsVoid() {
		return
	}
	detach(child)
	child.Parent = n
	n.Children = append(n.Children, child)
}

// InsertChild inserts child at index, clamping the index into [0, len].
// Insertion into a void element is ignored.
func (n *Node) InsertChild(index int, child *Node) {
	if child == nil || n.IsVoid() {
		return
	}
	detach(child)
	if index < 0 {
		index = 0
	}
	if index > len(n.Children) {
		index = len(n.Children)
	}
	child.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// RemoveChildAt detaches and returns the child at index, or nil when the
// index is out of range.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.Children) {
		return nil
	}
	child := n.Children[index]
	n.Children = append(n.Children[:index], n.Children[index+1:]...)
	child.Parent = nil
	return child
}

// RemoveChild detaches child from n, reporting whether it was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.RemoveChildAt(i)
			return true
		}
	}
	return false
}

// ReplaceChild swaps old for replacement in place, reporting whether old was
// found. The replacement is detached from any previous parent first.
func (n *Node) ReplaceChild(old, replacement *Node) bool {
	if replacement == nil {
		return false
	}
	for i, c := range n.Children {
		if c == old {
			detach(replacement)
			replacement.Parent = n
			n.Children[i] = replacement
			old.Parent = nil
			return true
		}
	}
	return false
}

// ClearChildren detaches every child.
func (n *Node) ClearChildren() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// childIndex returns n's position among its siblings, or -1 for a root.
func (n *Node) childIndex() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// PreviousSibling returns the sibling before n, or nil.
func (n *Node) PreviousSibling() *Node {
	i := n.childIndex()
	if i <= 0 {
		return nil
	}
	return n.Parent.Children[i-1]
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node {
	i := n.childIndex()
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// PreviousElementSibling returns the nearest earlier sibling that is an
// element, or nil. Sibling combinators in selector matching skip text and
// comment nodes.
func (n *Node) PreviousElementSibling() *Node {
	for s := n.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		if s.Type == ElementNode {
			return s
		}
	}
	return nil
}

// WalkDepthFirst visits n and its descendants in document (pre-) order.
// The visitor returns false to stop the entire walk.
func (n *Node) WalkDepthFirst(visit func(*Node) bool) {
	n.walkDepthFirst(visit)
}

func (n *Node) walkDepthFirst(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walkDepthFirst(visit) {
			return false
		}
	}
	return true
}

// WalkBreadthFirst visits n and its descendants level by level. The visitor
// returns false to stop the walk.
func (n *Node) WalkBreadthFirst(visit func(*Node) bool) {
	queue := []*Node{n}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if !visit(current) {
			return
		}
		queue = append(queue, current.Children...)
	}
}

// TextContent concatenates every descendant text node in document order.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.WalkDepthFirst(func(node *Node) bool {
		if node.Type == TextNode {
			sb.WriteString(node.Data)
		}
		return true
	})
	return sb.String()
}

// SetAttribute stores value under the lowercased name.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[strings.ToLower(name)] = value
}

// Attribute returns the value stored under name and whether it exists.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.Attributes[strings.ToLower(name)]
	return v, ok
}

// RemoveAttribute deletes name from the attribute map.
func (n *Node) RemoveAttribute(name string) {
	delete(n.Attributes, strings.ToLower(name))
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	v, _ := n.Attribute("id")
	return v
}

// ClassName returns the raw class attribute, or "".
func (n *Node) ClassName() string {
	v, _ := n.Attribute("class")
	return v
}

// ClassList splits the class attribute on whitespace, preserving order.
func (n *Node) ClassList() []string {
	return strings.Fields(n.ClassName())
}

// HasClass reports whether name appears in the element's class list.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.ClassList() {
		if c == name {
			return true
		}
	}
	return false
}

// DocumentElement returns the root <html> element of a document, or the
// first element child when the tree was built without one.
func (n *Node) DocumentElement() *Node {
	for _, c := range n.Children {
		if c.Type == ElementNode {
			if c.Tag == "html" {
				return c
			}
		}
	}
	for _, c := range n.Children {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// Head returns the document's <head> element, or nil.
func (n *Node) Head() *Node {
	root := n.DocumentElement()
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c.Type == ElementNode && c.Tag == "head" {
			return c
		}
	}
	return nil
}

// Body returns the document's <body> element, or nil.
func (n *Node) Body() *Node {
	root := n.DocumentElement()
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c.Type == ElementNode && c.Tag == "body" {
			return c
		}
	}
	return nil
}

// Title returns the trimmed text of the first <title> element in the tree.
func (n *Node) Title() string {
	var title string
	n.WalkDepthFirst(func(node *Node) bool {
		if node.Type == ElementNode && node.Tag == "title" {
			title = strings.TrimSpace(node.TextContent())
			return false
		}
		return true
	})
	return title
}

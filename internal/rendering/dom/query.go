// internal/rendering/dom/query.go
package dom

import "strings"

// MatchesSimple evaluates a single, uncombined selector against the element:
// "*", a type name, "#id", ".class", "[attr]", or "[attr=value]" with an
// optionally quoted value. Combinator-aware matching is deliberately not
// implemented here; the style engine owns that half of selector matching so
// the tree's query API stays free of cascade semantics.
func (n *Node) MatchesSimple(selector string) bool {
	if n.Type != ElementNode {
		return false
	}
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return false
	}
	switch {
	case selector == "*":
		return true
	case strings.HasPrefix(selector, "#"):
		return n.ID() == selector[1:]
	case strings.HasPrefix(selector, "."):
		return n.HasClass(selector[1:])
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		body := selector[1 : len(selector)-1]
		name, value, hasValue := strings.Cut(body, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		got, ok := n.Attribute(name)
		if !ok {
			return false
		}
		if !hasValue {
			return true
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		return got == value
	default:
		return n.Tag == strings.ToLower(selector)
	}
}

// QuerySelector returns the first descendant element matching the simple
// selector, excluding the receiver itself, or nil.
func (n *Node) QuerySelector(selector string) *Node {
	var found *Node
	n.WalkDepthFirst(func(node *Node) bool {
		if node == n {
			return true
		}
		if node.MatchesSimple(selector) {
			found = node
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every descendant element matching the simple
// selector in document order, excluding the receiver itself.
func (n *Node) QuerySelectorAll(selector string) []*Node {
	var matches []*Node
	n.WalkDepthFirst(func(node *Node) bool {
		if node != n && node.MatchesSimple(selector) {
			matches = append(matches, node)
		}
		return true
	})
	return matches
}

// GetElementsByTagName returns every descendant element with the given tag,
// or every element for "*".
func (n *Node) GetElementsByTagName(tag string) []*Node {
	tag = strings.ToLower(tag)
	var matches []*Node
	n.WalkDepthFirst(func(node *Node) bool {
		if node != n && node.Type == ElementNode && (tag == "*" || node.Tag == tag) {
			matches = append(matches, node)
		}
		return true
	})
	return matches
}

// GetElementsByClassName returns every descendant element whose class list
// contains name.
func (n *Node) GetElementsByClassName(name string) []*Node {
	var matches []*Node
	n.WalkDepthFirst(func(node *Node) bool {
		if node != n && node.Type == ElementNode && node.HasClass(name) {
			matches = append(matches, node)
		}
		return true
	})
	return matches
}

// GetElementByID returns the first descendant element with the given id, or
// nil.
func (n *Node) GetElementByID(id string) *Node {
	var found *Node
	n.WalkDepthFirst(func(node *Node) bool {
		if node != n && node.Type == ElementNode && node.ID() == id {
			found = node
			return false
		}
		return true
	})
	return found
}

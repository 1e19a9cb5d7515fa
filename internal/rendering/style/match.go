// internal/rendering/style/match.go
package style

import (
	"strings"

	"github.com/xkilldash9x/ordinal/internal/rendering/css"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
)

// Matches reports whether the element n matches sel, evaluating the part
// list right-to-left: the rightmost compound must match n itself, then each
// combinator walks outward — descendants through ancestors, '>' through the
// parent, '+' through the previous element sibling, '~' through any earlier
// element sibling.
func Matches(n *dom.Node, sel *css.Selector) bool {
	if n == nil || n.Type != dom.ElementNode || len(sel.Parts) == 0 {
		return false
	}
	compounds, combinators := splitCompounds(sel.Parts)
	return matchFrom(n, compounds, combinators, len(compounds)-1)
}

// splitCompounds groups the flat part list into compounds, one slice per
// simple-selector run, with combinators[i] relating compounds[i] (left) to
// compounds[i+1] (right).
func splitCompounds(parts []css.SelectorPart) ([][]css.SelectorPart, []byte) {
	var compounds [][]css.SelectorPart
	var combinators []byte
	var current []css.SelectorPart
	for _, p := range parts {
		if p.Type == css.PartCombinator {
			compounds = append(compounds, current)
			combinators = append(combinators, p.Combinator)
			current = nil
			continue
		}
		current = append(current, p)
	}
	compounds = append(compounds, current)
	return compounds, combinators
}

func matchFrom(n *dom.Node, compounds [][]css.SelectorPart, combinators []byte, idx int) bool {
	if n == nil || n.Type != dom.ElementNode {
		return false
	}
	if !matchesCompound(n, compounds[idx]) {
		return false
	}
	if idx == 0 {
		return true
	}

	switch combinators[idx-1] {
	case ' ':
		for p := n.Parent; p != nil; p = p.Parent {
			if matchFrom(p, compounds, combinators, idx-1) {
				return true
			}
		}
	case '>':
		return matchFrom(n.Parent, compounds, combinators, idx-1)
	case '+':
		return matchFrom(n.PreviousElementSibling(), compounds, combinators, idx-1)
	case '~':
		for s := n.PreviousElementSibling(); s != nil; s = s.PreviousElementSibling() {
			if matchFrom(s, compounds, combinators, idx-1) {
				return true
			}
		}
	}
	return false
}

func matchesCompound(n *dom.Node, parts []css.SelectorPart) bool {
	for i := range parts {
		if !matchesPart(n, &parts[i]) {
			return false
		}
	}
	return len(parts) > 0
}

func matchesPart(n *dom.Node, p *css.SelectorPart) bool {
	switch p.Type {
	case css.PartUniversal:
		return true
	case css.PartTag:
		return n.Tag == p.Value
	case css.PartClass:
		return n.HasClass(p.Value)
	case css.PartID:
		return n.ID() == p.Value
	case css.PartAttribute:
		return matchesAttribute(n, p)
	}
	// Pseudo-classes and pseudo-elements depend on interaction or paint
	// state a static tree does not have; their rules never apply.
	return false
}

func matchesAttribute(n *dom.Node, p *css.SelectorPart) bool {
	actual, found := n.Attribute(p.AttrName)
	if !found {
		return false
	}
	switch p.AttrOperator {
	case "":
		return true
	case "=":
		return actual == p.AttrValue
	case "~=":
		for _, word := range strings.Fields(actual) {
			if word == p.AttrValue {
				return true
			}
		}
		return false
	case "|=":
		return actual == p.AttrValue || strings.HasPrefix(actual, p.AttrValue+"-")
	case "^=":
		return p.AttrValue != "" && strings.HasPrefix(actual, p.AttrValue)
	case "$=":
		return p.AttrValue != "" && strings.HasSuffix(actual, p.AttrValue)
	case "*=":
		return p.AttrValue != "" && strings.Contains(actual, p.AttrValue)
	}
	return false
}

// internal/rendering/css/selector.go
package css

// PartType classifies one step of a selector.
type PartType int

const (
	PartTag PartType = iota
	PartClass
	PartID
	PartAttribute
	PartPseudoClass
	PartPseudoElement
	PartUniversal
	PartCombinator
)

func (p PartType) String() string {
	switch p {
	case PartTag:
		return "tag"
	case PartClass:
		return "class"
	case PartID:
		return "id"
	case PartAttribute:
		return "attribute"
	case PartPseudoClass:
		return "pseudo-class"
	case PartPseudoElement:
		return "pseudo-element"
	case PartUniversal:
		return "universal"
	case PartCombinator:
		return "combinator"
	}
	return "unknown"
}

// SelectorPart is one step in a parsed selector. Compound selectors such as
// div.a#b are consecutive non-combinator parts; a PartCombinator part
// separates compounds and carries the relation in Combinator (' ' descendant,
// '>' child, '+' next sibling, '~' subsequent sibling).
type SelectorPart struct {
	Type  PartType
	Value string

	AttrName     string
	AttrOperator string
	AttrValue    string

	Combinator byte
}

// Selector is an ordered part list with its precomputed specificity and the
// source text it was parsed from.
type Selector struct {
	Parts       []SelectorPart
	Specificity Specificity
	Source      string
}

// Specificity is the 4-tuple deciding cascade priority. Inline is set only
// by the style engine for style="" attributes, never by selector parsing.
type Specificity struct {
	Inline  int
	IDs     int
	Classes int
	Types   int
}

// Weight folds the tuple into one comparable number.
func (s Specificity) Weight() int {
	return s.Inline*1000 + s.IDs*100 + s.Classes*10 + s.Types
}

// Less orders specificities ascending by weight.
func (s Specificity) Less(o Specificity) bool {
	return s.Weight() < o.Weight()
}

// ComputeSpecificity derives the specificity of a part list: ids count 100,
// classes, attributes, and pseudo-classes 10, types and pseudo-elements 1.
func ComputeSpecificity(parts []SelectorPart) Specificity {
	var s Specificity
	for _, p := range parts {
		switch p.Type {
		case PartID:
			s.IDs++
		case PartClass, PartAttribute, PartPseudoClass:
			s.Classes++
		case PartTag, PartPseudoElement:
			s.Types++
		}
	}
	return s
}

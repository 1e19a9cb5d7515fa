package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOne parses src as a single-rule stylesheet and returns its only
// selector.
func parseOne(t *testing.T, src string) Selector {
	t.Helper()
	sheet := Parse(src + " {}")
	require.Empty(t, sheet.Errors)
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Selectors, 1)
	return sheet.Rules[0].Selectors[0]
}

func TestSelectorCompoundParts(t *testing.T) {
	sel := parseOne(t, "div.note#main")
	require.Len(t, sel.Parts, 3)
	assert.Equal(t, SelectorPart{Type: PartTag, Value: "div"}, sel.Parts[0])
	assert.Equal(t, SelectorPart{Type: PartClass, Value: "note"}, sel.Parts[1])
	assert.Equal(t, SelectorPart{Type: PartID, Value: "main"}, sel.Parts[2])
	assert.Equal(t, "div.note#main", sel.Source)
}

func TestSelectorCombinators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		comb byte
	}{
		{"descendant", "div p", ' '},
		{"child", "div > p", '>'},
		{"child unspaced", "div>p", '>'},
		{"adjacent sibling", "div + p", '+'},
		{"general sibling", "div ~ p", '~'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseOne(t, tt.src)
			require.Len(t, sel.Parts, 3)
			assert.Equal(t, PartTag, sel.Parts[0].Type)
			assert.Equal(t, PartCombinator, sel.Parts[1].Type)
			assert.Equal(t, tt.comb, sel.Parts[1].Combinator)
			assert.Equal(t, PartTag, sel.Parts[2].Type)
		})
	}
}

func TestSelectorUniversalAndPseudo(t *testing.T) {
	sel := parseOne(t, "* li:first-child::before")
	require.Len(t, sel.Parts, 5)
	assert.Equal(t, PartUniversal, sel.Parts[0].Type)
	assert.Equal(t, byte(' '), sel.Parts[1].Combinator)
	assert.Equal(t, PartTag, sel.Parts[2].Type)
	assert.Equal(t, SelectorPart{Type: PartPseudoClass, Value: "first-child"}, sel.Parts[3])
	assert.Equal(t, SelectorPart{Type: PartPseudoElement, Value: "before"}, sel.Parts[4])
}

func TestSelectorFunctionalPseudoKeepsArgument(t *testing.T) {
	sel := parseOne(t, "li:nth-child(2n+1)")
	require.Len(t, sel.Parts, 2)
	assert.Equal(t, PartPseudoClass, sel.Parts[1].Type)
	assert.Equal(t, "nth-child(2n+1)", sel.Parts[1].Value)
}

func TestSelectorTagsAreLowercased(t *testing.T) {
	sel := parseOne(t, "DIV > SPAN")
	assert.Equal(t, "div", sel.Parts[0].Value)
	assert.Equal(t, "span", sel.Parts[2].Value)
}

func TestSelectorAttributeOperators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want SelectorPart
	}{
		{"presence", "[disabled]", SelectorPart{Type: PartAttribute, AttrName: "disabled"}},
		{"exact", `[type="text"]`, SelectorPart{Type: PartAttribute, AttrName: "type", AttrOperator: "=", AttrValue: "text"}},
		{"exact unquoted", "[type=text]", SelectorPart{Type: PartAttribute, AttrName: "type", AttrOperator: "=", AttrValue: "text"}},
		{"prefix", `[href^="http"]`, SelectorPart{Type: PartAttribute, AttrName: "href", AttrOperator: "^=", AttrValue: "http"}},
		{"suffix", `[src$=".png"]`, SelectorPart{Type: PartAttribute, AttrName: "src", AttrOperator: "$=", AttrValue: ".png"}},
		{"substring", `[title*="wor"]`, SelectorPart{Type: PartAttribute, AttrName: "title", AttrOperator: "*=", AttrValue: "wor"}},
		{"word", `[class~="tag"]`, SelectorPart{Type: PartAttribute, AttrName: "class", AttrOperator: "~=", AttrValue: "tag"}},
		{"dash prefix", "[lang|=en]", SelectorPart{Type: PartAttribute, AttrName: "lang", AttrOperator: "|=", AttrValue: "en"}},
		{"name lowercased", "[DATA-X=1]", SelectorPart{Type: PartAttribute, AttrName: "data-x", AttrOperator: "=", AttrValue: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseOne(t, tt.src)
			require.Len(t, sel.Parts, 1)
			assert.Equal(t, tt.want, sel.Parts[0])
		})
	}
}

func TestSelectorMalformedDropped(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"leading combinator", "> p {}"},
		{"trailing combinator", "div > {}"},
		{"empty id", "# {}"},
		{"dot without class", ". {}"},
		{"colon without name", ": {}"},
		{"attribute without name", "[=x] {}"},
		{"attribute bad operator", "[a!x] {}"},
		{"attribute unterminated", "[a=x {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := Parse(tt.src)
			assert.Empty(t, sheet.Rules)
			assert.NotEmpty(t, sheet.Errors)
		})
	}
}

// One bad member of a comma group takes only itself out.
func TestSelectorGroupSurvivesBadMember(t *testing.T) {
	sheet := Parse("h1, > p, h2 { margin: 0; }")
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Selectors, 2)
	assert.Equal(t, "h1", sheet.Rules[0].Selectors[0].Source)
	assert.Equal(t, "h2", sheet.Rules[0].Selectors[1].Source)
	assert.NotEmpty(t, sheet.Errors)
}

func TestComputeSpecificity(t *testing.T) {
	tests := []struct {
		src  string
		want Specificity
	}{
		{"div", Specificity{Types: 1}},
		{"*", Specificity{}},
		{".note", Specificity{Classes: 1}},
		{"#main", Specificity{IDs: 1}},
		{"[href]", Specificity{Classes: 1}},
		{"a:hover", Specificity{Classes: 1, Types: 1}},
		{"p::before", Specificity{Types: 2}},
		{"div.note#main", Specificity{IDs: 1, Classes: 1, Types: 1}},
		{"ul li a", Specificity{Types: 3}},
		{"div.a > p.b", Specificity{Classes: 2, Types: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			sel := parseOne(t, tt.src)
			assert.Equal(t, tt.want, sel.Specificity)
		})
	}
}

// A single id outweighs any count of classes below ten, and a single class
// outweighs any count of types below ten.
func TestSpecificityOrdering(t *testing.T) {
	id := parseOne(t, "#main").Specificity
	classes := parseOne(t, ".a.b.c").Specificity
	tag := parseOne(t, "div").Specificity
	chain := parseOne(t, "html body div p a").Specificity

	assert.True(t, classes.Less(id))
	assert.True(t, tag.Less(classes))
	assert.True(t, chain.Less(classes))
	assert.False(t, id.Less(id))

	inline := Specificity{Inline: 1}
	assert.True(t, id.Less(inline))
	assert.Equal(t, 1000, inline.Weight())
	assert.Equal(t, 100, id.Weight())
	assert.Equal(t, 30, classes.Weight())
	assert.Equal(t, 1, tag.Weight())
}

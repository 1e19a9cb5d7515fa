package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/ordinal/internal/rendering/css"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
	"github.com/xkilldash9x/ordinal/internal/rendering/html"
)

// parseSelector compiles a single selector for matching tests.
func parseSelector(t *testing.T, src string) *css.Selector {
	t.Helper()
	sheet := css.Parse(src + " {}")
	require.Empty(t, sheet.Errors)
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Selectors, 1)
	return &sheet.Rules[0].Selectors[0]
}

// parseAndFind parses htmlSrc and returns the element with the given id.
func parseAndFind(t *testing.T, htmlSrc, id string) *dom.Node {
	t.Helper()
	doc, _ := html.Parse(htmlSrc)
	n := doc.GetElementByID(id)
	require.NotNil(t, n, "no element with id %q", id)
	return n
}

func TestMatchesCompound(t *testing.T) {
	n := parseAndFind(t, `<div id="x" class="note urgent" data-kind="alert box">x</div>`, "x")

	tests := []struct {
		selector string
		want     bool
	}{
		{"div", true},
		{"span", false},
		{"*", true},
		{".note", true},
		{".urgent", true},
		{".missing", false},
		{"#x", true},
		{"#y", false},
		{"div.note.urgent", true},
		{"div.note#x", true},
		{"span.note", false},
		{"[data-kind]", true},
		{"[data-missing]", false},
		{`[data-kind~="alert"]`, true},
		{`[data-kind~="aler"]`, false},
		{`[data-kind^="alert"]`, true},
		{`[data-kind$="box"]`, true},
		{`[data-kind*="rt b"]`, true},
		{`[data-kind="alert box"]`, true},
		{`[data-kind="alert"]`, false},
		{"div:hover", false},
		{"div::before", false},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(n, parseSelector(t, tt.selector)))
		})
	}
}

func TestMatchesDashOperator(t *testing.T) {
	n := parseAndFind(t, `<p id="x" lang="en-US">x</p>`, "x")
	assert.True(t, Matches(n, parseSelector(t, "[lang|=en]")))
	assert.True(t, Matches(n, parseSelector(t, "[lang|=en-US]")))
	assert.False(t, Matches(n, parseSelector(t, "[lang|=e]")))
}

// Child selection demands a direct parent; descendant selection accepts any
// ancestor.
func TestMatchesChildVersusDescendant(t *testing.T) {
	src := `
		<div class="a">
			<p id="direct">direct child</p>
			<section><p id="nested">nested</p></section>
		</div>
		<p id="outside">outside</p>`

	direct := parseAndFind(t, src, "direct")
	nested := parseAndFind(t, src, "nested")
	outside := parseAndFind(t, src, "outside")

	child := parseSelector(t, "div.a > p")
	descendant := parseSelector(t, "div.a p")

	assert.True(t, Matches(direct, child))
	assert.False(t, Matches(nested, child))
	assert.False(t, Matches(outside, child))

	assert.True(t, Matches(direct, descendant))
	assert.True(t, Matches(nested, descendant))
	assert.False(t, Matches(outside, descendant))
}

func TestMatchesSiblingCombinators(t *testing.T) {
	src := `
		<div>
			<h2 id="first">heading</h2>
			<p id="second">adjacent</p>
			<p id="third">later</p>
		</div>`

	second := parseAndFind(t, src, "second")
	third := parseAndFind(t, src, "third")

	adjacent := parseSelector(t, "h2 + p")
	assert.True(t, Matches(second, adjacent))
	assert.False(t, Matches(third, adjacent))

	general := parseSelector(t, "h2 ~ p")
	assert.True(t, Matches(second, general))
	assert.True(t, Matches(third, general))

	// Text between siblings must not break element adjacency.
	srcWithText := `<div><h2 id="h">x</h2> filler <p id="p">y</p></div>`
	p := parseAndFind(t, srcWithText, "p")
	assert.True(t, Matches(p, parseSelector(t, "h2 + p")))
}

func TestMatchesLongChain(t *testing.T) {
	src := `
		<div class="a">
			<ul>
				<li>plain</li>
				<li class="hot"><span id="deep">x</span></li>
			</ul>
		</div>`
	deep := parseAndFind(t, src, "deep")

	assert.True(t, Matches(deep, parseSelector(t, "div.a ul > li.hot span")))
	assert.False(t, Matches(deep, parseSelector(t, "div.b ul > li.hot span")))
	assert.False(t, Matches(deep, parseSelector(t, "div.a > span")))
}

func TestMatchesRejectsNonElements(t *testing.T) {
	doc, _ := html.Parse(`<p>text</p>`)
	sel := parseSelector(t, "*")

	assert.False(t, Matches(doc, sel))
	p := doc.QuerySelector("p")
	require.NotNil(t, p)
	require.NotEmpty(t, p.Children)
	assert.False(t, Matches(p.Children[0], sel)) // text node
	assert.True(t, Matches(p, sel))
}

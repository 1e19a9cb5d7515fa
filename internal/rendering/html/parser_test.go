package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
)

// mustParse parses and fails the test on any diagnostic, for inputs that are
// supposed to be clean.
func mustParse(t *testing.T, input string) *dom.Node {
	t.Helper()
	doc, errs := Parse(input)
	require.Empty(t, errs, "unexpected parse diagnostics")
	require.NotNil(t, doc)
	return doc
}

func tagsOf(nodes []*dom.Node) []string {
	var tags []string
	for _, n := range nodes {
		tags = append(tags, n.Tag)
	}
	return tags
}

func TestParseExplicitDocument(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="a"><p>Hello</p></div></body></html>`)

	html := doc.DocumentElement()
	require.NotNil(t, html)
	assert.Equal(t, []string{"head", "body"}, tagsOf(html.Children))

	div := doc.QuerySelector("div")
	require.NotNil(t, div)
	assert.Equal(t, "a", div.ClassName())
	assert.Equal(t, doc.Body(), div.Parent)

	p := doc.QuerySelector("p")
	require.NotNil(t, p)
	assert.Equal(t, div, p.Parent)
	assert.Equal(t, "Hello", p.TextContent())
}

func TestParseSynthesizesScaffolding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"lone paragraph",
			`<p>Hello</p>`,
			`<html><head></head><body><p>Hello</p></body></html>`,
		},
		{
			"bare text",
			`Hello`,
			`<html><head></head><body>Hello</body></html>`,
		},
		{
			"explicit body without head",
			`<body><p>x</p></body>`,
			`<html><head></head><body><p>x</p></body></html>`,
		},
		{
			"head content before body content",
			`<title>T</title><p>x</p>`,
			`<html><head><title>T</title></head><body><p>x</p></body></html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			assert.Equal(t, tt.want, doc.OuterHTML())
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc, errs := Parse("")
	assert.Empty(t, errs)
	assert.Empty(t, doc.Children)
}

func TestParseHeadRouting(t *testing.T) {
	doc := mustParse(t, `<title>The Title</title><meta charset="utf-8"><link rel="stylesheet" href="a.css"><p>body text</p>`)

	head := doc.Head()
	require.NotNil(t, head)
	assert.Equal(t, []string{"title", "meta", "link"}, tagsOf(head.Children))
	assert.Equal(t, "The Title", doc.Title())

	body := doc.Body()
	require.NotNil(t, body)
	assert.Equal(t, []string{"p"}, tagsOf(body.Children))
}

// A second <li> ends the first, so both end up as siblings under the list.
func TestParseImpliedListItemEnd(t *testing.T) {
	doc := mustParse(t, `<ul><li>One<li>Two</ul>`)

	ul := doc.QuerySelector("ul")
	require.NotNil(t, ul)
	require.Equal(t, []string{"li", "li"}, tagsOf(ul.Children))
	assert.Equal(t, "One", ul.Children[0].TextContent())
	assert.Equal(t, "Two", ul.Children[1].TextContent())
}

func TestParseImpliedEndTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		selector string
		want     []string
	}{
		{"paragraphs", `<div><p>a<p>b</div>`, "div", []string{"p", "p"}},
		{"definition terms", `<dl><dt>t<dd>d</dl>`, "dl", []string{"dt", "dd"}},
		{"table cells", `<table><tr><td>1<td>2</tr></table>`, "tr", []string{"td", "td"}},
		{"options", `<select><option>x<option>y</select>`, "select", []string{"option", "option"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			parent := doc.QuerySelector(tt.selector)
			require.NotNil(t, parent)
			assert.Equal(t, tt.want, tagsOf(parent.Children))
		})
	}
}

// Void elements never take children; content after them becomes a sibling.
func TestParseVoidElements(t *testing.T) {
	doc := mustParse(t, `<img src="x"><span>after</span>`)

	body := doc.Body()
	require.NotNil(t, body)
	require.Equal(t, []string{"img", "span"}, tagsOf(body.Children))
	assert.Empty(t, body.Children[0].Children)

	doc = mustParse(t, `<p>line one<br>line two</p>`)
	p := doc.QuerySelector("p")
	require.NotNil(t, p)
	require.Len(t, p.Children, 3)
	assert.Equal(t, "br", p.Children[1].Tag)
	assert.Empty(t, p.Children[1].Children)
}

// Closing a block that still has open formatting elements reopens them, so
// the trailing content keeps its styling.
func TestParseFormattingReopen(t *testing.T) {
	doc := mustParse(t, `<p><b>one<i>two</b>three</i></p>`)

	p := doc.QuerySelector("p")
	require.NotNil(t, p)
	require.Equal(t, []string{"b", "i"}, tagsOf(p.Children))

	b := p.Children[0]
	require.Len(t, b.Children, 2)
	assert.Equal(t, "one", b.Children[0].Data)
	assert.Equal(t, "i", b.Children[1].Tag)
	assert.Equal(t, "two", b.Children[1].TextContent())

	reopened := p.Children[1]
	assert.Equal(t, "three", reopened.TextContent())
}

func TestParseFormattingReopenKeepsAttributes(t *testing.T) {
	doc := mustParse(t, `<div><a href="x.html">inside<p>still linked</div></a>`)

	links := doc.QuerySelectorAll("a")
	require.Len(t, links, 2)
	for _, a := range links {
		v, ok := a.Attribute("href")
		assert.True(t, ok)
		assert.Equal(t, "x.html", v)
	}
}

func TestParseUnmatchedEndTagIgnored(t *testing.T) {
	doc, errs := Parse(`<div>x</span></div>`)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unmatched end tag </span>")

	div := doc.QuerySelector("div")
	require.NotNil(t, div)
	assert.Equal(t, "x", div.TextContent())
	assert.Equal(t, doc.Body(), div.Parent)
}

func TestParseUnclosedTagsReported(t *testing.T) {
	doc, errs := Parse(`<div><span>x`)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "unclosed tag at end of input: <span>")
	assert.Contains(t, errs[1], "unclosed tag at end of input: <div>")

	// The tree is still complete.
	span := doc.QuerySelector("span")
	require.NotNil(t, span)
	assert.Equal(t, "x", span.TextContent())
}

func TestParseDuplicateStructuralTags(t *testing.T) {
	doc, errs := Parse(`<html><head></head><head><title>T</title></head><body>x<body>y</body></html>`)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "duplicate <head>")
	assert.Contains(t, errs[1], "duplicate <body>")

	// Head content after the ignored duplicate still reaches the real head.
	assert.Equal(t, "T", doc.Title())
	assert.Equal(t, "xy", doc.Body().TextContent())
}

func TestParseBodyReopensForTrailingContent(t *testing.T) {
	doc := mustParse(t, `<body><p>a</p></body><p>b</p>`)

	body := doc.Body()
	require.NotNil(t, body)
	assert.Equal(t, []string{"p", "p"}, tagsOf(body.Children))
}

func TestParseDoctype(t *testing.T) {
	doc := mustParse(t, `<!DOCTYPE html><html><body>x</body></html>`)
	assert.Equal(t, "html", doc.Doctype)
	assert.True(t, strings.HasPrefix(doc.Serialize(), "<!DOCTYPE html>\n"))
}

func TestParseComments(t *testing.T) {
	doc := mustParse(t, `<div><!-- note --></div>`)
	div := doc.QuerySelector("div")
	require.NotNil(t, div)
	require.Len(t, div.Children, 1)
	assert.Equal(t, dom.CommentNode, div.Children[0].Type)
	assert.Equal(t, " note ", div.Children[0].Data)

	// A comment before any element hangs off the document itself.
	doc = mustParse(t, `<!-- lead --><p>x</p>`)
	require.NotEmpty(t, doc.Children)
	assert.Equal(t, dom.CommentNode, doc.Children[0].Type)
}

func TestParseDecodesEntities(t *testing.T) {
	doc := mustParse(t, `<p title="a &amp; b">1 &lt; 2</p>`)

	p := doc.QuerySelector("p")
	require.NotNil(t, p)
	title, _ := p.Attribute("title")
	assert.Equal(t, "a & b", title)
	assert.Equal(t, "1 < 2", p.TextContent())
}

func TestParseDropsStructuralWhitespace(t *testing.T) {
	doc := mustParse(t, "<html>\n  <head>\n  </head>\n  <body>\n    <p>x</p>\n  </body>\n</html>")

	html := doc.DocumentElement()
	require.NotNil(t, html)
	assert.Equal(t, []string{"head", "body"}, tagsOf(html.Children))
	assert.Empty(t, doc.Head().Children)
}

// Serializing a parsed tree and parsing it again must reach a fixed point,
// with the text content intact.
func TestParseSerializeRoundTrip(t *testing.T) {
	inputs := []string{
		`<html><body><div class="a"><p>Hello</p></div></body></html>`,
		`<ul><li>One<li>Two</ul>`,
		`<p title="a &amp; b">1 &lt; 2 &amp;&amp; 3 &gt; 2</p>`,
		`<img src="x"><span>after</span>`,
		`<div><!-- note --><b>bold</b> plain</div>`,
		`<!DOCTYPE html><title>T</title><p>body</p>`,
	}
	for _, input := range inputs {
		first, _ := Parse(input)
		rendered := first.OuterHTML()

		second, errs := Parse(rendered)
		assert.Empty(t, errs, "reparse of %q", rendered)
		assert.Equal(t, rendered, second.OuterHTML())
		assert.Equal(t, first.TextContent(), second.TextContent())
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		`<html><body><p>Hello</p></body></html>`,
		`<ul><li>a<li>b</ul>`,
		`<div class="x" id='y' data-z=1>`,
		`<!DOCTYPE html><!-- c --><b><i>x</b></i>`,
		`<img src="x"/><br>&amp;&#65;&#x41;&bogus;`,
		`</p>text</div><`,
		`<p title="a &amp; b>unterminated`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		doc, _ := Parse(input)
		if doc == nil {
			t.Fatal("nil document")
		}
		// Serialization must hold for arbitrary recovered trees too.
		_ = doc.Serialize()
		_ = doc.OuterHTML()
	})
}

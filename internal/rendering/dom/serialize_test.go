package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSerializeFormat(t *testing.T) {
	doc := NewDocument()
	doc.Doctype = "html"
	html := NewElement("html")
	body := NewElement("body")
	div := NewElement("div")
	div.SetAttribute("class", "box")
	div.SetAttribute("id", "a")
	p := NewElement("p")
	p.AppendChild(NewText("Hello"))
	img := NewElement("img")
	img.SetAttribute("src", "x.png")

	doc.AppendChild(html)
	html.AppendChild(body)
	body.AppendChild(div)
	div.AppendChild(p)
	div.AppendChild(img)
	div.AppendChild(NewComment("end"))

	expected := "<!DOCTYPE html>\n" +
		"<html>\n" +
		"  <body>\n" +
		"    <div class=\"box\" id=\"a\">\n" +
		"      <p>Hello</p>\n" +
		"      <img src=\"x.png\" />\n" +
		"      <!--end-->\n" +
		"    </div>\n" +
		"  </body>\n" +
		"</html>\n"

	if diff := cmp.Diff(expected, doc.Serialize()); diff != "" {
		t.Errorf("serialized output mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeSkipsWhitespaceOnlyText(t *testing.T) {
	div := NewElement("div")
	div.AppendChild(NewText("\n   \t"))
	div.AppendChild(NewElement("hr"))

	expected := "<div>\n  <hr />\n</div>\n"
	assert.Equal(t, expected, div.Serialize())
}

func TestSerializeEscapesTextAndAttributes(t *testing.T) {
	div := NewElement("div")
	div.SetAttribute("title", `say "hi" & <bye>`)
	div.AppendChild(NewText("1 < 2 & 3 > 2"))

	out := div.Serialize()
	assert.Contains(t, out, `title="say &quot;hi&quot; &amp; &lt;bye&gt;"`)
	assert.Contains(t, out, "1 &lt; 2 &amp; 3 &gt; 2")
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{`a&b`, "a&amp;b"},
		{"<script>", "&lt;script&gt;"},
		{`"quoted"`, "&quot;quoted&quot;"},
		{"it's", "it&#39;s"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, EscapeHTML(tt.in))
	}
}

func TestInnerAndOuterHTML(t *testing.T) {
	div := NewElement("div")
	div.SetAttribute("class", "a")
	span := NewElement("span")
	span.AppendChild(NewText("x & y"))
	div.AppendChild(span)
	div.AppendChild(NewElement("br"))

	assert.Equal(t, `<span>x &amp; y</span><br />`, div.InnerHTML())
	assert.Equal(t, `<div class="a"><span>x &amp; y</span><br /></div>`, div.OuterHTML())

	doc := NewDocument()
	doc.Doctype = "html"
	doc.AppendChild(div)
	assert.Equal(t, `<!DOCTYPE html><div class="a"><span>x &amp; y</span><br /></div>`, doc.OuterHTML())
}

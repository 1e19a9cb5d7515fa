// internal/rendering/html/parser.go
package html

import (
	"fmt"

	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
)

// headContentTags belong in <head> when they appear before any body content.
var headContentTags = map[string]bool{
	"title": true, "meta": true, "link": true,
	"style": true, "script": true, "base": true,
}

// formattingTags are the inline elements eligible for close-and-reopen
// repair when a block close would otherwise strand them.
var formattingTags = map[string]bool{
	"a": true, "b": true, "big": true, "code": true,
	"em": true, "font": true, "i": true, "nobr": true,
	"s": true, "small": true, "strike": true, "strong": true,
	"tt": true, "u": true,
}

// scopeBoundaryTags stop the upward search when deciding whether an end tag
// has a matching open element.
var scopeBoundaryTags = map[string]bool{
	"html": true, "table": true, "td": true, "th": true,
	"caption": true, "marquee": true, "object": true, "template": true,
}

// impliedClosableTags may be left open by well-formed markup; closing an
// ancestor ends them without a diagnostic.
var impliedClosableTags = map[string]bool{
	"li": true, "p": true, "dt": true, "dd": true,
	"tr": true, "td": true, "th": true, "option": true,
}

// impliedEndTags maps a start tag to the open tags it implicitly closes when
// they sit on top of the stack, e.g. a second <li> ends the first.
var impliedEndTags = map[string]map[string]bool{
	"li":     {"li": true},
	"p":      {"p": true},
	"dt":     {"dt": true, "dd": true},
	"dd":     {"dt": true, "dd": true},
	"tr":     {"tr": true, "td": true, "th": true},
	"td":     {"td": true, "th": true},
	"th":     {"td": true, "th": true},
	"option": {"option": true},
}

// Parser drives tree construction over the tokenizer's output. One Parser
// handles one input string; it owns no shared state, so independent parses
// never interfere.
type Parser struct {
	tokenizer *Tokenizer
	doc       *dom.Node
	open      []*dom.Node

	htmlEl *dom.Node
	headEl *dom.Node
	bodyEl *dom.Node

	errors []string
}

// NewParser returns a parser for the given HTML source.
func NewParser(input string) *Parser {
	return &Parser{tokenizer: NewTokenizer(input)}
}

// Parse builds a document tree from source. The returned error list holds
// tokenizer diagnostics followed by tree-construction diagnostics; parsing
// itself never fails, so the document is always usable.
func Parse(input string) (*dom.Node, []string) {
	return NewParser(input).Parse()
}

// Parse runs the token loop to EndOfFile and returns the document plus all
// collected diagnostics.
func (p *Parser) Parse() (*dom.Node, []string) {
	p.doc = dom.NewDocument()
	p.open = nil

	for {
		tok := p.tokenizer.Next()
		p.processToken(tok)
		if tok.Type == TokenEndOfFile {
			break
		}
	}

	// Anything still open besides the implicit scaffolding was never closed.
	for i := len(p.open) - 1; i >= 0; i-- {
		tag := p.open[i].Tag
		if tag == "html" || tag == "head" || tag == "body" {
			continue
		}
		p.errorf("unclosed tag at end of input: <%s>", tag)
	}

	errs := append([]string(nil), p.tokenizer.Errors()...)
	errs = append(errs, p.errors...)
	return p.doc, errs
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) top() *dom.Node {
	if len(p.open) == 0 {
		return nil
	}
	return p.open[len(p.open)-1]
}

func (p *Parser) push(n *dom.Node) {
	p.open = append(p.open, n)
}

func (p *Parser) pop() *dom.Node {
	if len(p.open) == 0 {
		return nil
	}
	n := p.open[len(p.open)-1]
	p.open = p.open[:len(p.open)-1]
	return n
}

func (p *Parser) isOpen(n *dom.Node) bool {
	for _, e := range p.open {
		if e == n {
			return true
		}
	}
	return false
}

// ensureHTML synthesizes or reopens the root element so there is always a
// valid insertion point below the document.
func (p *Parser) ensureHTML() {
	if p.htmlEl == nil {
		p.htmlEl = dom.NewElement("html")
		p.doc.AppendChild(p.htmlEl)
	}
	if !p.isOpen(p.htmlEl) {
		p.open = append([]*dom.Node{p.htmlEl}, p.open...)
	}
}

// ensureHead opens <head>, synthesizing it on first use.
func (p *Parser) ensureHead() {
	p.ensureHTML()
	if p.headEl == nil {
		p.headEl = dom.NewElement("head")
		p.htmlEl.AppendChild(p.headEl)
	}
	if !p.isOpen(p.headEl) && p.bodyEl == nil {
		p.push(p.headEl)
	}
}

// ensureBody closes an open <head> and opens <body>, synthesizing both as
// needed. Content arriving after an explicit </body> reopens it.
func (p *Parser) ensureBody() {
	p.ensureHTML()
	if p.headEl == nil {
		p.headEl = dom.NewElement("head")
		p.htmlEl.AppendChild(p.headEl)
	}
	if p.isOpen(p.headEl) {
		for p.top() != p.htmlEl && len(p.open) > 0 {
			p.pop()
		}
	}
	if p.bodyEl == nil {
		p.bodyEl = dom.NewElement("body")
		p.htmlEl.AppendChild(p.bodyEl)
	}
	if !p.isOpen(p.bodyEl) {
		p.push(p.bodyEl)
	}
}

func (p *Parser) processToken(tok Token) {
	switch tok.Type {
	case TokenDoctype:
		p.doc.Doctype = tok.Data

	case TokenStartTag, TokenSelfClosingTag:
		p.processStartTag(tok)

	case TokenEndTag:
		p.processEndTag(tok.Data)

	case TokenText:
		p.processText(tok.Data)

	case TokenComment:
		if top := p.top(); top != nil {
			top.AppendChild(dom.NewComment(tok.Data))
		} else {
			p.doc.AppendChild(dom.NewComment(tok.Data))
		}

	case TokenEndOfFile:
	}
}

func (p *Parser) processStartTag(tok Token) {
	name := tok.Data

	switch name {
	case "html":
		if p.htmlEl != nil {
			p.errorf("duplicate <html> ignored")
			return
		}
		p.htmlEl = p.newElement(tok)
		p.doc.AppendChild(p.htmlEl)
		p.push(p.htmlEl)
		return

	case "head":
		if p.headEl != nil {
			p.errorf("duplicate <head> ignored")
			return
		}
		p.ensureHTML()
		p.headEl = p.newElement(tok)
		p.htmlEl.AppendChild(p.headEl)
		if p.bodyEl == nil {
			p.push(p.headEl)
		}
		return

	case "body":
		if p.bodyEl != nil {
			p.errorf("duplicate <body> ignored")
			return
		}
		p.ensureHTML()
		if p.headEl == nil {
			p.headEl = dom.NewElement("head")
			p.htmlEl.AppendChild(p.headEl)
		}
		if p.isOpen(p.headEl) {
			for p.top() != p.htmlEl && len(p.open) > 0 {
				p.pop()
			}
		}
		p.bodyEl = p.newElement(tok)
		p.htmlEl.AppendChild(p.bodyEl)
		p.push(p.bodyEl)
		return
	}

	// Route early head content into <head>; everything else forces <body>.
	if headContentTags[name] && p.bodyEl == nil {
		p.ensureHead()
	} else {
		p.ensureBody()
	}

	p.closeImplied(name)

	el := p.newElement(tok)
	p.top().AppendChild(el)

	if !el.IsVoid() && tok.Type != TokenSelfClosingTag {
		p.push(el)
	}
}

// closeImplied pops open elements that a new start tag implicitly ends, such
// as an unclosed <li> when the next <li> begins.
func (p *Parser) closeImplied(name string) {
	closes, ok := impliedEndTags[name]
	if !ok {
		return
	}
	for {
		top := p.top()
		if top == nil || !closes[top.Tag] {
			return
		}
		p.pop()
	}
}

func (p *Parser) processEndTag(name string) {
	top := p.top()
	if top == nil {
		p.errorf("end tag </%s> with nothing open", name)
		return
	}

	if top.Tag == name {
		p.pop()
		return
	}

	if !p.hasInScope(name) {
		p.errorf("unmatched end tag </%s> ignored", name)
		return
	}

	// Pop down to the match. Formatting elements closed on the way are
	// reopened afterwards so the remaining content keeps their styling.
	var reopen []*dom.Node
	for {
		closed := p.pop()
		if closed == nil {
			break
		}
		if closed.Tag == name {
			break
		}
		if formattingTags[closed.Tag] {
			reopen = append([]*dom.Node{closed}, reopen...)
		} else if !impliedClosableTags[closed.Tag] {
			p.errorf("implicitly closed <%s> before </%s>", closed.Tag, name)
		}
	}
	for _, old := range reopen {
		clone := dom.NewElement(old.Tag)
		for attr, value := range old.Attributes {
			clone.SetAttribute(attr, value)
		}
		if parent := p.top(); parent != nil {
			parent.AppendChild(clone)
			p.push(clone)
		}
	}
}

// hasInScope reports whether an element with the given tag is open, stopping
// the search at scope boundaries such as table cells.
func (p *Parser) hasInScope(name string) bool {
	for i := len(p.open) - 1; i >= 0; i-- {
		tag := p.open[i].Tag
		if tag == name {
			return true
		}
		if scopeBoundaryTags[tag] {
			return false
		}
	}
	return false
}

func (p *Parser) processText(text string) {
	top := p.top()
	atStructuralLevel := top == nil || top == p.htmlEl || top == p.headEl

	if !containsNonWhitespace(text) {
		// Whitespace between structural tags carries no content.
		if atStructuralLevel {
			return
		}
		top.AppendChild(dom.NewText(DecodeEntities(text)))
		return
	}
	if atStructuralLevel {
		p.ensureBody()
	}
	if top := p.top(); top != nil {
		top.AppendChild(dom.NewText(DecodeEntities(text)))
	}
}

// newElement builds a dom element from a tag token, decoding entities in
// attribute values. Duplicate attribute names were already dropped by the
// tokenizer.
func (p *Parser) newElement(tok Token) *dom.Node {
	el := dom.NewElement(tok.Data)
	for _, attr := range tok.Attributes {
		el.SetAttribute(attr.Name, DecodeEntities(attr.Value))
	}
	return el
}

func containsNonWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return true
		}
	}
	return false
}
